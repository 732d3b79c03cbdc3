package models

import "time"

// Comment keeps likes as the ordered list of user ids that liked it;
// NumberOfLikes is denormalized and must equal len(Likes).
type Comment struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	PostID        string    `json:"postId"`
	UserID        string    `json:"userId"`
	Likes         []string  `json:"likes"`
	NumberOfLikes int       `json:"numberOfLikes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
