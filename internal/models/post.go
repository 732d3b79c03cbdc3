package models

import (
	"strings"
	"time"
)

const (
	// DefaultPostImage is the placeholder used when a post has no cover image.
	DefaultPostImage = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"

	DefaultCategory = "unselected"
)

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Slugify derives the URL identifier from a title: lowercase, spaces to
// hyphens, everything outside [a-zA-Z0-9-] dropped. Idempotent.
func Slugify(title string) string {
	s := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
