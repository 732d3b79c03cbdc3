package repository

import (
	"context"
	"time"

	"github.com/plumablog/backend/internal/models"
)

// Page is the skip/limit window plus sort direction used by every listing.
type Page struct {
	Limit  int
	Offset int
	Asc    bool
}

// PostFilter fields are independently optional; zero values mean "no filter".
// SearchTerm matches title or content case-insensitively with diacritic
// folding.
type PostFilter struct {
	UserID     string
	Category   string
	Slug       string
	PostID     string
	SearchTerm string
}

// PostUpdate is a partial field set; empty strings leave the column as is.
// Slug is always written alongside Title.
type PostUpdate struct {
	Title    string
	Content  string
	Category string
	Image    string
	Slug     string
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, p Page) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	UpdateProfilePic(ctx context.Context, id, pic string) (models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	Find(ctx context.Context, f PostFilter, p Page) ([]models.Post, error)
	Update(ctx context.Context, id string, set PostUpdate) (models.Post, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
}

type Comments interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	// ToggleLike flips userID's membership in the likes set and keeps the
	// denormalized counter consistent, atomically.
	ToggleLike(ctx context.Context, id, userID string) (models.Comment, error)
	Find(ctx context.Context, userID string, p Page) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
