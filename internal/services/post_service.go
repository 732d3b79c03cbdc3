package services

import (
	"context"

	"github.com/plumablog/backend/internal/api/validate"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/metrics"
	"github.com/plumablog/backend/internal/models"
	repo "github.com/plumablog/backend/internal/repository"
	"github.com/plumablog/backend/internal/worker"
)

type PostService struct {
	posts repo.Posts
	audit auditor
}

func NewPostService(posts repo.Posts, logs repo.AuditLogs, wp *worker.Pool) *PostService {
	return &PostService{posts: posts, audit: newAuditor(logs, wp)}
}

type CreatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// Create persists a post owned by the actor. Title/slug uniqueness is
// enforced by the store; a collision surfaces as a generic persistence error.
func (s *PostService) Create(ctx context.Context, actor auth.Identity, in CreatePostInput) (models.Post, error) {
	if actor.ID == "" {
		return models.Post{}, httperr.Forbidden("You are not allowed to create a post")
	}
	if !validate.AllPresent(in.Title, in.Content) {
		return models.Post{}, httperr.BadRequest("All fields are required")
	}

	p, err := s.posts.Create(ctx, models.Post{
		UserID:   actor.ID,
		Title:    in.Title,
		Content:  in.Content,
		Image:    in.Image,
		Category: in.Category,
		Slug:     models.Slugify(in.Title),
	})
	if err != nil {
		return models.Post{}, err
	}
	metrics.PostsCreatedTotal.Inc()
	return p, nil
}

type PostListResult struct {
	Posts      []models.Post `json:"posts"`
	TotalPosts int64         `json:"totalPosts"`
	LastMonth  int64         `json:"lastMonth"`
}

func (s *PostService) List(ctx context.Context, f repo.PostFilter, p repo.Page) (PostListResult, error) {
	posts, err := s.posts.Find(ctx, f, p)
	if err != nil {
		return PostListResult{}, err
	}
	total, err := s.posts.Count(ctx)
	if err != nil {
		return PostListResult{}, err
	}
	lastMonth, err := s.posts.CountCreatedSince(ctx, monthAgo())
	if err != nil {
		return PostListResult{}, err
	}
	return PostListResult{Posts: posts, TotalPosts: total, LastMonth: lastMonth}, nil
}

// Delete is delete-if-present: no existence check, owner or admin only.
func (s *PostService) Delete(ctx context.Context, actor auth.Identity, routeOwnerID, postID string) error {
	if actor.ID != routeOwnerID && !actor.IsAdmin {
		return httperr.Forbidden("You are not allowed to delete this post")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.audit.record("post", postID, actor, "delete", nil)
	return nil
}

type UpdatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// Update recomputes the slug from the (possibly new) title unconditionally
// and applies the partial field set.
func (s *PostService) Update(ctx context.Context, actor auth.Identity, routeOwnerID, postID string, in UpdatePostInput) (models.Post, error) {
	if actor.ID != routeOwnerID && !actor.IsAdmin {
		return models.Post{}, httperr.Forbidden("You are not allowed to update this post")
	}

	p, err := s.posts.Update(ctx, postID, repo.PostUpdate{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Image:    in.Image,
		Slug:     models.Slugify(in.Title),
	})
	if err != nil {
		return models.Post{}, err
	}
	s.audit.record("post", postID, actor, "update", map[string]any{"title": in.Title})
	return p, nil
}
