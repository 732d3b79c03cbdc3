package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/plumablog/backend/internal/api/validate"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/metrics"
	"github.com/plumablog/backend/internal/models"
	repo "github.com/plumablog/backend/internal/repository"
	"github.com/plumablog/backend/internal/worker"
)

type CommentService struct {
	comments repo.Comments
	audit    auditor
}

func NewCommentService(comments repo.Comments, logs repo.AuditLogs, wp *worker.Pool) *CommentService {
	return &CommentService{comments: comments, audit: newAuditor(logs, wp)}
}

// Create requires the actor to author as themselves: the body's userId must
// equal the session identity.
func (s *CommentService) Create(ctx context.Context, actor auth.Identity, content, postID, bodyUserID string) (models.Comment, error) {
	if actor.ID != bodyUserID {
		return models.Comment{}, httperr.Unauthorized("Unauthorized")
	}
	if !validate.AllPresent(content, postID) {
		return models.Comment{}, httperr.BadRequest("All fields are required")
	}

	c, err := s.comments.Create(ctx, models.Comment{
		Content: content,
		PostID:  postID,
		UserID:  bodyUserID,
	})
	if err != nil {
		return models.Comment{}, err
	}
	metrics.CommentsCreatedTotal.Inc()
	return c, nil
}

// ListForPost returns every comment on a post, newest first.
func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// ToggleLike flips the actor's like on a comment. The store does the toggle
// atomically, so the likes set and counter cannot drift under concurrency.
func (s *CommentService) ToggleLike(ctx context.Context, actor auth.Identity, commentID string) (models.Comment, error) {
	c, err := s.comments.ToggleLike(ctx, commentID, actor.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Comment{}, httperr.NotFound("Comment not found")
	}
	if err != nil {
		return models.Comment{}, err
	}
	metrics.LikeTogglesTotal.Inc()
	return c, nil
}

// Delete checks existence before ownership, then requires author or admin.
func (s *CommentService) Delete(ctx context.Context, actor auth.Identity, commentID string) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return httperr.NotFound("Comment not found")
	}
	if err != nil {
		return err
	}
	if actor.ID != c.UserID && !actor.IsAdmin {
		return httperr.Unauthorized("Unauthorized")
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.audit.record("comment", commentID, actor, "delete", nil)
	return nil
}

type CommentListResult struct {
	Comments      []models.Comment `json:"comments"`
	TotalComments int64            `json:"totalComments"`
	LastMonth     int64            `json:"lastMonth"`
}

func (s *CommentService) List(ctx context.Context, userID string, p repo.Page) (CommentListResult, error) {
	comments, err := s.comments.Find(ctx, userID, p)
	if err != nil {
		return CommentListResult{}, err
	}
	total, err := s.comments.Count(ctx)
	if err != nil {
		return CommentListResult{}, err
	}
	lastMonth, err := s.comments.CountCreatedSince(ctx, monthAgo())
	if err != nil {
		return CommentListResult{}, err
	}
	return CommentListResult{Comments: comments, TotalComments: total, LastMonth: lastMonth}, nil
}
