package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type Comments struct {
	mu    sync.Mutex
	byID  map[string]models.Comment
	order []string
}

func NewComments() *Comments {
	return &Comments{byID: map[string]models.Comment{}}
}

func (r *Comments) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *Comments) GetByID(ctx context.Context, id string) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return models.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (r *Comments) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Comment{}
	for _, id := range r.order {
		if r.byID[id].PostID == postID {
			out = append(out, r.byID[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Comments) ToggleLike(ctx context.Context, id, userID string) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return models.Comment{}, pgx.ErrNoRows
	}
	liked := -1
	for i, v := range c.Likes {
		if v == userID {
			liked = i
			break
		}
	}
	if liked < 0 {
		c.Likes = append(append([]string{}, c.Likes...), userID)
		c.NumberOfLikes++
	} else {
		c.Likes = append(append([]string{}, c.Likes[:liked]...), c.Likes[liked+1:]...)
		c.NumberOfLikes--
	}
	c.UpdatedAt = time.Now()
	r.byID[id] = c
	return c, nil
}

func (r *Comments) Find(ctx context.Context, userID string, p repository.Page) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []models.Comment{}
	for _, id := range r.order {
		if userID != "" && r.byID[id].UserID != userID {
			continue
		}
		matched = append(matched, r.byID[id])
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if p.Asc {
			return matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return page(matched, p), nil
}

func (r *Comments) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Comments) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *Comments) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.byID {
		if !c.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}
