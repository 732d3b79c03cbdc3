package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type Posts struct {
	mu    sync.Mutex
	byID  map[string]models.Post
	order []string
}

func NewPosts() *Posts {
	return &Posts{byID: map[string]models.Post{}}
}

func (r *Posts) Create(ctx context.Context, p models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Title == p.Title || existing.Slug == p.Slug {
			return models.Post{}, fmt.Errorf("duplicate key: posts title/slug")
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Image == "" {
		p.Image = models.DefaultPostImage
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *Posts) Find(ctx context.Context, f repository.PostFilter, p repository.Page) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []models.Post{}
	for _, id := range r.order {
		post := r.byID[id]
		if f.UserID != "" && post.UserID != f.UserID {
			continue
		}
		if f.Category != "" && post.Category != f.Category {
			continue
		}
		if f.Slug != "" && post.Slug != f.Slug {
			continue
		}
		if f.PostID != "" && post.ID != f.PostID {
			continue
		}
		if f.SearchTerm != "" && !matchesSearch(post, f.SearchTerm) {
			continue
		}
		matched = append(matched, post)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if p.Asc {
			return matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return page(matched, p), nil
}

var diacriticFolder = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a",
	"é", "e", "ë", "e", "è", "e",
	"í", "i", "ï", "i", "ì", "i",
	"ó", "o", "ö", "o", "ò", "o",
	"ú", "u", "ü", "u", "ù", "u",
)

func matchesSearch(p models.Post, term string) bool {
	fold := func(s string) string { return diacriticFolder.Replace(strings.ToLower(s)) }
	term = fold(term)
	return strings.Contains(fold(p.Title), term) || strings.Contains(fold(p.Content), term)
}

func (r *Posts) Update(ctx context.Context, id string, set repository.PostUpdate) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return models.Post{}, pgx.ErrNoRows
	}
	if set.Title != "" {
		p.Title = set.Title
	}
	if set.Content != "" {
		p.Content = set.Content
	}
	if set.Category != "" {
		p.Category = set.Category
	}
	if set.Image != "" {
		p.Image = set.Image
	}
	if set.Slug != "" {
		p.Slug = set.Slug
	}
	p.UpdatedAt = time.Now()
	r.byID[id] = p
	return p, nil
}

func (r *Posts) Delete(ctx context.Context, id string) error {
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

func (r *Posts) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *Posts) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.byID {
		if !p.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

// Get is a test convenience not on the repository interface.
func (r *Posts) Get(id string) (models.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	return p, ok
}
