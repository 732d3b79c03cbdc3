// Package memory holds in-memory implementations of the repository
// interfaces. They back the service and handler tests and keep the same
// observable semantics as the postgres implementations, including
// pgx.ErrNoRows for missing rows.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type Users struct {
	mu    sync.Mutex
	byID  map[string]models.User
	order []string
}

func NewUsers() *Users {
	return &Users{byID: map[string]models.User{}}
}

func (r *Users) Create(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ProfilePic == "" {
		u.ProfilePic = models.DefaultProfilePic
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return u, nil
}

func (r *Users) GetByID(ctx context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if r.byID[id].Email == email {
			return r.byID[id], nil
		}
	}
	return models.User{}, pgx.ErrNoRows
}

func (r *Users) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Users) List(ctx context.Context, p repository.Page) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.byID[id])
	}
	sort.SliceStable(all, func(i, j int) bool {
		if p.Asc {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, p), nil
}

func (r *Users) Update(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[u.ID]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = u
	return u, nil
}

func (r *Users) UpdateProfilePic(ctx context.Context, id, pic string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	u.ProfilePic = pic
	u.UpdatedAt = time.Now()
	r.byID[id] = u
	return u, nil
}

func (r *Users) Delete(ctx context.Context, id string) error {
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

func (r *Users) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *Users) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.byID {
		if !u.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

func page[T any](all []T, p repository.Page) []T {
	if p.Offset >= len(all) {
		return []T{}
	}
	all = all[p.Offset:]
	if p.Limit > 0 && p.Limit < len(all) {
		all = all[:p.Limit]
	}
	out := make([]T, len(all))
	copy(out, all)
	return out
}
