package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts { return &postsRepo{pool: pool} }

const postCols = `id, user_id, title, content, image, category, slug, created_at, updated_at`

func scanPost(row rowScanner, p *models.Post) error {
	return row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.Category, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Image == "" {
		p.Image = models.DefaultPostImage
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	var out models.Post
	err := scanPost(r.pool.QueryRow(ctx,
		`INSERT INTO posts(id, user_id, title, content, image, category, slug)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+postCols,
		p.ID, p.UserID, p.Title, p.Content, p.Image, p.Category, p.Slug,
	), &out)
	return out, err
}

func (r *postsRepo) Find(ctx context.Context, f repository.PostFilter, p repository.Page) ([]models.Post, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add(`user_id=$%d`, f.UserID)
	}
	if f.Category != "" {
		add(`category=$%d`, f.Category)
	}
	if f.Slug != "" {
		add(`slug=$%d`, f.Slug)
	}
	if f.PostID != "" {
		add(`id=$%d`, f.PostID)
	}
	if f.SearchTerm != "" {
		args = append(args, diacriticPattern(f.SearchTerm))
		n := len(args)
		where = append(where, fmt.Sprintf(`(title ~* $%d OR content ~* $%d)`, n, n))
	}

	q := `SELECT ` + postCols + ` FROM posts`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	args = append(args, p.Limit, p.Offset)
	q += fmt.Sprintf(` ORDER BY updated_at %s LIMIT $%d OFFSET $%d`, direction(p.Asc), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := scanPost(rows, &post); err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, rows.Err()
}

func (r *postsRepo) Update(ctx context.Context, id string, set repository.PostUpdate) (models.Post, error) {
	var out models.Post
	err := scanPost(r.pool.QueryRow(ctx,
		`UPDATE posts SET
		   title    = COALESCE(NULLIF($2,''), title),
		   content  = COALESCE(NULLIF($3,''), content),
		   category = COALESCE(NULLIF($4,''), category),
		   image    = COALESCE(NULLIF($5,''), image),
		   slug     = COALESCE(NULLIF($6,''), slug),
		   updated_at = now()
		 WHERE id=$1
		 RETURNING `+postCols,
		id, set.Title, set.Content, set.Category, set.Image, set.Slug,
	), &out)
	return out, err
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

func (r *postsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

func (r *postsRepo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE created_at >= $1`, t).Scan(&n)
	return n, err
}
