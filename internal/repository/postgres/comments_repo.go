package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type commentsRepo struct{ pool *pgxpool.Pool }

func NewComments(pool *pgxpool.Pool) repository.Comments { return &commentsRepo{pool: pool} }

const commentCols = `id, content, post_id, user_id, likes, number_of_likes, created_at, updated_at`

func scanComment(row rowScanner, c *models.Comment) error {
	err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.Likes, &c.NumberOfLikes, &c.CreatedAt, &c.UpdatedAt)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return err
}

func (r *commentsRepo) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	var out models.Comment
	err := scanComment(r.pool.QueryRow(ctx,
		`INSERT INTO comments(id, content, post_id, user_id)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+commentCols,
		c.ID, c.Content, c.PostID, c.UserID,
	), &out)
	return out, err
}

func (r *commentsRepo) GetByID(ctx context.Context, id string) (models.Comment, error) {
	var c models.Comment
	err := scanComment(r.pool.QueryRow(ctx,
		`SELECT `+commentCols+` FROM comments WHERE id=$1`, id), &c)
	return c, err
}

func (r *commentsRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentCols+` FROM comments WHERE post_id=$1 ORDER BY created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

// ToggleLike is a single statement so two racing toggles from the same user
// cannot both observe the pre-toggle membership; likes and the counter move
// together. Returns pgx.ErrNoRows when the comment does not exist.
func (r *commentsRepo) ToggleLike(ctx context.Context, id, userID string) (models.Comment, error) {
	var out models.Comment
	err := scanComment(r.pool.QueryRow(ctx,
		`UPDATE comments SET
		   likes = CASE WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
		                ELSE array_append(likes, $2) END,
		   number_of_likes = CASE WHEN $2 = ANY(likes) THEN number_of_likes - 1
		                          ELSE number_of_likes + 1 END,
		   updated_at = now()
		 WHERE id=$1
		 RETURNING `+commentCols,
		id, userID,
	), &out)
	return out, err
}

func (r *commentsRepo) Find(ctx context.Context, userID string, p repository.Page) ([]models.Comment, error) {
	q := `SELECT ` + commentCols + ` FROM comments`
	args := []any{}
	if userID != "" {
		q += ` WHERE user_id=$1`
		args = append(args, userID)
	}
	q += ` ORDER BY updated_at ` + direction(p.Asc)
	if userID != "" {
		q += ` LIMIT $2 OFFSET $3`
	} else {
		q += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *commentsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	return err
}

func (r *commentsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments`).Scan(&n)
	return n, err
}

func (r *commentsRepo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE created_at >= $1`, t).Scan(&n)
	return n, err
}

func collectComments(rows pgx.Rows) ([]models.Comment, error) {
	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
