package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users { return &usersRepo{pool: pool} }

const userCols = `id, username, email, password_hash, profile_pic, is_admin, created_at, updated_at`

func scanUser(row rowScanner, u *models.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ProfilePic == "" {
		u.ProfilePic = models.DefaultProfilePic
	}
	var out models.User
	err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash, profile_pic, is_admin)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.ProfilePic, u.IsAdmin,
	), &out)
	return out, err
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id), &u)
	return u, err
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email), &u)
	return u, err
}

func (r *usersRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(username)=lower($1) OR lower(email)=lower($2))`,
		username, email,
	).Scan(&exists)
	return exists, err
}

func (r *usersRepo) List(ctx context.Context, p repository.Page) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at `+direction(p.Asc)+` LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	var out models.User
	err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET username=$2, email=$3, password_hash=$4, profile_pic=$5, updated_at=now()
		 WHERE id=$1
		 RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.ProfilePic,
	), &out)
	return out, err
}

func (r *usersRepo) UpdateProfilePic(ctx context.Context, id, pic string) (models.User, error) {
	var out models.User
	err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET profile_pic=$2, updated_at=now() WHERE id=$1 RETURNING `+userCols,
		id, pic,
	), &out)
	return out, err
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE created_at >= $1`, t).Scan(&n)
	return n, err
}
