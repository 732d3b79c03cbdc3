package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/plumablog/backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Posts     repo.Posts
	Comments  repo.Comments
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Posts:     &postsRepo{pool},
		Comments:  &commentsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func direction(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}
