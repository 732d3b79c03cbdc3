package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumablog/backend/internal/models"
	"github.com/plumablog/backend/internal/repository"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func NewAuditLogs(pool *pgxpool.Pool) repository.AuditLogs { return &auditLogsRepo{pool: pool} }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs(id, entity_type, entity_id, actor_id, action, details)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		l.ID, l.EntityType, l.EntityID, l.ActorID, l.Action, l.Details,
	)
	return err
}
