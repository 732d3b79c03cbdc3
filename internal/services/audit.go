package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/models"
	repo "github.com/plumablog/backend/internal/repository"
	"github.com/plumablog/backend/internal/worker"
)

// auditor writes audit records off the request path. Failures are logged,
// never surfaced to the caller.
type auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func newAuditor(logs repo.AuditLogs, wp *worker.Pool) auditor {
	return auditor{logs: logs, wp: wp}
}

func (a auditor) record(entityType, entityID string, actor auth.Identity, action string, details map[string]any) {
	if a.logs == nil || a.wp == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actor.ID,
		Action:     action,
		Details:    details,
	}
	a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.logs.Create(ctx, l); err != nil {
			slog.Error("audit write", "err", err, "entity", entityType, "action", action)
		}
	})
}
