package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plumablog/backend/internal/models"
)

type AuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewAuditLogs() *AuditLogs {
	return &AuditLogs{}
}

func (r *AuditLogs) Create(ctx context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	r.entries = append(r.entries, l)
	return nil
}

func (r *AuditLogs) Entries() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out
}
