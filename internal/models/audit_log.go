package models

import "time"

// AuditLog records a destructive or administrative mutation. Written
// best-effort off the request path.
type AuditLog struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entityType"` // user | post | comment
	EntityID   string         `json:"entityId"`
	ActorID    string         `json:"actorId"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
