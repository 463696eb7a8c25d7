package models

import "time"

// AuditLog is an append-only record of a user action. Write-only: no
// API reads it back.
type AuditLog struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"` // create, delete, share
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	CreatedAt  time.Time `db:"created_at"`
}
