package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog records back-office and enrollment actions. Entries are written
// fire-and-forget; a failed write is logged and dropped, never surfaced to
// the action that produced it.
type AuditLog struct {
	gorm.Model
	Action     string    `json:"action" gorm:"index"`
	ActorID    uint      `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}
