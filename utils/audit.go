package utils

import (
	"cocina/database"
	"cocina/models"
	"log"
	"time"
)

// Audit writes an audit-log entry on its own goroutine. A failed write is
// logged and dropped; the action that produced it never sees the error.
func Audit(action string, actorID uint, actorEmail, detail string) {
	entry := models.AuditLog{
		Action:     action,
		ActorID:    actorID,
		ActorEmail: actorEmail,
		Detail:     detail,
		OccurredAt: time.Now(),
	}

	go func() {
		if err := database.Database.Db.Create(&entry).Error; err != nil {
			log.Printf("[AUDIT] failed to record %q: %v", action, err)
		}
	}()
}
