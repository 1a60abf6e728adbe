package utils

import (
	"cocina/admission"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeResyncScheduler repairs the legacy per-course seat counters every
// night. The counter is display-only, so drift is harmless until someone
// looks at it; the nightly pass keeps the back-office numbers honest.
func InitializeResyncScheduler(svc *admission.Service) {
	log.Println("[RESYNC-SCHEDULER] Initializing counter resync scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[RESYNC-SCHEDULER] Running nightly counter resync...")
		touched, err := svc.ResyncAll()
		if err != nil {
			log.Printf("[RESYNC-SCHEDULER] resync finished with errors: %v", err)
		}
		log.Printf("[RESYNC-SCHEDULER] resynced %d courses", touched)
	})

	c.Start()
	log.Println("[RESYNC-SCHEDULER] Counter resync scheduler started - runs daily at 3 AM")
}
