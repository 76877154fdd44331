package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler starts the daily sweep over stale pending
// enrollment requests.
func InitializeReminderScheduler() {
	c := cron.New()

	// Daily at 9 AM server time
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily pending request check...")
		RemindStalePendingRequests()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Scheduler started - runs daily at 9 AM")
}

// RemindStalePendingRequests emails each educator a count of their requests
// older than the configured age that still await a decision.
func RemindStalePendingRequests() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.PendingReminderAge)

	var educators []models.User
	if err := db.Where("role = ?", models.RoleEducator).Find(&educators).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching educators: %v", err)
		return
	}

	for _, educator := range educators {
		var courseIDs []string
		if err := db.Model(&models.Course{}).
			Where("educator_id = ?", educator.ID).
			Pluck("id", &courseIDs).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching courses for %s: %v", educator.ID, err)
			continue
		}
		if len(courseIDs) == 0 {
			continue
		}

		var stale int64
		if err := db.Model(&models.PendingEnrollment{}).
			Where("course_id IN ? AND status = ? AND created_at < ?",
				courseIDs, models.EnrollmentPending, cutoff).
			Count(&stale).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error counting pending requests: %v", err)
			continue
		}

		if stale > 0 {
			SendPendingReminderEmail(educator.Email, educator.Name, stale)
		}
	}
}
