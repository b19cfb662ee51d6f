// services/scheduler.go
package services

import (
	"log"
	"time"

	"taskflow-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStreakReminderScheduler warns users whose streak would break at
// midnight. Runs every hour; only the evening passes (18h+) actually send,
// and at most one reminder per user per day thanks to the existing-row check.
func StartStreakReminderScheduler(gamification *GamificationService, notifications *NotificationService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			now := time.Now()
			if now.Hour() < 18 {
				return
			}

			yesterday := DateOnly(now).AddDate(0, 0, -1)
			var users []models.User
			err := gamification.DB.
				Where("current_streak > 0 AND last_activity_date = ?", yesterday).
				Find(&users).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, u := range users {
				var sent int64
				gamification.DB.Model(&models.Notification{}).
					Where("user_id = ? AND type = ? AND created_at >= ?",
						u.ID, models.NotificationStreakAtRisk, DateOnly(now)).
					Count(&sent)
				if sent > 0 {
					continue
				}
				notifications.NotifyStreakAtRisk(u.ID, u.CurrentStreak)
				log.Printf("⏰ Streak reminder sent to user %s (streak %d)", u.ID, u.CurrentStreak)
			}
		}),
	)
}
