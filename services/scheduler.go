// services/scheduler.go
package services

import (
	"log"
	"time"

	"aqube-rewards-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartPublishScheduler flips scheduled catalog entries to published once
// their publish_at passes. Checks every minute.
func (s *CatalogService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var games []models.MiniGame
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at <= ?", models.MiniGameStatusScheduled, now).
				Find(&games).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, g := range games {
				g.Status = models.MiniGameStatusPublished
				g.PublishAt = nil
				if err := s.DB.Save(&g).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish game %s: %v", g.ID, err)
				} else {
					log.Printf("✅ Auto-published mini-game: %s", g.Name)
				}
			}
		}),
	)
}
