// workers/leaderboard_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"taskflow-backend/services"
)

// PollLeaderboard rebuilds the global ranking snapshot on a fixed
// interval. Award flows never wait on it; clients reading the leaderboard
// tolerate the snapshot being one interval stale.
func PollLeaderboard(ctx context.Context, gamification *services.GamificationService, pollInterval time.Duration) {
	log.Println("Starting leaderboard snapshot worker...")

	// One pass up front so a fresh deploy serves a ranking immediately.
	if err := gamification.RebuildLeaderboard(); err != nil {
		log.Printf("❌ Initial leaderboard build failed: %v", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard snapshot worker stopped.")
			return
		case <-ticker.C:
			if err := gamification.RebuildLeaderboard(); err != nil {
				log.Printf("❌ Leaderboard rebuild failed: %v", err)
				continue
			}
		}
	}
}
