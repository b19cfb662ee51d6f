package services

import (
	"log"
)

// dispatchAwardEffects performs the side effects an award produced: the
// level-up notification, then badge evaluation and one notification per
// newly earned badge. Runs after the scoring transaction has committed, so
// a notifier or evaluator failure can never lose the point award.
func dispatchAwardEffects(badges *BadgeService, notifications *NotificationService, userID string, result *AwardResult) {
	if result.LeveledUp {
		notifications.NotifyLevelUp(userID, result)
	}

	earned, err := badges.EvaluateBadges(userID)
	if err != nil {
		log.Printf("⚠️  Badge evaluation failed for user %s: %v", userID, err)
		return
	}
	for _, badge := range earned {
		notifications.NotifyBadgeEarned(userID, badge)
	}
}
