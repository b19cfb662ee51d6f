package models

import (
	"time"
)

const (
	NotificationLevelUp       = "LEVEL_UP"
	NotificationBadgeEarned   = "BADGE_EARNED"
	NotificationPointsEarned  = "POINTS_EARNED"
	NotificationStreakAtRisk  = "STREAK_AT_RISK"
	NotificationTaskAssigned  = "TASK_ASSIGNED"
	NotificationCommentAdded  = "COMMENT_ADDED"
	NotificationStatusChanged = "TASK_STATUS_CHANGED"
)

// Notification is the stored, streamable user event. Delivery is
// best-effort: the scoring path never fails because a row could not be
// written here.
type Notification struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Type    string `gorm:"type:varchar(24);not null" json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Payload string `gorm:"type:jsonb" json:"payload,omitempty"`

	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"`
}
