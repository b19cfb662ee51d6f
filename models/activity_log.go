package models

import (
	"time"
)

const (
	ActionTaskCreated   = "TASK_CREATED"
	ActionTaskCompleted = "TASK_COMPLETED"
	ActionTaskReopened  = "TASK_REOPENED"
	ActionCommentAdded  = "COMMENT_ADDED"
	ActionStreakBonus   = "STREAK_BONUS"
	ActionLevelUp       = "USER_LEVEL_UP"
	ActionBadgeEarned   = "USER_BADGE_EARNED"
)

// ActivityLog is the append-only ledger of point-earning (and losing)
// events. Rows are written once and never updated; heatmaps and point
// audits are derived from it.
type ActivityLog struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Action       string `gorm:"type:varchar(32);index;not null" json:"action"`
	PointsEarned int    `json:"points_earned" gorm:"default:0"` // negative for reversals
	Details      string `json:"details"`

	// Optional reference to the entity that triggered the entry
	EntityType string `gorm:"type:varchar(16)" json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index;autoCreateTime"`
}
