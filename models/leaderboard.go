package models

import (
	"time"
)

// LeaderboardEntry is a periodically rebuilt snapshot of the global point
// ranking. Reads tolerate slight staleness; the snapshot worker replaces
// the whole table on each pass.
type LeaderboardEntry struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Position       int       `gorm:"index" json:"position"`
	UserName       string    `json:"user_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Level          int       `json:"level"`
	LevelName      string    `json:"level_name"`
	TotalPoints    int       `json:"total_points"`
	TasksCompleted int       `json:"tasks_completed"`
	CurrentStreak  int       `json:"current_streak"`
	SnapshotAt     time.Time `json:"snapshot_at"`
}
