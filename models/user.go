package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User holds identity plus the denormalized gamification state.
// Identity fields are populated from the gateway/profile service;
// gamification fields are mutated only through services.GamificationService.
type User struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `gorm:"type:varchar(16);default:'user'" json:"role"`

	// Gamification state
	TotalPoints      int        `json:"total_points" gorm:"default:0"`
	Level            int        `json:"level" gorm:"default:1"`
	LevelName        string     `json:"level_name" gorm:"default:'Iniciante'"`
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	TasksCompleted   int        `json:"tasks_completed" gorm:"default:0"`
	EarlyCompletions int        `json:"early_completions" gorm:"default:0"`

	// Optimistic-lock guard for concurrent award sequences
	Version int `json:"-" gorm:"default:0"`

	Timestamps
}
