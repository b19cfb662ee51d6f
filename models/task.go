package models

import (
	"time"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type Task struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	Status   string `gorm:"type:varchar(16);default:'todo'" json:"status"`
	Priority string `gorm:"type:varchar(8);default:'MEDIUM'" json:"priority"`

	ProjectID  string  `gorm:"index;not null" json:"project_id"`
	ReporterID string  `gorm:"index;not null" json:"reporter_id"`
	AssigneeID *string `gorm:"index" json:"assignee_id,omitempty"`

	Deadline    *time.Time `json:"deadline,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Exact points the completion earned; subtracted verbatim if the
	// task is later moved out of done. Never recomputed.
	PointsAwarded int `json:"points_awarded" gorm:"default:0"`

	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`

	Timestamps
}

// CompletedBeforeDeadline reports whether completing now (at ts) beats the
// task's deadline. Tasks without a deadline never qualify for the bonus.
func (t *Task) CompletedBeforeDeadline(ts time.Time) bool {
	return t.Deadline != nil && ts.Before(*t.Deadline)
}
