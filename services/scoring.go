package services

import (
	"errors"
	"fmt"

	"taskflow-backend/models"
)

// Points configuration
const (
	PointsTaskCreated         = 5
	PointsTaskCompletedLow    = 10
	PointsTaskCompletedMedium = 20
	PointsTaskCompletedHigh   = 30
	PointsCommentAdded        = 2
	PointsEarlyBonus          = 15
	PointsStreakBonus         = 5
)

var ErrInvalidPriority = errors.New("unknown task priority")

// PointsForTaskCreated returns the fixed award for creating a task.
func PointsForTaskCreated() int {
	return PointsTaskCreated
}

// PointsForTaskCompleted computes the completion award from priority plus
// the early-completion bonus. Unknown priorities are rejected before any
// state is touched.
func PointsForTaskCompleted(priority string, beforeDeadline bool) (int, error) {
	var points int
	switch priority {
	case models.PriorityLow:
		points = PointsTaskCompletedLow
	case models.PriorityMedium:
		points = PointsTaskCompletedMedium
	case models.PriorityHigh:
		points = PointsTaskCompletedHigh
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	if beforeDeadline {
		points += PointsEarlyBonus
	}
	return points, nil
}

// PointsForComment returns the fixed award for adding a comment.
func PointsForComment() int {
	return PointsCommentAdded
}
