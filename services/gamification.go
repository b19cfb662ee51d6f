package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrConflict     = errors.New("concurrent update conflict on user state")
	ErrNegative     = errors.New("points must not be negative")
)

// awardMaxRetries bounds the optimistic-lock retry loop before the
// transient-conflict error reaches the caller.
const awardMaxRetries = 3

type GamificationService struct {
	DB *gorm.DB

	// now is swappable so streak transitions can be driven through
	// specific calendar days in tests.
	now func() time.Time
}

func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{DB: db, now: time.Now}
}

// AwardResult carries the effects of one award call back to the caller,
// which owns notification dispatch. Keeping delivery out of the engine
// avoids a dependency cycle between scoring and the notifier.
type AwardResult struct {
	PointsAwarded int `json:"points_awarded"` // excludes the streak bonus; stored on the task for exact reversal
	StreakBonus   int `json:"streak_bonus"`

	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
	Level         int    `json:"level"`
	LevelName     string `json:"level_name"`
	LeveledUp     bool   `json:"leveled_up"`
}

// mutation describes one positive-award application against a user's state.
type mutation struct {
	action          string
	points          int
	details         string
	entityType      string
	entityID        string
	taskCompleted   bool
	earlyCompletion bool
}

// AwardForTaskCreated awards the fixed task-creation points.
func (s *GamificationService) AwardForTaskCreated(userID, taskID string) (*AwardResult, error) {
	return s.award(userID, mutation{
		action:     models.ActionTaskCreated,
		points:     PointsForTaskCreated(),
		details:    "Tarefa criada",
		entityType: "task",
		entityID:   taskID,
	})
}

// AwardForTaskCompleted awards completion points by priority plus the
// early-completion bonus, and bumps the completed-tasks counter. The
// returned PointsAwarded must be stored on the task so a later reversal
// subtracts exactly what was credited.
func (s *GamificationService) AwardForTaskCompleted(userID, taskID, priority string, beforeDeadline bool) (*AwardResult, error) {
	points, err := PointsForTaskCompleted(priority, beforeDeadline)
	if err != nil {
		return nil, err
	}
	return s.award(userID, mutation{
		action:          models.ActionTaskCompleted,
		points:          points,
		details:         fmt.Sprintf("Tarefa completada (prioridade: %s)", priority),
		entityType:      "task",
		entityID:        taskID,
		taskCompleted:   true,
		earlyCompletion: beforeDeadline,
	})
}

// AwardForComment awards the fixed comment points.
func (s *GamificationService) AwardForComment(userID, commentID string) (*AwardResult, error) {
	return s.award(userID, mutation{
		action:     models.ActionCommentAdded,
		points:     PointsForComment(),
		details:    "Comentario adicionado",
		entityType: "comment",
		entityID:   commentID,
	})
}

func (s *GamificationService) award(userID string, m mutation) (*AwardResult, error) {
	var result *AwardResult
	err := s.withConflictRetry(func() error {
		var err error
		result, err = s.tryAward(userID, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎮 Points awarded: user=%s action=%s points=%d streak_bonus=%d total=%d",
		userID, m.action, result.PointsAwarded, result.StreakBonus, result.TotalPoints)
	return result, nil
}

// tryAward runs one attempt of the award sequence: point delta → streak
// transition → level recomputation → ledger append → guarded save. All
// of it commits or none of it does.
func (s *GamificationService) tryAward(userID string, m mutation) (*AwardResult, error) {
	var result AwardResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		prevLevel := user.Level
		prevVersion := user.Version

		user.TotalPoints += m.points
		if m.taskCompleted {
			user.TasksCompleted++
		}
		if m.earlyCompletion {
			user.EarlyCompletions++
		}

		bonus := ApplyDailyStreak(&user, s.now())
		user.TotalPoints += bonus

		band := LevelForPoints(user.TotalPoints)
		leveledUp := band.Level > prevLevel
		user.Level = band.Level
		user.LevelName = band.Name

		entries := []models.ActivityLog{{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			Action:       m.action,
			PointsEarned: m.points,
			Details:      m.details,
			EntityType:   m.entityType,
			EntityID:     m.entityID,
		}}
		if bonus > 0 {
			entries = append(entries, models.ActivityLog{
				ID:           uuid.NewString(),
				UserID:       user.ID,
				Action:       models.ActionStreakBonus,
				PointsEarned: bonus,
				Details:      fmt.Sprintf("Bonus de streak (%d dias)", user.CurrentStreak),
			})
		}
		if leveledUp {
			entries = append(entries, models.ActivityLog{
				ID:      uuid.NewString(),
				UserID:  user.ID,
				Action:  models.ActionLevelUp,
				Details: fmt.Sprintf("Subiu para o nivel %d - %s", band.Level, band.Name),
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		if err := s.saveGuarded(tx, &user, prevVersion); err != nil {
			return err
		}

		result = AwardResult{
			PointsAwarded: m.points,
			StreakBonus:   bonus,
			TotalPoints:   user.TotalPoints,
			CurrentStreak: user.CurrentStreak,
			Level:         user.Level,
			LevelName:     user.LevelName,
			LeveledUp:     leveledUp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReverseTaskCompletion subtracts the exact points a completion previously
// earned and decrements the completed-tasks counter. Totals clamp at zero;
// level is re-derived from the restored total (demotion included) but no
// level notification fires on the way down. Streak state is untouched.
func (s *GamificationService) ReverseTaskCompletion(userID, taskID string, pointsToReverse int) error {
	if pointsToReverse < 0 {
		return fmt.Errorf("%w: got %d", ErrNegative, pointsToReverse)
	}

	err := s.withConflictRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			prevVersion := user.Version

			applied := pointsToReverse
			if applied > user.TotalPoints {
				applied = user.TotalPoints // point floor
			}
			user.TotalPoints -= applied
			if user.TasksCompleted > 0 {
				user.TasksCompleted--
			}

			band := LevelForPoints(user.TotalPoints)
			user.Level = band.Level
			user.LevelName = band.Name

			entry := models.ActivityLog{
				ID:           uuid.NewString(),
				UserID:       user.ID,
				Action:       models.ActionTaskReopened,
				PointsEarned: -applied,
				Details:      "Tarefa reaberta, pontos revertidos",
				EntityType:   "task",
				EntityID:     taskID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			return s.saveGuarded(tx, &user, prevVersion)
		})
	})
	if err != nil {
		return err
	}

	log.Printf("🎮 Points reversed: user=%s task=%s points=%d", userID, taskID, pointsToReverse)
	return nil
}

// saveGuarded persists the user's gamification state only if nobody else
// updated the row since it was read. A lost race rolls the transaction
// back and surfaces ErrConflict for the retry loop.
func (s *GamificationService) saveGuarded(tx *gorm.DB, user *models.User, prevVersion int) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND version = ?", user.ID, prevVersion).
		Updates(map[string]interface{}{
			"total_points":       user.TotalPoints,
			"level":              user.Level,
			"level_name":         user.LevelName,
			"current_streak":     user.CurrentStreak,
			"longest_streak":     user.LongestStreak,
			"last_activity_date": user.LastActivityDate,
			"tasks_completed":    user.TasksCompleted,
			"early_completions":  user.EarlyCompletions,
			"version":            prevVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *GamificationService) withConflictRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < awardMaxRetries; attempt++ {
		err = fn()
		if !errors.Is(err, ErrConflict) {
			return err
		}
		log.Printf("⚠️  Award conflict, retrying (%d/%d)", attempt+1, awardMaxRetries)
	}
	return err
}
