package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskflow-backend/models"
)

func newBadgeService(t *testing.T, db *gorm.DB) *BadgeService {
	t.Helper()

	b := NewBadgeService(db)
	require.NoError(t, b.EnsureCatalog())
	return b
}

func badgeCodes(badges []models.BadgeType) []string {
	codes := make([]string, 0, len(badges))
	for _, b := range badges {
		codes = append(codes, b.Code)
	}
	return codes
}

func TestEnsureCatalog_Idempotent(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)
	require.NoError(t, b.EnsureCatalog())

	var count int64
	require.NoError(t, db.Model(&models.BadgeType{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.BadgeCatalog)), count)
}

func TestEvaluateBadges_FirstTask(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)
	user := newTestUser(t, db, "ana")
	require.NoError(t, db.Model(user).Update("tasks_completed", 1).Error)

	earned, err := b.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeCodes(earned), models.BadgeFirstTask)

	// A second pass over the same stats awards nothing new.
	earned, err = b.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, earned)

	has, err := b.UserHasBadge(user.ID, models.BadgeFirstTask)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestEvaluateBadges_MultipleInOnePass(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)
	user := newTestUser(t, db, "bruno")
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"tasks_completed":   100,
		"current_streak":    7,
		"early_completions": 10,
	}).Error)

	earned, err := b.EvaluateBadges(user.ID)
	require.NoError(t, err)

	codes := badgeCodes(earned)
	assert.Contains(t, codes, models.BadgeFirstTask)
	assert.Contains(t, codes, models.BadgeCenturion)
	assert.Contains(t, codes, models.BadgeOnFire)
	assert.Contains(t, codes, models.BadgeEarlyBird)
}

func TestEvaluateBadges_Sprinter(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)
	at := time.Date(2026, 4, 1, 16, 0, 0, 0, time.Local)
	b.now = fixedClock(at)

	user := newTestUser(t, db, "clara")
	require.NoError(t, db.Model(user).Update("tasks_completed", 5).Error)
	for i := 0; i < 5; i++ {
		entry := models.ActivityLog{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Action: models.ActionTaskCompleted,
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	earned, err := b.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeCodes(earned), models.BadgeSprinter)
}

func TestEvaluateBadges_Communicator(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)
	user := newTestUser(t, db, "dani")

	task := models.Task{
		ID:         uuid.NewString(),
		Title:      "Revisar proposta",
		Status:     models.TaskStatusTodo,
		Priority:   models.PriorityLow,
		ProjectID:  uuid.NewString(),
		ReporterID: user.ID,
	}
	require.NoError(t, db.Create(&task).Error)
	for i := 0; i < 50; i++ {
		comment := models.Comment{ID: uuid.NewString(), Content: "oi", TaskID: task.ID, AuthorID: user.ID}
		require.NoError(t, db.Create(&comment).Error)
	}

	earned, err := b.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeCodes(earned), models.BadgeCommunicator)
}

func TestEvaluateBadges_Leader(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)

	top := newTestUser(t, db, "edu")
	other := newTestUser(t, db, "fabi")
	require.NoError(t, db.Model(top).Update("total_points", 500).Error)
	require.NoError(t, db.Model(other).Update("total_points", 100).Error)

	earned, err := b.EvaluateBadges(top.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeCodes(earned), models.BadgeLeader)

	earned, err = b.EvaluateBadges(other.ID)
	require.NoError(t, err)
	assert.NotContains(t, badgeCodes(earned), models.BadgeLeader)
}

func TestEvaluateBadges_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)

	_, err := b.EvaluateBadges("missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAllBadges_ExcludesSecret(t *testing.T) {
	db := newTestDB(t)
	b := newBadgeService(t, db)

	secret := models.BadgeType{
		ID:           uuid.NewString(),
		Code:         "HIDDEN",
		Name:         "Oculto",
		CriteriaType: models.CriteriaTasksCompleted,
		Secret:       true,
	}
	require.NoError(t, db.Create(&secret).Error)

	badges, err := b.AllBadges()
	require.NoError(t, err)
	assert.NotContains(t, badgeCodes(badges), "HIDDEN")
	assert.Len(t, badges, len(models.BadgeCatalog))
}
