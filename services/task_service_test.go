package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskflow-backend/models"
)

type fixture struct {
	db            *gorm.DB
	gamification  *GamificationService
	badges        *BadgeService
	notifications *NotificationService
	tasks         *TaskService
	comments      *CommentService
	projects      *ProjectService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	gamification := NewGamificationService(db)
	badges := newBadgeService(t, db)
	notifications := NewNotificationService(db)

	return &fixture{
		db:            db,
		gamification:  gamification,
		badges:        badges,
		notifications: notifications,
		tasks:         NewTaskService(db, gamification, badges, notifications),
		comments:      NewCommentService(db, gamification, badges, notifications),
		projects:      NewProjectService(db),
	}
}

func (f *fixture) createProject(t *testing.T, owner *models.User) *models.Project {
	t.Helper()

	project, err := f.projects.Create("Projeto Apollo", "", owner.ID)
	require.NoError(t, err)
	return project
}

func TestTaskCreate_AwardsReporter(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "ana")
	project := f.createProject(t, reporter)

	task, err := f.tasks.Create(CreateTaskInput{
		Title:     "Escrever documentacao",
		ProjectID: project.ID,
	}, reporter.ID)
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority, "priority defaults to MEDIUM")

	stored := reloadUser(t, f.db, reporter.ID)
	assert.Equal(t, 5, stored.TotalPoints)

	var entry models.ActivityLog
	require.NoError(t, f.db.Where("user_id = ? AND action = ?", reporter.ID, models.ActionTaskCreated).First(&entry).Error)
	assert.Equal(t, 5, entry.PointsEarned)
	assert.Equal(t, task.ID, entry.EntityID)
}

func TestTaskCreate_Validation(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "bruno")

	_, err := f.tasks.Create(CreateTaskInput{Title: ""}, reporter.ID)
	require.Error(t, err)

	_, err = f.tasks.Create(CreateTaskInput{Title: "x", Priority: "URGENT"}, reporter.ID)
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTaskCreate_NotifiesAssignee(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "clara")
	assignee := newTestUser(t, f.db, "dani")
	project := f.createProject(t, reporter)

	_, err := f.tasks.Create(CreateTaskInput{
		Title:      "Revisar layout",
		ProjectID:  project.ID,
		AssigneeID: &assignee.ID,
	}, reporter.ID)
	require.NoError(t, err)

	assigned, err := f.notifications.List(assignee.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, models.NotificationTaskAssigned, assigned[0].Type)
}

func TestUpdateStatus_CompleteAndReopen(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "edu")
	project := f.createProject(t, reporter)

	task, err := f.tasks.Create(CreateTaskInput{
		Title:     "Corrigir bug de login",
		Priority:  models.PriorityMedium,
		ProjectID: project.ID,
	}, reporter.ID)
	require.NoError(t, err)

	// Completing credits the actor (no assignee set).
	task, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusDone, reporter.ID)
	require.NoError(t, err)
	assert.NotNil(t, task.CompletedAt)
	assert.Equal(t, 20, task.PointsAwarded, "no deadline, so no early bonus")

	stored := reloadUser(t, f.db, reporter.ID)
	assert.Equal(t, 25, stored.TotalPoints) // 5 creation + 20 completion
	assert.Equal(t, 1, stored.TasksCompleted)

	// First completion earns the first-task badge and its notification.
	has, err := f.badges.UserHasBadge(reporter.ID, models.BadgeFirstTask)
	require.NoError(t, err)
	assert.True(t, has)

	var badgeNotifications int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", reporter.ID, models.NotificationBadgeEarned).
		Count(&badgeNotifications).Error)
	assert.Equal(t, int64(1), badgeNotifications)

	// Reopening subtracts exactly the stored award.
	task, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusInProgress, reporter.ID)
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, 0, task.PointsAwarded)

	stored = reloadUser(t, f.db, reporter.ID)
	assert.Equal(t, 5, stored.TotalPoints)
	assert.Equal(t, 0, stored.TasksCompleted)

	// The badge is not revoked by the reversal.
	has, err = f.badges.UserHasBadge(reporter.ID, models.BadgeFirstTask)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestUpdateStatus_CreditsAssigneeOverActor(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "fabi")
	assignee := newTestUser(t, f.db, "gui")
	project := f.createProject(t, reporter)

	task, err := f.tasks.Create(CreateTaskInput{
		Title:      "Implementar filtro",
		Priority:   models.PriorityLow,
		ProjectID:  project.ID,
		AssigneeID: &assignee.ID,
	}, reporter.ID)
	require.NoError(t, err)

	_, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusDone, reporter.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, reloadUser(t, f.db, assignee.ID).TotalPoints)
	assert.Equal(t, 5, reloadUser(t, f.db, reporter.ID).TotalPoints, "reporter keeps only the creation award")
}

func TestUpdateStatus_EarlyCompletionBonus(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "helena")
	project := f.createProject(t, reporter)

	deadline := time.Now().Add(48 * time.Hour)
	task, err := f.tasks.Create(CreateTaskInput{
		Title:     "Preparar release",
		Priority:  models.PriorityHigh,
		ProjectID: project.ID,
		Deadline:  &deadline,
	}, reporter.ID)
	require.NoError(t, err)

	task, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusDone, reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, task.PointsAwarded)

	stored := reloadUser(t, f.db, reporter.ID)
	assert.Equal(t, 1, stored.EarlyCompletions)
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "iris")
	project := f.createProject(t, reporter)

	task, err := f.tasks.Create(CreateTaskInput{Title: "t", ProjectID: project.ID}, reporter.ID)
	require.NoError(t, err)

	before := reloadUser(t, f.db, reporter.ID).TotalPoints
	_, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusTodo, reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, before, reloadUser(t, f.db, reporter.ID).TotalPoints)
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.UpdateStatus("missing", models.TaskStatusDone, "someone")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = f.tasks.UpdateStatus("missing", "archived", "someone")
	require.Error(t, err)
}

func TestUpdateStatus_NotifiesReporterAndAssignee(t *testing.T) {
	f := newFixture(t)
	reporter := newTestUser(t, f.db, "joao")
	assignee := newTestUser(t, f.db, "karla")
	project := f.createProject(t, reporter)

	task, err := f.tasks.Create(CreateTaskInput{
		Title:      "Atualizar dependencias",
		ProjectID:  project.ID,
		AssigneeID: &assignee.ID,
	}, reporter.ID)
	require.NoError(t, err)

	// Assignee moves the board: only the reporter hears about it.
	_, err = f.tasks.UpdateStatus(task.ID, models.TaskStatusInProgress, assignee.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", reporter.ID, models.NotificationStatusChanged).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", assignee.ID, models.NotificationStatusChanged).
		Count(&count).Error)
	assert.Equal(t, int64(0), count, "the actor is not notified of their own change")
}
