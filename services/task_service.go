package services

import (
	"errors"
	"fmt"
	"time"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	DB            *gorm.DB
	Gamification  *GamificationService
	Badges        *BadgeService
	Notifications *NotificationService
}

func NewTaskService(db *gorm.DB, gamification *GamificationService, badges *BadgeService, notifications *NotificationService) *TaskService {
	return &TaskService{DB: db, Gamification: gamification, Badges: badges, Notifications: notifications}
}

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ProjectID   string     `json:"project_id"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Create inserts the task and credits the reporter with the creation award.
func (s *TaskService) Create(input CreateTaskInput, reporterID string) (*models.Task, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !validPriority(input.Priority) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, input.Priority)
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
		ReporterID:  reporterID,
		AssigneeID:  input.AssigneeID,
		Deadline:    input.Deadline,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return nil, err
	}

	result, err := s.Gamification.AwardForTaskCreated(reporterID, task.ID)
	if err != nil {
		return nil, err
	}
	dispatchAwardEffects(s.Badges, s.Notifications, reporterID, result)

	if task.AssigneeID != nil && *task.AssigneeID != reporterID {
		s.Notifications.Notify(*task.AssigneeID, models.NotificationTaskAssigned,
			"Nova tarefa atribuida",
			fmt.Sprintf("Voce foi atribuido a tarefa: %s", task.Title),
			task,
		)
	}

	return &task, nil
}

// UpdateStatus moves a task through the board. Entering done triggers the
// completion award for the credited user; leaving done reverses exactly the
// points that completion stored on the task.
func (s *TaskService) UpdateStatus(taskID, newStatus, actorID string) (*models.Task, error) {
	if !validStatus(newStatus) {
		return nil, fmt.Errorf("unknown task status: %q", newStatus)
	}

	var task models.Task
	if err := s.DB.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	oldStatus := task.Status
	if oldStatus == newStatus {
		return &task, nil
	}
	task.Status = newStatus

	switch {
	case newStatus == models.TaskStatusDone:
		now := time.Now()
		task.CompletedAt = &now

		creditedID := s.creditedUser(&task, actorID)
		result, err := s.Gamification.AwardForTaskCompleted(
			creditedID, task.ID, task.Priority, task.CompletedBeforeDeadline(now))
		if err != nil {
			return nil, err
		}
		task.PointsAwarded = result.PointsAwarded

		if err := s.DB.Save(&task).Error; err != nil {
			return nil, err
		}
		dispatchAwardEffects(s.Badges, s.Notifications, creditedID, result)

	case oldStatus == models.TaskStatusDone:
		// Task moved out of done - subtract the stored award verbatim
		creditedID := s.creditedUser(&task, actorID)
		if task.PointsAwarded > 0 {
			if err := s.Gamification.ReverseTaskCompletion(creditedID, task.ID, task.PointsAwarded); err != nil {
				return nil, err
			}
		}
		task.CompletedAt = nil
		task.PointsAwarded = 0

		if err := s.DB.Save(&task).Error; err != nil {
			return nil, err
		}

	default:
		if err := s.DB.Save(&task).Error; err != nil {
			return nil, err
		}
	}

	s.notifyStatusChanged(&task, actorID)
	return &task, nil
}

// creditedUser picks who earns (or loses) the completion points: the
// assignee when one is set, otherwise whoever flipped the status.
func (s *TaskService) creditedUser(task *models.Task, actorID string) string {
	if task.AssigneeID != nil {
		return *task.AssigneeID
	}
	return actorID
}

func (s *TaskService) notifyStatusChanged(task *models.Task, actorID string) {
	if task.AssigneeID != nil && *task.AssigneeID != actorID {
		s.Notifications.Notify(*task.AssigneeID, models.NotificationStatusChanged,
			"Status da tarefa alterado",
			fmt.Sprintf("Tarefa %q agora esta em %s", task.Title, task.Status),
			task,
		)
	}
	if task.ReporterID != actorID {
		s.Notifications.Notify(task.ReporterID, models.NotificationStatusChanged,
			"Status da tarefa alterado",
			fmt.Sprintf("Tarefa %q agora esta em %s", task.Title, task.Status),
			task,
		)
	}
}

// Get loads one task with its comments.
func (s *TaskService) Get(taskID string) (*models.Task, error) {
	var task models.Task
	err := s.DB.Preload("Comments").Where("id = ?", taskID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByProject returns the project's tasks, newest first.
func (s *TaskService) ListByProject(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func validPriority(p string) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusReview, models.TaskStatusDone:
		return true
	}
	return false
}
