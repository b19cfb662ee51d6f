package services

import (
	"errors"
	"fmt"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	DB            *gorm.DB
	Gamification  *GamificationService
	Badges        *BadgeService
	Notifications *NotificationService
}

func NewCommentService(db *gorm.DB, gamification *GamificationService, badges *BadgeService, notifications *NotificationService) *CommentService {
	return &CommentService{DB: db, Gamification: gamification, Badges: badges, Notifications: notifications}
}

// Create inserts the comment, awards the author's comment points and
// notifies the task's reporter and assignee.
func (s *CommentService) Create(taskID, authorID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}

	var task models.Task
	if err := s.DB.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		Content:  content,
		TaskID:   taskID,
		AuthorID: authorID,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, err
	}

	result, err := s.Gamification.AwardForComment(authorID, comment.ID)
	if err != nil {
		return nil, err
	}
	dispatchAwardEffects(s.Badges, s.Notifications, authorID, result)

	message := fmt.Sprintf("Novo comentario na tarefa %q", task.Title)
	if task.AssigneeID != nil && *task.AssigneeID != authorID {
		s.Notifications.Notify(*task.AssigneeID, models.NotificationCommentAdded,
			"Novo comentario", message, comment)
	}
	if task.ReporterID != authorID && (task.AssigneeID == nil || task.ReporterID != *task.AssigneeID) {
		s.Notifications.Notify(task.ReporterID, models.NotificationCommentAdded,
			"Novo comentario", message, comment)
	}

	return &comment, nil
}

// ListByTask returns a task's comments in chronological order.
func (s *CommentService) ListByTask(taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.DB.Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
