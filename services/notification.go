package services

import (
	"encoding/json"
	"fmt"
	"log"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService is the best-effort notifier. Delivery must never
// block or fail a scoring transaction: every publish error is logged and
// swallowed.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify stores one notification row for the user. Fire-and-forget.
func (s *NotificationService) Notify(userID, ntype, title, message string, payload interface{}) {
	var payloadJSON string
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			payloadJSON = string(b)
		}
	}

	notification := models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Payload: payloadJSON,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		log.Printf("⚠️  Notification delivery failed for user %s (%s): %v", userID, ntype, err)
	}
}

// NotifyLevelUp announces a level increase.
func (s *NotificationService) NotifyLevelUp(userID string, result *AwardResult) {
	s.Notify(userID, models.NotificationLevelUp,
		"Subiu de nivel!",
		fmt.Sprintf("Voce alcancou o nivel %d - %s", result.Level, result.LevelName),
		result,
	)
}

// NotifyBadgeEarned announces a newly earned badge.
func (s *NotificationService) NotifyBadgeEarned(userID string, badge models.BadgeType) {
	s.Notify(userID, models.NotificationBadgeEarned,
		"Badge conquistado!",
		fmt.Sprintf("Voce conquistou o badge %s", badge.Name),
		badge,
	)
}

// NotifyStreakAtRisk warns a user their daily streak ends at midnight.
func (s *NotificationService) NotifyStreakAtRisk(userID string, currentStreak int) {
	s.Notify(userID, models.NotificationStreakAtRisk,
		"Seu streak esta em risco!",
		fmt.Sprintf("Complete uma tarefa hoje para manter seu streak de %d dias", currentStreak),
		nil,
	)
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	q := s.DB.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []models.Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// MarkRead flags one notification as read. Scoped to the owner.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
