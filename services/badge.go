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

type BadgeService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db, now: time.Now}
}

// EnsureCatalog inserts any missing entry of the fixed badge catalog.
// Idempotent; run once before serving traffic.
func (s *BadgeService) EnsureCatalog() error {
	for _, badge := range models.BadgeCatalog {
		var count int64
		if err := s.DB.Model(&models.BadgeType{}).Where("code = ?", badge.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		badge.ID = uuid.NewString()
		if err := s.DB.Create(&badge).Error; err != nil {
			return fmt.Errorf("failed to seed badge %s: %w", badge.Code, err)
		}
		log.Printf("🎖️  Badge created: %s", badge.Code)
	}
	return nil
}

// EvaluateBadges runs every badge rule against the user's current stats and
// awards whatever newly qualifies. Rules are independent: one rule failing
// (or one collaborator being unavailable) skips that rule for this cycle
// and never fails the award flow that triggered the evaluation.
//
// Returns the badges newly earned in this call; the caller dispatches
// notifications for them.
func (s *BadgeService) EvaluateBadges(userID string) ([]models.BadgeType, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var earned []models.BadgeType

	collect := func(badge *models.BadgeType) {
		if badge != nil {
			earned = append(earned, *badge)
		}
	}

	if user.TasksCompleted >= 1 {
		collect(s.awardIfNotEarned(&user, models.BadgeFirstTask))
	}
	if user.TasksCompleted >= 100 {
		collect(s.awardIfNotEarned(&user, models.BadgeCenturion))
	}
	if user.CurrentStreak >= 7 {
		collect(s.awardIfNotEarned(&user, models.BadgeOnFire))
	}
	if user.EarlyCompletions >= 10 {
		collect(s.awardIfNotEarned(&user, models.BadgeEarlyBird))
	}

	if completedToday, err := s.completionsToday(user.ID); err != nil {
		log.Printf("⚠️  Badge check SPRINTER skipped for user %s: %v", user.ID, err)
	} else if completedToday >= 5 {
		collect(s.awardIfNotEarned(&user, models.BadgeSprinter))
	}

	if commentCount, err := s.commentCount(user.ID); err != nil {
		log.Printf("⚠️  Badge check COMMUNICATOR skipped for user %s: %v", user.ID, err)
	} else if commentCount >= 50 {
		collect(s.awardIfNotEarned(&user, models.BadgeCommunicator))
	}

	if projectCount, err := s.projectCount(user.ID); err != nil {
		log.Printf("⚠️  Badge check TEAM_PLAYER skipped for user %s: %v", user.ID, err)
	} else if projectCount >= 5 {
		collect(s.awardIfNotEarned(&user, models.BadgeTeamPlayer))
	}

	// LEADER tolerates a stale or unavailable ranking: skip the cycle,
	// never fail the flow.
	if topID, err := s.topRankedUserID(); err != nil {
		log.Printf("⚠️  Badge check LEADER skipped for user %s: %v", user.ID, err)
	} else if topID == user.ID {
		collect(s.awardIfNotEarned(&user, models.BadgeLeader))
	}

	return earned, nil
}

// UserBadges lists a user's earned badges, newest first.
func (s *BadgeService) UserBadges(userID string) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := s.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&badges).Error
	return badges, err
}

// AllBadges lists the full catalog, secret badges excluded.
func (s *BadgeService) AllBadges() ([]models.BadgeType, error) {
	var badges []models.BadgeType
	err := s.DB.Where("secret = ?", false).Order("created_at ASC").Find(&badges).Error
	return badges, err
}

// UserHasBadge reports whether the badge code is already recorded for the user.
func (s *BadgeService) UserHasBadge(userID, code string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.UserBadge{}).
		Joins("JOIN badge_types ON badge_types.id = user_badges.badge_type_id").
		Where("user_badges.user_id = ? AND badge_types.code = ?", userID, code).
		Count(&count).Error
	return count > 0, err
}

// awardIfNotEarned records the badge unless the user already holds it.
// Returns the badge when newly awarded, nil otherwise. Failures are logged
// and swallowed so one broken rule cannot sink the others.
func (s *BadgeService) awardIfNotEarned(user *models.User, code string) *models.BadgeType {
	has, err := s.UserHasBadge(user.ID, code)
	if err != nil {
		log.Printf("⚠️  Badge existence check failed for %s/%s: %v", user.ID, code, err)
		return nil
	}
	if has {
		return nil
	}

	var badge models.BadgeType
	if err := s.DB.Where("code = ?", code).First(&badge).Error; err != nil {
		log.Printf("⚠️  Badge not found in catalog: %s", code)
		return nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		userBadge := models.UserBadge{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			BadgeTypeID: badge.ID,
		}
		if err := tx.Create(&userBadge).Error; err != nil {
			return err
		}
		entry := models.ActivityLog{
			ID:         uuid.NewString(),
			UserID:     user.ID,
			Action:     models.ActionBadgeEarned,
			Details:    fmt.Sprintf("Badge conquistado: %s", badge.Name),
			EntityType: "badge",
			EntityID:   badge.ID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		// Unique (user, badge) index makes a concurrent double-award a
		// no-op here rather than a duplicate.
		log.Printf("⚠️  Badge award failed for %s/%s: %v", user.ID, code, err)
		return nil
	}

	log.Printf("🎖️  User %s earned badge: %s", user.ID, code)
	return &badge
}

func (s *BadgeService) completionsToday(userID string) (int, error) {
	today := DateOnly(s.now())
	var count int64
	err := s.DB.Model(&models.ActivityLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ?", userID, models.ActionTaskCompleted, today).
		Count(&count).Error
	return int(count), err
}

func (s *BadgeService) commentCount(userID string) (int, error) {
	var count int64
	err := s.DB.Model(&models.Comment{}).Where("author_id = ?", userID).Count(&count).Error
	return int(count), err
}

func (s *BadgeService) projectCount(userID string) (int, error) {
	var owned int64
	if err := s.DB.Model(&models.Project{}).Where("owner_id = ?", userID).Count(&owned).Error; err != nil {
		return 0, err
	}
	var joined int64
	if err := s.DB.Table("project_members").Where("user_id = ?", userID).Count(&joined).Error; err != nil {
		return 0, err
	}
	return int(owned + joined), nil
}

// topRankedUserID scans the live ranking for the current #1; ties resolve
// by user id to keep the scan deterministic.
func (s *BadgeService) topRankedUserID() (string, error) {
	var top models.User
	err := s.DB.Order("total_points DESC, id ASC").Limit(1).First(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("ranking is empty")
		}
		return "", err
	}
	return top.ID, nil
}
