package services

import (
	"errors"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// EnsureUser upserts the identity the gateway forwarded. Gamification
// fields keep their zero/default state on first sight and are never
// touched here afterwards.
func (s *UserService) EnsureUser(id, name, email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:        id,
			Name:      name,
			Email:     email,
			Role:      models.RoleUser,
			Level:     1,
			LevelName: LevelName(1),
		}
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if (name != "" && user.Name != name) || (email != "" && user.Email != email) {
		if name != "" {
			user.Name = name
		}
		if email != "" {
			user.Email = email
		}
		if err := s.DB.Model(&user).Updates(map[string]interface{}{
			"name": user.Name, "email": user.Email,
		}).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Get loads one user.
func (s *UserService) Get(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetAvatarURL stores the uploaded avatar location.
func (s *UserService) SetAvatarURL(id, url string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", id).Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
