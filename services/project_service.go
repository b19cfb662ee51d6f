package services

import (
	"errors"
	"fmt"

	"taskflow-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

// Create inserts a project owned by ownerID, deriving a unique URL slug
// from the name.
func (s *ProjectService) Create(name, description, ownerID string) (*models.Project, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}

	projectSlug, err := s.uniqueSlug(name)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        projectSlug,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.DB.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// uniqueSlug slugifies the name and suffixes a counter on collision.
func (s *ProjectService) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := s.DB.Model(&models.Project{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// AddMember joins a user to the project's member list.
func (s *ProjectService) AddMember(projectID, userID string) error {
	var project models.Project
	if err := s.DB.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.DB.Model(&project).Association("Members").Append(&user)
}

// Get loads one project by id or slug, with owner and members.
func (s *ProjectService) Get(idOrSlug string) (*models.Project, error) {
	var project models.Project
	err := s.DB.Preload("Owner").Preload("Members").
		Where("id = ? OR slug = ?", idOrSlug, idOrSlug).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListForUser returns projects the user owns or belongs to.
func (s *ProjectService) ListForUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.DB.
		Joins("LEFT JOIN project_members pm ON pm.project_id = projects.id").
		Where("projects.owner_id = ? OR pm.user_id = ?", userID, userID).
		Group("projects.id").
		Find(&projects).Error
	return projects, err
}
