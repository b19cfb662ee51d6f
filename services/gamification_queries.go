package services

import (
	"errors"
	"time"

	"taskflow-backend/models"

	"gorm.io/gorm"
)

// Profile is the aggregated gamification view for one user.
type Profile struct {
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`

	TotalPoints        int     `json:"total_points"`
	Level              int     `json:"level"`
	LevelName          string  `json:"level_name"`
	PointsToNextLevel  int     `json:"points_to_next_level"`
	NextLevelThreshold int     `json:"next_level_threshold"`
	ProgressPercentage float64 `json:"progress_percentage"`

	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TasksCompleted int `json:"tasks_completed"`
	ProjectsCount  int `json:"projects_count"`
	CommentsCount  int `json:"comments_count"`

	RecentBadges []models.UserBadge `json:"recent_badges"`
	TotalBadges  int                `json:"total_badges"`
	GlobalRank   int                `json:"global_rank"` // 0 when unranked
}

// GetProfile assembles the profile response the frontend renders on the
// gamification page.
func (s *GamificationService) GetProfile(userID string) (*Profile, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var recentBadges []models.UserBadge
	if err := s.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Limit(5).
		Find(&recentBadges).Error; err != nil {
		return nil, err
	}

	var totalBadges int64
	s.DB.Model(&models.UserBadge{}).Where("user_id = ?", userID).Count(&totalBadges)

	var commentsCount int64
	s.DB.Model(&models.Comment{}).Where("author_id = ?", userID).Count(&commentsCount)

	projectsCount, err := s.countProjects(userID)
	if err != nil {
		return nil, err
	}

	current := LevelForPoints(user.TotalPoints)
	next := NextLevelBand(user.Level)

	pointsToNext := next.MinPoints - user.TotalPoints
	if pointsToNext < 0 {
		pointsToNext = 0
	}

	return &Profile{
		UserID:             user.ID,
		UserName:           user.Name,
		AvatarURL:          user.AvatarURL,
		TotalPoints:        user.TotalPoints,
		Level:              user.Level,
		LevelName:          user.LevelName,
		PointsToNextLevel:  pointsToNext,
		NextLevelThreshold: next.MinPoints,
		ProgressPercentage: progressPercentage(user.TotalPoints, current, next),
		CurrentStreak:      user.CurrentStreak,
		LongestStreak:      user.LongestStreak,
		TasksCompleted:     user.TasksCompleted,
		ProjectsCount:      projectsCount,
		CommentsCount:      int(commentsCount),
		RecentBadges:       recentBadges,
		TotalBadges:        int(totalBadges),
		GlobalRank:         s.globalRank(userID),
	}, nil
}

func (s *GamificationService) countProjects(userID string) (int, error) {
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

// globalRank scans the full ranking for the user's position. 0 = unranked.
func (s *GamificationService) globalRank(userID string) int {
	var ids []string
	if err := s.DB.Model(&models.User{}).
		Order("total_points DESC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		return 0
	}
	for i, id := range ids {
		if id == userID {
			return i + 1
		}
	}
	return 0
}

func progressPercentage(totalPoints int, current, next LevelBand) float64 {
	if current.Level == next.Level {
		return 100.0 // level cap
	}
	levelRange := next.MinPoints - current.MinPoints
	progress := totalPoints - current.MinPoints
	pct := float64(progress) * 100.0 / float64(levelRange)
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}

// Ranking is the leaderboard payload served to clients.
type Ranking struct {
	Rankings          []models.LeaderboardEntry `json:"rankings"`
	TotalParticipants int                       `json:"total_participants"`
	SnapshotAt        *time.Time                `json:"snapshot_at,omitempty"`
}

// GetGlobalRanking serves the latest leaderboard snapshot; slight staleness
// is acceptable here. An empty snapshot (fresh deploy) is rebuilt inline.
func (s *GamificationService) GetGlobalRanking(limit int) (*Ranking, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var entries []models.LeaderboardEntry
	if err := s.DB.Order("position ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if err := s.RebuildLeaderboard(); err != nil {
			return nil, err
		}
		if err := s.DB.Order("position ASC").Limit(limit).Find(&entries).Error; err != nil {
			return nil, err
		}
	}

	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	ranking := &Ranking{Rankings: entries, TotalParticipants: int(total)}
	if len(entries) > 0 {
		ranking.SnapshotAt = &entries[0].SnapshotAt
	}
	return ranking, nil
}

// RebuildLeaderboard recomputes the full ranking snapshot from the users
// table. Called by the leaderboard worker on a fixed interval.
func (s *GamificationService) RebuildLeaderboard() error {
	var users []models.User
	if err := s.DB.Order("total_points DESC, id ASC").Find(&users).Error; err != nil {
		return err
	}

	snapshotAt := s.now()
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:         u.ID,
			Position:       i + 1,
			UserName:       u.Name,
			AvatarURL:      u.AvatarURL,
			Level:          u.Level,
			LevelName:      u.LevelName,
			TotalPoints:    u.TotalPoints,
			TasksCompleted: u.TasksCompleted,
			CurrentStreak:  u.CurrentStreak,
			SnapshotAt:     snapshotAt,
		})
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// HeatmapDay is one cell of the activity heatmap.
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Heatmap is the contribution-graph payload: ledger entries grouped per
// calendar day over the requested window.
type Heatmap struct {
	UserID          string       `json:"user_id"`
	Days            []HeatmapDay `json:"days"`
	TotalActivities int          `json:"total_activities"`
	CurrentStreak   int          `json:"current_streak"`
	LongestStreak   int          `json:"longest_streak"`
}

// GetActivityHeatmap aggregates the user's ledger over the last N days.
func (s *GamificationService) GetActivityHeatmap(userID string, days int) (*Heatmap, error) {
	if days < 1 || days > 366 {
		days = 90
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	since := DateOnly(s.now()).AddDate(0, 0, -days)

	var rows []HeatmapDay
	if err := s.DB.Model(&models.ActivityLog{}).
		Select("date(created_at) AS date, count(*) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("date(created_at)").
		Order("date(created_at) ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rows {
		total += r.Count
	}

	return &Heatmap{
		UserID:          userID,
		Days:            rows,
		TotalActivities: total,
		CurrentStreak:   user.CurrentStreak,
		LongestStreak:   user.LongestStreak,
	}, nil
}
