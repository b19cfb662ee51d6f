package models

import (
	"time"
)

// Badge criteria kinds (informational; evaluation lives in services.BadgeService)
const (
	CriteriaTasksCompleted   = "TASKS_COMPLETED"
	CriteriaStreakDays       = "STREAK_DAYS"
	CriteriaTasksInDay       = "TASKS_IN_DAY"
	CriteriaCommentsMade     = "COMMENTS_MADE"
	CriteriaTopRank          = "TOP_RANK"
	CriteriaEarlyCompletions = "EARLY_COMPLETIONS"
	CriteriaProjectsJoined   = "PROJECTS_JOINED"
)

// BadgeType is a static catalog entry, seeded once at startup and never
// mutated afterwards.
type BadgeType struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code          string    `gorm:"uniqueIndex;not null" json:"code"` // e.g., "FIRST_TASK"
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	CriteriaType  string    `gorm:"type:varchar(24)" json:"criteria_type"`
	RequiredCount int       `json:"required_count"`
	Secret        bool      `json:"secret" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserBadge is the awarded instance; unique per (user, badge), written once.
type UserBadge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"index:idx_user_badge,unique;not null" json:"user_id"`
	BadgeTypeID string    `gorm:"index:idx_user_badge,unique;not null" json:"badge_type_id"`
	Badge       BadgeType `gorm:"foreignKey:BadgeTypeID" json:"badge"`
	EarnedAt    time.Time `json:"earned_at" gorm:"autoCreateTime"`
}

// Badge codes
const (
	BadgeFirstTask    = "FIRST_TASK"
	BadgeOnFire       = "ON_FIRE"
	BadgeSprinter     = "SPRINTER"
	BadgeCommunicator = "COMMUNICATOR"
	BadgeLeader       = "LEADER"
	BadgeCenturion    = "CENTURION"
	BadgeEarlyBird    = "EARLY_BIRD"
	BadgeTeamPlayer   = "TEAM_PLAYER"
)

// BadgeCatalog is the fixed badge list, inserted at process start if absent.
var BadgeCatalog = []BadgeType{
	{
		Code:          BadgeFirstTask,
		Name:          "Primeira Tarefa",
		Description:   "Complete sua primeira tarefa",
		Icon:          "trophy",
		CriteriaType:  CriteriaTasksCompleted,
		RequiredCount: 1,
	},
	{
		Code:          BadgeOnFire,
		Name:          "Em Chamas",
		Description:   "Mantenha um streak de 7 dias",
		Icon:          "fire",
		CriteriaType:  CriteriaStreakDays,
		RequiredCount: 7,
	},
	{
		Code:          BadgeSprinter,
		Name:          "Velocista",
		Description:   "Complete 5 tarefas em um dia",
		Icon:          "bolt",
		CriteriaType:  CriteriaTasksInDay,
		RequiredCount: 5,
	},
	{
		Code:          BadgeCommunicator,
		Name:          "Comunicador",
		Description:   "Faca 50 comentarios",
		Icon:          "comment",
		CriteriaType:  CriteriaCommentsMade,
		RequiredCount: 50,
	},
	{
		Code:          BadgeLeader,
		Name:          "Lider",
		Description:   "Seja top 1 do ranking",
		Icon:          "crown",
		CriteriaType:  CriteriaTopRank,
		RequiredCount: 1,
	},
	{
		Code:          BadgeCenturion,
		Name:          "Centuriao",
		Description:   "Complete 100 tarefas",
		Icon:          "medal",
		CriteriaType:  CriteriaTasksCompleted,
		RequiredCount: 100,
	},
	{
		Code:          BadgeEarlyBird,
		Name:          "Madrugador",
		Description:   "Complete 10 tarefas antes do deadline",
		Icon:          "clock",
		CriteriaType:  CriteriaEarlyCompletions,
		RequiredCount: 10,
	},
	{
		Code:          BadgeTeamPlayer,
		Name:          "Jogador de Equipe",
		Description:   "Participe de 5 projetos",
		Icon:          "users",
		CriteriaType:  CriteriaProjectsJoined,
		RequiredCount: 5,
	},
}
