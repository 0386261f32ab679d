package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal categories.
const (
	CategoryCareer   = "Career"
	CategoryPersonal = "Personal"
)

type Goal struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null;default:'Career'"` // Career, Personal
	Description string         `json:"description"`
	Timeframe   string         `json:"timeframe"`
	Progress    int            `json:"progress" gorm:"default:0"`
	Tags        []string       `json:"tags" gorm:"serializer:json"`
	IsCompleted bool           `json:"isCompleted" gorm:"default:false"`
	CompletedAt *time.Time     `json:"completedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	Milestones  []Milestone    `json:"milestones" gorm:"foreignKey:GoalID"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	Title       string                   `json:"title" validate:"required"`
	Category    string                   `json:"category"`
	Description string                   `json:"description"`
	Timeframe   string                   `json:"timeframe"`
	Tags        []string                 `json:"tags"`
	Milestones  []CreateMilestoneRequest `json:"milestones"`
}

type UpdateGoalRequest struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Timeframe   *string   `json:"timeframe"`
	Tags        *[]string `json:"tags"`
	IsCompleted *bool     `json:"isCompleted"`
}
