package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone / task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Milestone struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID      `json:"goalId" gorm:"type:uuid;index;not null"`
	Description string         `json:"description" gorm:"not null"`
	Status      string         `json:"status" gorm:"not null;default:'pending'"` // pending, completed
	DueDate     string         `json:"dueDate"`                                  // YYYY-MM-DD
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Milestone DTOs
type CreateMilestoneRequest struct {
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate"`
}

type UpdateMilestoneRequest struct {
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

type ConvertMilestoneRequest struct {
	ListID *uuid.UUID `json:"listId"`
}
