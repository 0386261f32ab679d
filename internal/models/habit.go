package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Habit tracks a recurring practice. StreakCount and LastLoggedDate are
// derived from History on every toggle, never set directly by clients.
type Habit struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name           string         `json:"name" gorm:"not null"`
	StreakCount    int            `json:"streakCount" gorm:"default:0"`
	LastLoggedDate string         `json:"lastLoggedDate"` // YYYY-MM-DD
	History        []string       `json:"history" gorm:"serializer:json"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Habit DTOs
type CreateHabitRequest struct {
	Name string `json:"name" validate:"required"`
}

type ToggleHabitRequest struct {
	Date string `json:"date" validate:"required"` // YYYY-MM-DD
}
