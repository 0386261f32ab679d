package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskList struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title     string         `json:"title" gorm:"not null"`
	IsDefault bool           `json:"isDefault" gorm:"default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (l *TaskList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Task struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	ListID       uuid.UUID      `json:"listId" gorm:"type:uuid;index;not null"`
	LinkedGoalID *uuid.UUID     `json:"linkedGoalId" gorm:"type:uuid;index"`
	Title        string         `json:"title" gorm:"not null"`
	Details      string         `json:"details"`
	DueDate      string         `json:"dueDate"` // YYYY-MM-DD
	Status       string         `json:"status" gorm:"not null;default:'pending'"` // pending, completed
	CompletedAt  *time.Time     `json:"completedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskList DTOs
type CreateTaskListRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateTaskListRequest struct {
	Title *string `json:"title"`
}

// Task DTOs
type CreateTaskRequest struct {
	ListID       uuid.UUID  `json:"listId" validate:"required"`
	LinkedGoalID *uuid.UUID `json:"linkedGoalId"`
	Title        string     `json:"title" validate:"required"`
	Details      string     `json:"details"`
	DueDate      string     `json:"dueDate"`
}

type UpdateTaskRequest struct {
	ListID       *uuid.UUID `json:"listId"`
	LinkedGoalID *uuid.UUID `json:"linkedGoalId"`
	ClearLink    bool       `json:"clearLink"`
	Title        *string    `json:"title"`
	Details      *string    `json:"details"`
	DueDate      *string    `json:"dueDate"`
	Status       *string    `json:"status"`
}
