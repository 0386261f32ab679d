package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KPI value types.
const (
	KPITypeNumeric    = "numeric"
	KPITypePercentage = "percentage"
	KPITypeCurrency   = "currency"
)

// KPI levels. Individual KPIs may roll up to one department KPI.
const (
	KPILevelIndividual = "individual"
	KPILevelDepartment = "department"
)

type KPI struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	Type          string         `json:"type" gorm:"not null;default:'numeric'"` // numeric, percentage, currency
	TargetValue   float64        `json:"targetValue" gorm:"not null"`
	CurrentValue  float64        `json:"currentValue" gorm:"default:0"`
	Weight        int            `json:"weight" gorm:"default:1"`
	Level         string         `json:"level" gorm:"not null;default:'individual'"` // individual, department
	ParentKPIID   *uuid.UUID     `json:"parentKpiId" gorm:"type:uuid;index"`
	LinkedGoalIDs []string       `json:"linkedGoalIds" gorm:"serializer:json"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (k *KPI) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// KPI DTOs. Parent links are absent on purpose: the hierarchy is only
// writable through the children endpoint, which enforces the
// department-head and same-department checks.
type CreateKPIRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	TargetValue   *float64 `json:"targetValue" validate:"required"`
	CurrentValue  float64  `json:"currentValue"`
	Weight        int      `json:"weight"`
	Level         string   `json:"level"`
	LinkedGoalIDs []string `json:"linkedGoalIds"`
	Notes         string   `json:"notes"`
}

type UpdateKPIRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Type          *string    `json:"type"`
	TargetValue   *float64   `json:"targetValue"`
	CurrentValue  *float64   `json:"currentValue"`
	Weight        *int       `json:"weight"`
	LinkedGoalIDs *[]string  `json:"linkedGoalIds"`
	Notes         *string    `json:"notes"`
}

type LinkChildrenRequest struct {
	ChildIDs []uuid.UUID `json:"childIds"`
}
