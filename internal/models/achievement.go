package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Achievement classifications.
const (
	AchievementLeadership    = "Leadership"
	AchievementDelivery      = "Delivery"
	AchievementCommunication = "Communication"
	AchievementImpact        = "Impact"
	AchievementOther         = "Other"
)

func ValidAchievementType(t string) bool {
	switch t {
	case AchievementLeadership, AchievementDelivery, AchievementCommunication,
		AchievementImpact, AchievementOther:
		return true
	}
	return false
}

type Achievement struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	Classification string         `json:"classification" gorm:"not null;default:'Other'"`
	Summary        string         `json:"summary"`
	Project        string         `json:"project"`
	Date           string         `json:"date"` // YYYY-MM-DD
	EvidenceURL    string         `json:"evidenceUrl"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Achievement DTOs
type CreateAchievementRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Summary        string `json:"summary"`
	Project        string `json:"project"`
	Date           string `json:"date"`
	EvidenceURL    string `json:"evidenceUrl"`
}

type UpdateAchievementRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Classification *string `json:"classification"`
	Summary        *string `json:"summary"`
	Project        *string `json:"project"`
	Date           *string `json:"date"`
	EvidenceURL    *string `json:"evidenceUrl"`
}
