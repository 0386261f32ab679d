package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Department heads can manage department-level KPIs and link
// individual KPIs underneath them.
const (
	RoleEmployee       = "employee"
	RoleDepartmentHead = "department_head"
)

type User struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email      string         `json:"email" gorm:"uniqueIndex;not null"`
	Password   string         `json:"-"`
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	AvatarURL  string         `json:"avatarUrl"`
	Role       string         `json:"role" gorm:"default:employee"`
	Department string         `json:"department"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) IsDepartmentHead() bool {
	return u.Role == RoleDepartmentHead
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	AvatarURL  *string `json:"avatarUrl"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Password   *string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
