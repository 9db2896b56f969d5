package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type User struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name          string    `json:"name" gorm:"size:150;not null"`
	Email         string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	ContactNumber string    `json:"contact_number" gorm:"size:30"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Role          Role      `json:"role" gorm:"size:20;not null;default:'User'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeRole accepts any casing of a known role and falls back to RoleUser
func NormalizeRole(role string) Role {
	switch {
	case len(role) == 0:
		return RoleUser
	case strings.EqualFold(role, string(RoleAdmin)):
		return RoleAdmin
	default:
		return RoleUser
	}
}
