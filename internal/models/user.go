package models

import "time"

// User is an account holder. Personal details live on UserProfile.
type User struct {
	Base
	Email               string       `gorm:"uniqueIndex;not null" json:"email"`
	Password            string       `gorm:"not null" json:"-"`
	FirstName           string       `json:"first_name"`
	LastName            string       `json:"last_name"`
	IsActive            bool         `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string       `gorm:"size:64" json:"-"`
	FailedLoginAttempts int          `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time   `json:"-"`
	LastLoginAt         *time.Time   `json:"last_login_at,omitempty"`
	Profile             *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Budgets             []UserBudget `gorm:"foreignKey:UserID" json:"-"`
	Expenses            []Expense    `gorm:"foreignKey:UserID" json:"-"`
}
