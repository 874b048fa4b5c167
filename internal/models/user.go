package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	DisplayName         string     `json:"display_name"`
	IsAdmin             bool       `gorm:"default:false" json:"is_admin"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Budgets      []Budget       `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses     []Expense      `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Goals        []Goal         `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Achievements []Achievement  `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Incomes      []IncomeSource `gorm:"foreignKey:UserID" json:"incomes,omitempty"`
}
