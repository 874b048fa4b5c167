package models

import "time"

// Expense is a single spend entry. CategoryID is a soft reference: the
// category may have been deleted since, and the link is resolved to an
// "Unknown Category" sentinel at display time.
type Expense struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Amount     float64   `gorm:"not null" json:"amount"`
	CategoryID string    `gorm:"type:uuid" json:"category_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Notes      string    `json:"notes,omitempty"`

	// Month is the period key derived from Date at write time, used for
	// period-scoped queries.
	Month string `gorm:"not null;index" json:"month"`
}

// IncomeFrequency is how often an income source recurs.
type IncomeFrequency string

const (
	IncomeFrequencyWeekly  IncomeFrequency = "weekly"
	IncomeFrequencyMonthly IncomeFrequency = "monthly"
	IncomeFrequencyYearly  IncomeFrequency = "yearly"
	IncomeFrequencyOneTime IncomeFrequency = "one-time"
)

// IncomeSource records recurring or one-time income. It is independent of
// any budget and is not factored into budget statistics.
type IncomeSource struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string          `gorm:"not null" json:"name"`
	Amount    float64         `gorm:"not null" json:"amount"`
	Frequency IncomeFrequency `gorm:"not null" json:"frequency"`
	Color     string          `json:"color,omitempty"`
}
