package models

// BudgetMode tags how a budget was set up.
type BudgetMode string

const (
	BudgetModeStudent BudgetMode = "student"
	BudgetModeWorker  BudgetMode = "worker"
	BudgetModeCustom  BudgetMode = "custom"
)

// IntervalUnit is the unit of a budget's recurrence window.
type IntervalUnit string

const (
	IntervalUnitDays   IntervalUnit = "days"
	IntervalUnitWeeks  IntervalUnit = "weeks"
	IntervalUnitMonths IntervalUnit = "months"
)

// Budget represents one user's spending plan for a single calendar month.
// At most one budget exists per user per period key.
type Budget struct {
	Base
	UserID        string       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_user_month" json:"user_id"`
	TotalBudget   float64      `gorm:"not null" json:"total_budget"`
	Mode          BudgetMode   `gorm:"not null" json:"mode"`
	Month         string       `gorm:"not null;uniqueIndex:idx_budget_user_month" json:"month"`
	IntervalUnit  IntervalUnit `gorm:"default:months" json:"interval_unit"`
	IntervalValue int          `gorm:"default:1" json:"interval_value"`

	Categories []Category `gorm:"foreignKey:BudgetID" json:"categories"`
}

// Category is a spending bucket owned by a budget. Expenses reference
// categories by ID only; deleting a category leaves its expenses in place.
type Category struct {
	Base
	BudgetID        string  `gorm:"type:uuid;not null;index" json:"budget_id"`
	Name            string  `gorm:"not null" json:"name"`
	AllocatedAmount float64 `gorm:"not null" json:"allocated_amount"`
	Color           string  `json:"color,omitempty"`
	Icon            string  `json:"icon,omitempty"`
}
