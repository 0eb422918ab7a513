package models

import "time"

// ExpenseCategory buckets an expense for display
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryCoffee        ExpenseCategory = "coffee"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategorySightseeing   ExpenseCategory = "sightseeing"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryOther         ExpenseCategory = "other"
)

// KnownCategories lists every accepted expense category.
var KnownCategories = []ExpenseCategory{
	CategoryFood, CategoryCoffee, CategoryShopping, CategoryEntertainment,
	CategorySightseeing, CategoryTransport, CategoryOther,
}

// Expense is a cost record attributed to a group, a payer, and a split count
type Expense struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id"`
	GroupName    string          `json:"group_name"` // Populated via JOIN, not stored
	Description  string          `json:"description"`
	Amount       float64         `json:"amount"`
	Category     ExpenseCategory `json:"category"`
	SpentAt      time.Time       `json:"spent_at"`
	PaidBy       User            `json:"paid_by"`
	SplitBetween int             `json:"split_between"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ExpenseFilter narrows an expense listing
type ExpenseFilter struct {
	GroupID string
}
