package models

import "time"

// GroupStatus tracks where a trip group is in its lifecycle
type GroupStatus string

const (
	GroupStatusUpcoming  GroupStatus = "Upcoming"
	GroupStatusActive    GroupStatus = "Active"
	GroupStatusCompleted GroupStatus = "Completed"
)

// TripGroup is a named set of users sharing a travel budget
type TripGroup struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    GroupStatus `json:"status"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Budget    float64     `json:"budget"`
	Spent     float64     `json:"spent"` // Computed from expenses, not stored
	Members   []User      `json:"members"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
