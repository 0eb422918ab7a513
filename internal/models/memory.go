package models

import "time"

// Memory is a social post with an image, a location and engagement counters
type Memory struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	TakenAt     time.Time `json:"taken_at"`
	Location    string    `json:"location"`
	People      []User    `json:"people"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	IsLiked     bool      `json:"is_liked"`
	CreatedAt   time.Time `json:"created_at"`
}
