package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

// bootstrapDemoData seeds a small data set so a fresh install has something
// to show. Seeding is skipped when the schema is missing or already populated.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	usersTableExists, err := tableExists(ctx, db, "users")
	if err != nil {
		return fmt.Errorf("check users table: %w", err)
	}
	if !usersTableExists {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{ID: "u1", Name: "John Doe", Avatar: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=100"},
		{ID: "u2", Name: "Jane Smith", Avatar: "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=100"},
		{ID: "u3", Name: "Mike Johnson", Avatar: "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=100"},
		{ID: "u4", Name: "Sara Wilson", Avatar: "https://images.pexels.com/photos/3754208/pexels-photo-3754208.jpeg?auto=compress&cs=tinysrgb&w=100"},
		{ID: "u5", Name: "David Brown", Avatar: "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=100"},
	}
	for i := range users {
		if _, err := dataStore.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %q: %w", users[i].Name, err)
		}
	}

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	groups := []models.TripGroup{
		{
			ID:        "g1",
			Name:      "Europe Trip",
			Status:    models.GroupStatusUpcoming,
			StartDate: date(2025, time.July, 15),
			EndDate:   date(2025, time.July, 30),
			Budget:    2000,
			Members:   users[0:4],
		},
		{
			ID:        "g2",
			Name:      "Beach Weekend",
			Status:    models.GroupStatusActive,
			StartDate: date(2025, time.June, 10),
			EndDate:   date(2025, time.June, 12),
			Budget:    500,
			Members:   users[1:5],
		},
		{
			ID:        "g3",
			Name:      "Mountain Retreat",
			Status:    models.GroupStatusCompleted,
			StartDate: date(2025, time.May, 5),
			EndDate:   date(2025, time.May, 8),
			Budget:    800,
			Members:   users[0:3],
		},
	}
	for i := range groups {
		if _, err := dataStore.CreateGroup(ctx, &groups[i]); err != nil {
			return fmt.Errorf("seed group %q: %w", groups[i].Name, err)
		}
	}

	expenses := []models.Expense{
		{
			ID: "e1", GroupID: "g1", Description: "Hotel Booking - Paris",
			Amount: 350, Category: models.CategoryOther,
			SpentAt: date(2025, time.June, 15), PaidBy: users[0], SplitBetween: 4,
		},
		{
			ID: "e2", GroupID: "g2", Description: "Seafood Dinner",
			Amount: 120, Category: models.CategoryFood,
			SpentAt: date(2025, time.June, 11), PaidBy: users[1], SplitBetween: 4,
		},
		{
			ID: "e3", GroupID: "g2", Description: "Beach Club Entry",
			Amount: 80, Category: models.CategoryEntertainment,
			SpentAt: date(2025, time.June, 11), PaidBy: users[2], SplitBetween: 4,
		},
		{
			ID: "e4", GroupID: "g3", Description: "Cable Car Tickets",
			Amount: 60, Category: models.CategoryTransport,
			SpentAt: date(2025, time.May, 6), PaidBy: users[0], SplitBetween: 3,
		},
	}
	for i := range expenses {
		if _, err := dataStore.CreateExpense(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("seed expense %q: %w", expenses[i].Description, err)
		}
	}

	memories := []models.Memory{
		{
			ID:          "m1",
			Title:       "Sunset at Santorini",
			Description: "Watching the beautiful sunset from Oia. The sky was painted with vibrant orange and purple hues, creating the perfect backdrop for our dinner.",
			Image:       "https://images.pexels.com/photos/1034650/pexels-photo-1034650.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			TakenAt:     date(2025, time.June, 5),
			Location:    "Santorini, Greece",
			People:      users[0:4],
			Likes:       24,
			Comments:    5,
			IsLiked:     true,
		},
		{
			ID:          "m2",
			Title:       "Hiking in the Alps",
			Description: "A challenging but rewarding hike through the Swiss Alps. We climbed for 4 hours to reach this viewpoint.",
			Image:       "https://images.pexels.com/photos/732632/pexels-photo-732632.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			TakenAt:     date(2025, time.May, 20),
			Location:    "Swiss Alps, Switzerland",
			People:      users[0:3],
			Likes:       18,
			Comments:    3,
		},
		{
			ID:          "m3",
			Title:       "Beach Day in Bali",
			Description: "Perfect day at Nusa Dua beach with crystal clear water and white sand.",
			Image:       "https://images.pexels.com/photos/1174732/pexels-photo-1174732.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			TakenAt:     date(2025, time.April, 12),
			Location:    "Nusa Dua, Bali",
			People:      users[1:5],
			Likes:       32,
			Comments:    7,
			IsLiked:     true,
		},
	}
	for i := range memories {
		if _, err := dataStore.CreateMemory(ctx, &memories[i]); err != nil {
			return fmt.Errorf("seed memory %q: %w", memories[i].Title, err)
		}
	}

	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
