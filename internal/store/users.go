package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

// CreateUser registers a travel companion.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, avatar, email)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, user.ID, user.Name, user.Avatar, user.Email).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a single user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, avatar, email, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Avatar, &u.Email, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &u, nil
}

// ListUsers returns every registered user ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, avatar, email, created_at
		FROM users
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
