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

func validateGroup(g *models.TripGroup) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGroup)
	}
	if g.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidGroup)
	}
	switch g.Status {
	case models.GroupStatusUpcoming, models.GroupStatusActive, models.GroupStatusCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidGroup, g.Status)
	}
	if g.EndDate.Before(g.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidGroup)
	}
	return nil
}

// CreateGroup adds a trip group and its member list.
func (s *Store) CreateGroup(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error) {
	group.Name = strings.TrimSpace(group.Name)
	if err := validateGroup(group); err != nil {
		return nil, err
	}
	if group.ID == "" {
		group.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO trip_groups (id, name, status, start_date, end_date, budget)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, group.ID, group.Name, group.Status, group.StartDate, group.EndDate, group.Budget).
		Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert trip group: %w", err)
	}

	for i, member := range group.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trip_group_members (group_id, user_id, position)
			VALUES ($1, $2, $3)
		`, group.ID, member.ID, i); err != nil {
			return nil, fmt.Errorf("insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return group, nil
}

// GetGroup retrieves a trip group with members and total spend.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.TripGroup, error) {
	var g models.TripGroup
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.status, g.start_date, g.end_date, g.budget,
		       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.group_id = g.id), 0),
		       g.created_at, g.updated_at
		FROM trip_groups g
		WHERE g.id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Status, &g.StartDate, &g.EndDate, &g.Budget,
		&g.Spent, &g.CreatedAt, &g.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select trip group: %w", err)
	}

	members, err := s.groupMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Members = members

	return &g, nil
}

// ListGroups returns every trip group, newest start date first.
func (s *Store) ListGroups(ctx context.Context) ([]*models.TripGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.status, g.start_date, g.end_date, g.budget,
		       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.group_id = g.id), 0),
		       g.created_at, g.updated_at
		FROM trip_groups g
		ORDER BY g.start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select trip groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.TripGroup
	for rows.Next() {
		var g models.TripGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.StartDate, &g.EndDate,
			&g.Budget, &g.Spent, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan trip group: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trip groups: %w", err)
	}

	for _, g := range groups {
		members, err := s.groupMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		g.Members = members
	}

	return groups, nil
}

// UpdateGroup replaces a trip group's fields and member list.
func (s *Store) UpdateGroup(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error) {
	group.Name = strings.TrimSpace(group.Name)
	if err := validateGroup(group); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		UPDATE trip_groups
		SET name = $1, status = $2, start_date = $3, end_date = $4,
		    budget = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING created_at, updated_at
	`, group.Name, group.Status, group.StartDate, group.EndDate, group.Budget, id).
		Scan(&group.CreatedAt, &group.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update trip group: %w", err)
	}
	group.ID = id

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM trip_group_members
		WHERE group_id = $1
	`, id); err != nil {
		return nil, fmt.Errorf("delete group members: %w", err)
	}

	for i, member := range group.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trip_group_members (group_id, user_id, position)
			VALUES ($1, $2, $3)
		`, id, member.ID, i); err != nil {
			return nil, fmt.Errorf("insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return group, nil
}

// DeleteGroup removes a trip group, its membership rows and its expenses.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM trip_groups
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete trip group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (s *Store) groupMembers(ctx context.Context, groupID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.avatar, u.email, u.created_at
		FROM trip_group_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.position ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("select group members: %w", err)
	}
	defer rows.Close()

	var members []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, u)
	}

	return members, rows.Err()
}
