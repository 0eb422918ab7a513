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

func validateExpense(e *models.Expense) error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if e.GroupID == "" {
		return fmt.Errorf("%w: group is required", ErrInvalidExpense)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if e.SplitBetween < 1 {
		return fmt.Errorf("%w: split count must be at least 1", ErrInvalidExpense)
	}
	for _, c := range models.KnownCategories {
		if e.Category == c {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown category %q", ErrInvalidExpense, e.Category)
}

// CreateExpense records an expense against a trip group.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	expense.Description = strings.TrimSpace(expense.Description)
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO expenses (id, group_id, description, amount, category, spent_at, paid_by, split_between)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.Category, expense.SpentAt, expense.PaidBy.ID, expense.SplitBetween).
		Scan(&expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	return expense, nil
}

// GetExpense retrieves a single expense with payer and group name.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var e models.Expense
	err := s.db.QueryRowContext(ctx, expenseSelect+`
		WHERE e.id = $1
	`, id).Scan(expenseScanDest(&e)...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select expense: %w", err)
	}

	return &e, nil
}

// ListExpenses returns expenses, newest first, optionally scoped to a group.
func (s *Store) ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	query := expenseSelect
	var args []interface{}
	if filter.GroupID != "" {
		query += `
		WHERE e.group_id = $1`
		args = append(args, filter.GroupID)
	}
	query += `
		ORDER BY e.spent_at DESC, e.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(expenseScanDest(&e)...); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM expenses
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

const expenseSelect = `
		SELECT e.id, e.group_id, g.name, e.description, e.amount, e.category,
		       e.spent_at, e.split_between, e.created_at,
		       u.id, u.name, u.avatar, u.email, u.created_at
		FROM expenses e
		JOIN trip_groups g ON g.id = e.group_id
		JOIN users u ON u.id = e.paid_by`

func expenseScanDest(e *models.Expense) []interface{} {
	return []interface{}{
		&e.ID, &e.GroupID, &e.GroupName, &e.Description, &e.Amount, &e.Category,
		&e.SpentAt, &e.SplitBetween, &e.CreatedAt,
		&e.PaidBy.ID, &e.PaidBy.Name, &e.PaidBy.Avatar, &e.PaidBy.Email, &e.PaidBy.CreatedAt,
	}
}
