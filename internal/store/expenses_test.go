package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

func TestValidateExpense(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
		wantErr bool
	}{
		{
			name: "valid expense",
			expense: models.Expense{
				GroupID:      "g1",
				Description:  "Dinner",
				Amount:       42.5,
				Category:     models.CategoryFood,
				SplitBetween: 2,
			},
		},
		{
			name: "missing description",
			expense: models.Expense{
				GroupID:      "g1",
				Amount:       10,
				Category:     models.CategoryFood,
				SplitBetween: 1,
			},
			wantErr: true,
		},
		{
			name: "missing group",
			expense: models.Expense{
				Description:  "Dinner",
				Amount:       10,
				Category:     models.CategoryFood,
				SplitBetween: 1,
			},
			wantErr: true,
		},
		{
			name: "zero amount",
			expense: models.Expense{
				GroupID:      "g1",
				Description:  "Dinner",
				Category:     models.CategoryFood,
				SplitBetween: 1,
			},
			wantErr: true,
		},
		{
			name: "zero split",
			expense: models.Expense{
				GroupID:     "g1",
				Description: "Dinner",
				Amount:      10,
				Category:    models.CategoryFood,
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			expense: models.Expense{
				GroupID:      "g1",
				Description:  "Dinner",
				Amount:       10,
				Category:     "gambling",
				SplitBetween: 1,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := validateExpense(&tc.expense)
			if tc.wantErr && !errors.Is(err, ErrInvalidExpense) {
				t.Fatalf("expected ErrInvalidExpense, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestCreateExpenseSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	spentAt := time.Date(2025, 6, 3, 19, 30, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 19, 31, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO expenses (id, group_id, description, amount, category, spent_at, paid_by, split_between)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`)).
		WithArgs("e1", "g1", "Dinner at trattoria", 86.0, models.CategoryFood, spentAt, "u1", 4).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := s.CreateExpense(context.Background(), &models.Expense{
		ID:           "e1",
		GroupID:      "g1",
		Description:  "  Dinner at trattoria ",
		Amount:       86,
		Category:     models.CategoryFood,
		SpentAt:      spentAt,
		PaidBy:       models.User{ID: "u1"},
		SplitBetween: 4,
	})
	if err != nil {
		t.Fatalf("CreateExpense error: %v", err)
	}

	if got.Description != "Dinner at trattoria" {
		t.Fatalf("expected trimmed description, got %q", got.Description)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at from database, got %v", got.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListExpensesFilteredByGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	spentAt := time.Date(2025, 6, 3, 19, 30, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 19, 31, 0, 0, time.UTC)

	cols := []string{
		"id", "group_id", "group_name", "description", "amount", "category",
		"spent_at", "split_between", "created_at",
		"paid_by_id", "paid_by_name", "paid_by_avatar", "paid_by_email", "paid_by_created_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta(expenseSelect+`
		WHERE e.group_id = $1
		ORDER BY e.spent_at DESC, e.created_at DESC`)).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("e2", "g1", "Europe Trip", "Museum tickets", 30.0, "sightseeing",
				spentAt.Add(time.Hour), 2, now, "u2", "Jane Smith", "", "jane@example.com", now).
			AddRow("e1", "g1", "Europe Trip", "Dinner", 86.0, "food",
				spentAt, 4, now, "u1", "John Doe", "", "john@example.com", now))

	got, err := s.ListExpenses(context.Background(), models.ExpenseFilter{GroupID: "g1"})
	if err != nil {
		t.Fatalf("ListExpenses error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}
	if got[0].ID != "e2" || got[1].ID != "e1" {
		t.Fatalf("unexpected order: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].GroupName != "Europe Trip" {
		t.Fatalf("expected joined group name, got %q", got[0].GroupName)
	}
	if got[1].PaidBy.Name != "John Doe" {
		t.Fatalf("expected joined payer, got %+v", got[1].PaidBy)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListExpensesUnfiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(expenseSelect+`
		ORDER BY e.spent_at DESC, e.created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "group_id", "group_name", "description", "amount", "category",
			"spent_at", "split_between", "created_at",
			"paid_by_id", "paid_by_name", "paid_by_avatar", "paid_by_email", "paid_by_created_at",
		}))

	got, err := s.ListExpenses(context.Background(), models.ExpenseFilter{})
	if err != nil {
		t.Fatalf("ListExpenses error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no expenses, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetExpenseNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT e.id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetExpense(context.Background(), "missing")
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM expenses
		WHERE id = $1
	`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.DeleteExpense(context.Background(), "missing")
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}
