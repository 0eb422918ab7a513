package expenses

import (
	"context"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

// Store captures the persistence needs for expense workflows.
type Store interface {
	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// Service coordinates expense operations.
type Service interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Get(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateExpense(ctx, expense)
}

func (s *service) Get(ctx context.Context, id string) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetExpense(ctx, id)
}

func (s *service) List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteExpense(ctx, id)
}
