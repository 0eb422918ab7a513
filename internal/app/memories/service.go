package memories

import (
	"context"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

// Store captures the persistence needs for memory workflows.
type Store interface {
	CreateMemory(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	GetMemory(ctx context.Context, id string) (*models.Memory, error)
	ListMemories(ctx context.Context) ([]*models.Memory, error)
	ToggleMemoryLike(ctx context.Context, id string) (*models.Memory, error)
}

// Service coordinates memory feed operations.
type Service interface {
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	Get(ctx context.Context, id string) (*models.Memory, error)
	List(ctx context.Context) ([]*models.Memory, error)
	ToggleLike(ctx context.Context, id string) (*models.Memory, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateMemory(ctx, memory)
}

func (s *service) Get(ctx context.Context, id string) (*models.Memory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetMemory(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*models.Memory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListMemories(ctx)
}

func (s *service) ToggleLike(ctx context.Context, id string) (*models.Memory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ToggleMemoryLike(ctx, id)
}
