package trips

import (
	"context"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

// Store captures the persistence needs for trip group workflows.
type Store interface {
	CreateGroup(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error)
	GetGroup(ctx context.Context, id string) (*models.TripGroup, error)
	ListGroups(ctx context.Context) ([]*models.TripGroup, error)
	UpdateGroup(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error)
	DeleteGroup(ctx context.Context, id string) error
}

// Service coordinates trip group operations.
type Service interface {
	Create(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error)
	Get(ctx context.Context, id string) (*models.TripGroup, error)
	List(ctx context.Context) ([]*models.TripGroup, error)
	Update(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateGroup(ctx, group)
}

func (s *service) Get(ctx context.Context, id string) (*models.TripGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*models.TripGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGroups(ctx)
}

func (s *service) Update(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateGroup(ctx, id, group)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteGroup(ctx, id)
}
