package taxonomy

import (
	"context"

	"github.com/crossingbook/crossingbook/internal/models"
)

// Service wraps the taxonomy repository. The taxonomy is an open, flat label
// set: adds and edits do not cascade to recipes already referencing a name.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

func (s *Service) Add(ctx context.Context, name string) (*models.RecipeType, error) {
	return s.repo.Insert(ctx, &models.RecipeType{Name: name})
}

func (s *Service) Get(ctx context.Context, id string) (*models.RecipeType, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all types sorted ascending by name.
func (s *Service) List(ctx context.Context) ([]*models.RecipeType, error) {
	return s.repo.List(ctx)
}

func (s *Service) Replace(ctx context.Context, id, name string) error {
	return s.repo.Replace(ctx, id, &models.RecipeType{Name: name})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
