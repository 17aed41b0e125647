package recipes

import (
	"context"

	"github.com/crossingbook/crossingbook/internal/models"
)

// Service wraps repository operations with the recipe business rules.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Add inserts a new recipe stamped with the submitting user. The name
// pre-check produces the friendly conflict error; the unique index on
// recipe_name is the backstop for concurrent submissions.
func (s *Service) Add(ctx context.Context, rec *models.Recipe, createdBy string) (*models.Recipe, error) {
	existing, err := s.repo.GetByName(ctx, rec.RecipeName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}
	rec.CreatedBy = createdBy
	if rec.LimitedTime != models.LimitedTimeOn {
		rec.LimitedTime = models.LimitedTimeOff
	}
	return s.repo.Insert(ctx, rec)
}

// Replace overwrites the recipe with the submitted document in full.
// created_by comes from the submitted form, preserved from the original
// flow. Renaming onto another recipe's name returns ErrDuplicateName (the
// store's unique name constraint applies to edits too).
func (s *Service) Replace(ctx context.Context, id string, rec *models.Recipe) error {
	if rec.LimitedTime != models.LimitedTimeOn {
		rec.LimitedTime = models.LimitedTimeOff
	}
	return s.repo.Replace(ctx, id, rec)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Recipe, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*models.Recipe, error) {
	return s.repo.List(ctx)
}

// Search returns recipes matching the full-text query. An empty query returns
// the full listing; a query matching nothing returns an empty slice, not an
// error.
func (s *Service) Search(ctx context.Context, query string) ([]*models.Recipe, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
