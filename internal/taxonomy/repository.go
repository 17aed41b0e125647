package taxonomy

import (
	"context"
	"errors"

	"github.com/crossingbook/crossingbook/internal/models"
)

// ErrNotFound is returned for lookups by an unknown or malformed id.
var ErrNotFound = errors.New("recipe type not found")

// Repository defines persistence operations for the recipe-type taxonomy.
// List always returns types sorted ascending by name. Replace and Delete
// follow the same contract as the recipes repository: silent no-ops for
// well-formed ids matching nothing, ErrNotFound for malformed ids.
type Repository interface {
	Insert(ctx context.Context, t *models.RecipeType) (*models.RecipeType, error)
	GetByID(ctx context.Context, id string) (*models.RecipeType, error)
	List(ctx context.Context) ([]*models.RecipeType, error)
	Replace(ctx context.Context, id string, t *models.RecipeType) error
	Delete(ctx context.Context, id string) error
}
