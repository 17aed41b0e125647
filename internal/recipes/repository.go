package recipes

import (
	"context"
	"errors"

	"github.com/crossingbook/crossingbook/internal/models"
)

var (
	// ErrNotFound is returned for lookups by an unknown or malformed id.
	ErrNotFound = errors.New("recipe not found")
	// ErrDuplicateName is returned when a recipe with the same name exists.
	ErrDuplicateName = errors.New("recipe already exists")
)

// Repository defines persistence operations for recipes.
//
// Replace performs a full-document replace: the stored document becomes
// exactly the submitted one, dropping any field the caller omitted. Renaming
// onto a name held by a different recipe returns ErrDuplicateName. Replace
// and Delete are silent no-ops for well-formed ids that match nothing;
// malformed ids map to ErrNotFound rather than surfacing a decode fault.
type Repository interface {
	Insert(ctx context.Context, rec *models.Recipe) (*models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	GetByName(ctx context.Context, name string) (*models.Recipe, error)
	List(ctx context.Context) ([]*models.Recipe, error)
	Search(ctx context.Context, query string) ([]*models.Recipe, error)
	Replace(ctx context.Context, id string, rec *models.Recipe) error
	Delete(ctx context.Context, id string) error
}
