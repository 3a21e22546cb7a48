package options

import (
	"context"

	"github.com/simplefs/catalog-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads filter options and their values.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListWithValues loads every option with its values. Ordering of values is
// normalized later when the catalog is assembled, so the query only pins
// option order for stable output.
func (r *Repository) ListWithValues(ctx context.Context) ([]models.Option, error) {
	var opts []models.Option
	if err := r.db.WithContext(ctx).
		Preload("Values").
		Order("options.id ASC").
		Find(&opts).
		Error; err != nil {
		return nil, err
	}
	return opts, nil
}
