// lookup_repository.go implements LookupRepository, serving the category and
// panchayath listings that populate the report screen's filter dropdowns.
package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sevadesk/sevadesk/internal/db/models"
)

// LookupRepository handles read queries against the lookup tables.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListCategories returns all categories ordered by name.
func (r *LookupRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	err := r.db.SelectContext(ctx, &cats, `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return cats, nil
}

// ListPanchayaths returns all panchayaths ordered by district then name.
func (r *LookupRepository) ListPanchayaths(ctx context.Context) ([]models.Panchayath, error) {
	pans := []models.Panchayath{}
	err := r.db.SelectContext(ctx, &pans, `
		SELECT id, name, district, created_at
		FROM panchayaths
		ORDER BY district ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list panchayaths: %w", err)
	}
	return pans, nil
}
