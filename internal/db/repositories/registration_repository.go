// registration_repository.go implements RegistrationRepository, the read-only queries
// behind the registration report: approved rows ordered by approval time and pending
// rows ordered by creation time, each joined with category and panchayath lookups.
package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sevadesk/sevadesk/internal/db/models"
)

// RegistrationRepository handles registration read queries for reporting.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// registrationColumns is shared by both list queries so the two result sets stay
// structurally identical. fee_paid is COALESCEd so rows inserted before the fee
// column was backfilled read as 0 rather than NULL.
const registrationColumns = `
	r.id, r.customer_id, r.name, r.mobile, r.address, r.ward, r.agent_id,
	r.status, r.created_at, r.approved_at, r.approved_by, r.expires_at,
	COALESCE(r.fee_paid, 0) AS fee_paid,
	r.category_id, c.name AS category_name,
	r.panchayath_id, p.name AS panchayath_name, p.district AS district
`

// ListApproved returns all approved registrations, most recently approved first,
// with category and panchayath names resolved.
func (r *RegistrationRepository) ListApproved(ctx context.Context) ([]models.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM registrations r
		LEFT JOIN categories c ON c.id = r.category_id
		LEFT JOIN panchayaths p ON p.id = r.panchayath_id
		WHERE r.status = $1
		ORDER BY r.approved_at DESC
	`, registrationColumns)

	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query, models.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to list approved registrations: %w", err)
	}
	return regs, nil
}

// ListPending returns all pending registrations, most recently created first,
// with the same joins as ListApproved.
func (r *RegistrationRepository) ListPending(ctx context.Context) ([]models.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM registrations r
		LEFT JOIN categories c ON c.id = r.category_id
		LEFT JOIN panchayaths p ON p.id = r.panchayath_id
		WHERE r.status = $1
		ORDER BY r.created_at DESC
	`, registrationColumns)

	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query, models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to list pending registrations: %w", err)
	}
	return regs, nil
}
