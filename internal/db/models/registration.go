// Package models contains the database row types for the reporting service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration status values. The report only reads approved and pending rows;
// rejected and expired exist in the schema but never reach the screen.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

// Registration represents one registration row joined with its category and
// panchayath lookups. Nullable columns are pointers; FeePaid is COALESCEd to 0
// in the queries so it stays a plain float64.
type Registration struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CustomerID     string     `json:"customer_id" db:"customer_id"`
	Name           string     `json:"name" db:"name"`
	Mobile         string     `json:"mobile" db:"mobile"`
	Address        *string    `json:"address,omitempty" db:"address"`
	Ward           *string    `json:"ward,omitempty" db:"ward"`
	AgentID        *string    `json:"agent_id,omitempty" db:"agent_id"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy     *string    `json:"approved_by,omitempty" db:"approved_by"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	FeePaid        float64    `json:"fee_paid" db:"fee_paid"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	CategoryName   *string    `json:"category_name,omitempty" db:"category_name"`
	PanchayathID   *uuid.UUID `json:"panchayath_id,omitempty" db:"panchayath_id"`
	PanchayathName *string    `json:"panchayath_name,omitempty" db:"panchayath_name"`
	District       *string    `json:"district,omitempty" db:"district"`
}

// IsApproved reports whether the row is an approved registration with a
// recorded approval time. Rows approved before the timestamp column existed
// have status approved but a nil ApprovedAt; they are not counted.
func (r *Registration) IsApproved() bool {
	return r.Status == StatusApproved && r.ApprovedAt != nil
}

// ApprovedDateDisplay renders the approval date as DD/MM/YYYY for the report
// table, or an empty string when the row has no approval time.
func (r *Registration) ApprovedDateDisplay() string {
	if r.ApprovedAt == nil {
		return ""
	}
	return r.ApprovedAt.Format("02/01/2006")
}

// CategoryKey returns the distinct-count key for the row's category. A nil
// category id maps to the empty string, which the summary counts as its own
// bucket.
func (r *Registration) CategoryKey() string {
	if r.CategoryID == nil {
		return ""
	}
	return r.CategoryID.String()
}

// PanchayathKey returns the distinct-count key for the row's panchayath. A nil
// panchayath id maps to the empty string; unlike categories, the summary skips
// empty panchayath keys entirely.
func (r *Registration) PanchayathKey() string {
	if r.PanchayathID == nil {
		return ""
	}
	return r.PanchayathID.String()
}
