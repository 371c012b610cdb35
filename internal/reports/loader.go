// loader.go implements the two-query registration snapshot load. The approved and
// pending queries run concurrently with no ordering guarantee between them, and
// their failures are handled asymmetrically: a failed approved query fails the
// load, while a failed pending query only logs and leaves the pending set empty.
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sevadesk/sevadesk/internal/db/models"
	"github.com/sevadesk/sevadesk/internal/telemetry"
)

// RegistrationLister is the read contract the Loader needs from the database
// layer. *repositories.RegistrationRepository satisfies it.
type RegistrationLister interface {
	ListApproved(ctx context.Context) ([]models.Registration, error)
	ListPending(ctx context.Context) ([]models.Registration, error)
}

// Snapshot is the point-in-time registration data a single report is built from.
// It is immutable once returned; the engine functions never modify it.
type Snapshot struct {
	Approved []models.Registration
	Pending  []models.Registration
}

// Loader fetches report snapshots.
type Loader struct {
	repo RegistrationLister
}

// NewLoader creates a new Loader
func NewLoader(repo RegistrationLister) *Loader {
	return &Loader{repo: repo}
}

// Load runs both list queries concurrently and joins them.
//
// The approved query is the primary path: its error is returned and the caller
// surfaces it to the user. The pending query is non-fatal: on failure the
// pending set is empty (so pending_amount reads as 0), a warning is logged, and
// the load still succeeds. Keep the two error paths separate.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		wg          sync.WaitGroup
		approved    []models.Registration
		pending     []models.Registration
		approvedErr error
		pendingErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		approved, approvedErr = l.repo.ListApproved(ctx)
	}()
	go func() {
		defer wg.Done()
		pending, pendingErr = l.repo.ListPending(ctx)
	}()
	wg.Wait()

	if approvedErr != nil {
		return nil, fmt.Errorf("failed to load approved registrations: %w", approvedErr)
	}
	if pendingErr != nil {
		slog.Warn("failed to load pending registrations, pending amount will read as 0",
			"error", pendingErr)
		telemetry.PendingQueryFailuresTotal.Inc()
		pending = []models.Registration{}
	}

	return &Snapshot{Approved: approved, Pending: pending}, nil
}
