package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// errDB simulates a database failure across the repository tests.
var errDB = errors.New("database error")

// ---------------------------------------------------------------------------
// Column definitions
// ---------------------------------------------------------------------------

var registrationCols = []string{
	"id", "customer_id", "name", "mobile", "address", "ward", "agent_id",
	"status", "created_at", "approved_at", "approved_by", "expires_at",
	"fee_paid", "category_id", "category_name", "panchayath_id", "panchayath_name", "district",
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newRegistrationRepo(t *testing.T) (*RegistrationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRegistrationRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func approvedRow(name string, fee float64, approvedAt time.Time) []driverValue {
	catID := uuid.New()
	panID := uuid.New()
	return []driverValue{
		uuid.New(), "CUST-001", name, "9447000001", "12 Temple Road", "Ward 4", "agent-7",
		"approved", approvedAt.Add(-48 * time.Hour), approvedAt, "admin", nil,
		fee, catID, "Trade Licence", panID, "Kumarakom", "Kottayam",
	}
}

// driverValue keeps the row helpers readable; sqlmock accepts any driver.Value.
type driverValue = driver.Value

func addRows(rows *sqlmock.Rows, vals ...[]driverValue) *sqlmock.Rows {
	for _, v := range vals {
		rows.AddRow(v...)
	}
	return rows
}

// ---------------------------------------------------------------------------
// ListApproved
// ---------------------------------------------------------------------------

func TestListApproved_Success(t *testing.T) {
	repo, mock := newRegistrationRepo(t)

	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rows := addRows(sqlmock.NewRows(registrationCols),
		approvedRow("Anitha Menon", 250, at),
		approvedRow("Suresh Nair", 100, at.Add(-24*time.Hour)),
	)
	mock.ExpectQuery("SELECT(.|\n)*FROM registrations r(.|\n)*status = \\$1(.|\n)*ORDER BY r.approved_at DESC").
		WithArgs("approved").
		WillReturnRows(rows)

	regs, err := repo.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("len(regs) = %d, want 2", len(regs))
	}
	if regs[0].Name != "Anitha Menon" {
		t.Errorf("regs[0].Name = %q, want Anitha Menon", regs[0].Name)
	}
	if regs[0].FeePaid != 250 {
		t.Errorf("regs[0].FeePaid = %v, want 250", regs[0].FeePaid)
	}
	if regs[0].CategoryName == nil || *regs[0].CategoryName != "Trade Licence" {
		t.Errorf("regs[0].CategoryName = %v, want Trade Licence", regs[0].CategoryName)
	}
	if regs[0].ApprovedAt == nil || !regs[0].ApprovedAt.Equal(at) {
		t.Errorf("regs[0].ApprovedAt = %v, want %v", regs[0].ApprovedAt, at)
	}
}

func TestListApproved_Empty(t *testing.T) {
	repo, mock := newRegistrationRepo(t)
	mock.ExpectQuery("SELECT(.|\n)*FROM registrations").
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows(registrationCols))

	regs, err := repo.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 0 {
		t.Errorf("len(regs) = %d, want 0", len(regs))
	}
}

func TestListApproved_DBError(t *testing.T) {
	repo, mock := newRegistrationRepo(t)
	mock.ExpectQuery("SELECT(.|\n)*FROM registrations").
		WillReturnError(errDB)

	if _, err := repo.ListApproved(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// ListPending
// ---------------------------------------------------------------------------

func TestListPending_Success(t *testing.T) {
	repo, mock := newRegistrationRepo(t)

	rows := sqlmock.NewRows(registrationCols).AddRow(
		uuid.New(), "CUST-002", "Beena Thomas", "9447000002", nil, nil, nil,
		"pending", time.Now(), nil, nil, nil,
		float64(50), nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery("SELECT(.|\n)*FROM registrations r(.|\n)*status = \\$1(.|\n)*ORDER BY r.created_at DESC").
		WithArgs("pending").
		WillReturnRows(rows)

	regs, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("len(regs) = %d, want 1", len(regs))
	}
	if regs[0].ApprovedAt != nil {
		t.Error("pending row should have nil ApprovedAt")
	}
	if regs[0].CategoryName != nil {
		t.Error("pending row without category should have nil CategoryName")
	}
	if regs[0].FeePaid != 50 {
		t.Errorf("regs[0].FeePaid = %v, want 50", regs[0].FeePaid)
	}
}

func TestListPending_DBError(t *testing.T) {
	repo, mock := newRegistrationRepo(t)
	mock.ExpectQuery("SELECT(.|\n)*FROM registrations").
		WillReturnError(errDB)

	if _, err := repo.ListPending(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}
