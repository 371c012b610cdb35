package admin

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sevadesk/sevadesk/internal/db/repositories"
	"github.com/sevadesk/sevadesk/internal/reports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// errDB is a sentinel error for DB failures in tests.
var errDB = errors.New("database error")

// ---------------------------------------------------------------------------
// Test setup helpers
// ---------------------------------------------------------------------------

// registrationSQLCols are the columns returned by both registration list queries.
var registrationSQLCols = []string{
	"id", "customer_id", "name", "mobile", "address", "ward", "agent_id",
	"status", "created_at", "approved_at", "approved_by", "expires_at",
	"fee_paid", "category_id", "category_name", "panchayath_id", "panchayath_name", "district",
}

func approvedSQLRow(name string, fee float64, approvedAt time.Time) []driver.Value {
	return []driver.Value{
		uuid.New(), "CUST-001", name, "9447000001", "12 Temple Road", "Ward 4", "agent-7",
		"approved", approvedAt.Add(-48 * time.Hour), approvedAt, "admin", nil,
		fee, uuid.New(), "Trade Licence", uuid.New(), "Kumarakom", "Kottayam",
	}
}

func pendingSQLRow(name string, fee float64) []driver.Value {
	return []driver.Value{
		uuid.New(), "CUST-002", name, "9447000002", nil, nil, nil,
		"pending", time.Now(), nil, nil, nil,
		fee, uuid.New(), "Trade Licence", uuid.New(), "Kumarakom", "Kottayam",
	}
}

// newReportsRouter creates a gin router with the report routes registered over a
// sqlmock-backed repository stack. Expectations are unordered because the loader
// runs the approved and pending queries concurrently.
func newReportsRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	loader := reports.NewLoader(repositories.NewRegistrationRepository(sqlxDB))
	h := NewReportsHandler(loader, repositories.NewLookupRepository(sqlxDB))

	r := gin.New()
	r.GET("/reports/registrations", h.GetRegistrationReport)
	r.GET("/reports/filters", h.GetReportFilters)
	return mock, r
}

func expectApproved(mock sqlmock.Sqlmock, rows ...[]driver.Value) {
	result := sqlmock.NewRows(registrationSQLCols)
	for _, row := range rows {
		result.AddRow(row...)
	}
	mock.ExpectQuery("ORDER BY r.approved_at DESC").
		WithArgs("approved").
		WillReturnRows(result)
}

func expectPending(mock sqlmock.Sqlmock, rows ...[]driver.Value) {
	result := sqlmock.NewRows(registrationSQLCols)
	for _, row := range rows {
		result.AddRow(row...)
	}
	mock.ExpectQuery("ORDER BY r.created_at DESC").
		WithArgs("pending").
		WillReturnRows(result)
}

func getJSON(resp *httptest.ResponseRecorder) map[string]interface{} {
	var m map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &m)
	return m
}

// ---------------------------------------------------------------------------
// GetRegistrationReport
// ---------------------------------------------------------------------------

func TestGetRegistrationReport_Success(t *testing.T) {
	mock, r := newReportsRouter(t)

	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	expectApproved(mock,
		approvedSQLRow("Anitha Menon", 250, at),
		approvedSQLRow("Suresh Nair", 100, at.Add(-24*time.Hour)),
	)
	expectPending(mock, pendingSQLRow("Rajan Pillai", 75))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/registrations", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	resp := getJSON(w)

	summary, ok := resp["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("response missing 'summary' object: %v", resp)
	}
	if got := summary["total_registrations"]; got != float64(2) {
		t.Errorf("total_registrations = %v, want 2", got)
	}
	if got := summary["total_fees_collected"]; got != float64(350) {
		t.Errorf("total_fees_collected = %v, want 350", got)
	}
	if got := summary["pending_amount"]; got != float64(75) {
		t.Errorf("pending_amount = %v, want 75", got)
	}
	if got := summary["total_fees_collected_display"]; got != "₹350.00" {
		t.Errorf("total_fees_collected_display = %v, want ₹350.00", got)
	}
	if got := summary["performance"]; got != "Fair" {
		t.Errorf("performance = %v, want Fair", got)
	}

	rows, ok := resp["rows"].([]interface{})
	if !ok || len(rows) != 2 {
		t.Fatalf("rows = %v, want 2 entries", resp["rows"])
	}
	first := rows[0].(map[string]interface{})
	if first["name"] != "Anitha Menon" {
		t.Errorf("rows[0].name = %v, want Anitha Menon", first["name"])
	}
	if first["approved_date"] != "15/01/2024" {
		t.Errorf("rows[0].approved_date = %v, want 15/01/2024", first["approved_date"])
	}
	if first["fee_paid_display"] != "₹250.00" {
		t.Errorf("rows[0].fee_paid_display = %v, want ₹250.00", first["fee_paid_display"])
	}
}

func TestGetRegistrationReport_DateRangeFilters(t *testing.T) {
	mock, r := newReportsRouter(t)

	inRange := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	expectApproved(mock,
		approvedSQLRow("Anitha Menon", 250, inRange),
		approvedSQLRow("Suresh Nair", 100, outOfRange),
	)
	expectPending(mock, pendingSQLRow("Rajan Pillai", 75))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET",
		"/reports/registrations?from=2024-01-01&to=2024-01-31", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	resp := getJSON(w)

	summary := resp["summary"].(map[string]interface{})
	if got := summary["total_registrations"]; got != float64(1) {
		t.Errorf("total_registrations = %v, want 1", got)
	}
	if got := summary["total_fees_collected"]; got != float64(250) {
		t.Errorf("total_fees_collected = %v, want 250", got)
	}
	// Pending amount ignores the date range.
	if got := summary["pending_amount"]; got != float64(75) {
		t.Errorf("pending_amount = %v, want 75", got)
	}

	dateRange := resp["date_range"].(map[string]interface{})
	if dateRange["from"] != "2024-01-01" || dateRange["to"] != "2024-01-31" {
		t.Errorf("date_range = %v, want 2024-01-01..2024-01-31", dateRange)
	}
}

func TestGetRegistrationReport_BoundaryDatesInclusive(t *testing.T) {
	mock, r := newReportsRouter(t)

	// Late on the to-date itself still falls inside the range.
	at := time.Date(2024, 1, 31, 23, 45, 0, 0, time.UTC)
	expectApproved(mock, approvedSQLRow("Anitha Menon", 250, at))
	expectPending(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET",
		"/reports/registrations?from=2024-01-31&to=2024-01-31", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	summary := getJSON(w)["summary"].(map[string]interface{})
	if got := summary["total_registrations"]; got != float64(1) {
		t.Errorf("total_registrations = %v, want 1", got)
	}
}

func TestGetRegistrationReport_BadDateParam(t *testing.T) {
	_, r := newReportsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET",
		"/reports/registrations?from=31-01-2024", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if resp := getJSON(w); resp["error"] == nil {
		t.Error("response missing 'error' key")
	}
}

func TestGetRegistrationReport_ApprovedQueryFails(t *testing.T) {
	mock, r := newReportsRouter(t)

	mock.ExpectQuery("ORDER BY r.approved_at DESC").
		WithArgs("approved").
		WillReturnError(errDB)
	expectPending(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/registrations", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetRegistrationReport_PendingQueryFailureIsNonFatal(t *testing.T) {
	mock, r := newReportsRouter(t)

	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	expectApproved(mock, approvedSQLRow("Anitha Menon", 250, at))
	mock.ExpectQuery("ORDER BY r.created_at DESC").
		WithArgs("pending").
		WillReturnError(errDB)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/registrations", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	summary := getJSON(w)["summary"].(map[string]interface{})
	if got := summary["pending_amount"]; got != float64(0) {
		t.Errorf("pending_amount = %v, want 0", got)
	}
	if got := summary["total_registrations"]; got != float64(1) {
		t.Errorf("total_registrations = %v, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// GetReportFilters
// ---------------------------------------------------------------------------

var (
	categorySQLCols   = []string{"id", "name", "created_at"}
	panchayathSQLCols = []string{"id", "name", "district", "created_at"}
)

func TestGetReportFilters_Success(t *testing.T) {
	mock, r := newReportsRouter(t)

	mock.ExpectQuery("FROM categories").
		WillReturnRows(sqlmock.NewRows(categorySQLCols).
			AddRow(uuid.New(), "Trade Licence", time.Now()).
			AddRow(uuid.New(), "Vehicle Permit", time.Now()))
	mock.ExpectQuery("FROM panchayaths").
		WillReturnRows(sqlmock.NewRows(panchayathSQLCols).
			AddRow(uuid.New(), "Kumarakom", "Kottayam", time.Now()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/filters", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	resp := getJSON(w)
	if cats, ok := resp["categories"].([]interface{}); !ok || len(cats) != 2 {
		t.Errorf("categories = %v, want 2 entries", resp["categories"])
	}
	if pans, ok := resp["panchayaths"].([]interface{}); !ok || len(pans) != 1 {
		t.Errorf("panchayaths = %v, want 1 entry", resp["panchayaths"])
	}
}

func TestGetReportFilters_CategoriesQueryFails(t *testing.T) {
	mock, r := newReportsRouter(t)

	mock.ExpectQuery("FROM categories").WillReturnError(errDB)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/filters", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetReportFilters_PanchayathsQueryFails(t *testing.T) {
	mock, r := newReportsRouter(t)

	mock.ExpectQuery("FROM categories").
		WillReturnRows(sqlmock.NewRows(categorySQLCols))
	mock.ExpectQuery("FROM panchayaths").WillReturnError(errDB)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/filters", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
