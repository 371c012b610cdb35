package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sevadesk/sevadesk/internal/db/repositories"
)

// ---------------------------------------------------------------------------
// Router helper
// ---------------------------------------------------------------------------

func newExportsRouter(t *testing.T, auditEnabled bool) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	h := NewExportsHandler(repositories.NewAuditRepository(sqlxDB), auditEnabled)

	r := gin.New()
	r.POST("/reports/registrations/export/:format", h.ExportRegistrationReport)
	return mock, r
}

func postExport(r *gin.Engine, format string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST",
		"/reports/registrations/export/"+format, nil))
	return w
}

// ---------------------------------------------------------------------------
// ExportRegistrationReport
// ---------------------------------------------------------------------------

func TestExportRegistrationReport_Spreadsheet(t *testing.T) {
	mock, r := newExportsRouter(t, true)
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postExport(r, "spreadsheet")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	resp := getJSON(w)
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}
	if resp["message"] == nil {
		t.Error("response missing 'message' key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("audit insert not recorded: %v", err)
	}
}

func TestExportRegistrationReport_PDF(t *testing.T) {
	mock, r := newExportsRouter(t, true)
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postExport(r, "pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	if resp := getJSON(w); resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}
}

func TestExportRegistrationReport_UnknownFormat(t *testing.T) {
	_, r := newExportsRouter(t, true)

	w := postExport(r, "csv")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExportRegistrationReport_AuditFailureStillSucceeds(t *testing.T) {
	mock, r := newExportsRouter(t, true)
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errDB)

	w := postExport(r, "spreadsheet")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	if resp := getJSON(w); resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}
}

func TestExportRegistrationReport_AuditDisabled(t *testing.T) {
	mock, r := newExportsRouter(t, false)

	w := postExport(r, "pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	// No audit insert may be attempted when auditing is off.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
