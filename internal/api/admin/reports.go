// reports.go implements the registration report endpoint: it loads the approved
// and pending snapshots, applies the optional approval-date range, and returns the
// summary cards plus the table rows for the admin screen.
package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevadesk/sevadesk/internal/db/models"
	"github.com/sevadesk/sevadesk/internal/db/repositories"
	"github.com/sevadesk/sevadesk/internal/reports"
	"github.com/sevadesk/sevadesk/internal/telemetry"
	"github.com/sevadesk/sevadesk/pkg/currency"
)

// dateParam is the wire format for the from/to query parameters.
const dateParam = "2006-01-02"

// ReportsHandler handles registration report requests
type ReportsHandler struct {
	loader  *reports.Loader
	lookups *repositories.LookupRepository
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(loader *reports.Loader, lookups *repositories.LookupRepository) *ReportsHandler {
	return &ReportsHandler{loader: loader, lookups: lookups}
}

// ReportRow is one line of the report table.
type ReportRow struct {
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	CategoryName   string  `json:"category_name"`
	FeePaid        float64 `json:"fee_paid"`
	FeePaidDisplay string  `json:"fee_paid_display"`
	ApprovedBy     string  `json:"approved_by"`
	ApprovedDate   string  `json:"approved_date"` // DD/MM/YYYY
}

// ReportResponse is the payload behind the admin report screen.
type ReportResponse struct {
	Summary   reportSummary `json:"summary"`
	DateRange dateRangeEcho `json:"date_range"`
	Rows      []ReportRow   `json:"rows"`
}

// reportSummary mirrors reports.Summary plus display strings for the two
// monetary cards.
type reportSummary struct {
	reports.Summary
	TotalFeesCollectedDisplay string `json:"total_fees_collected_display"`
	PendingAmountDisplay      string `json:"pending_amount_display"`
}

// dateRangeEcho replays the parsed bounds so the client can render the active
// filter state; empty strings mean the bound is unset.
type dateRangeEcho struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// parseDateRange reads the optional from/to query parameters. An absent or
// empty parameter leaves that bound open; both absent is the cleared state.
func parseDateRange(c *gin.Context) (reports.DateRange, error) {
	var bounds reports.DateRange
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateParam, raw)
		if err != nil {
			return bounds, fmt.Errorf("invalid 'from' date %q (expected YYYY-MM-DD)", raw)
		}
		bounds.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateParam, raw)
		if err != nil {
			return bounds, fmt.Errorf("invalid 'to' date %q (expected YYYY-MM-DD)", raw)
		}
		bounds.To = &t
	}
	return bounds, nil
}

// @Summary      Get registration report
// @Description  Returns the filtered registration rows and summary metrics for the admin dashboard. Omit both date parameters for the unfiltered report.
// @Tags         Reports
// @Produce      json
// @Param        from  query  string  false  "Start date (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  false  "End date (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  ReportResponse
// @Failure      400  {object}  map[string]interface{}  "Malformed date parameter"
// @Failure      500  {object}  map[string]interface{}  "Approved query failed"
// @Router       /api/v1/admin/reports/registrations [get]
// GetRegistrationReport builds and returns the registration report.
func (h *ReportsHandler) GetRegistrationReport(c *gin.Context) {
	bounds, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.loader.Load(c.Request.Context())
	if err != nil {
		telemetry.ReportBuildsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registrations"})
		return
	}

	filtered := reports.FilterByApproval(snapshot.Approved, bounds)
	summary := reports.Summarize(filtered, snapshot.Pending)
	telemetry.ReportBuildsTotal.WithLabelValues("success").Inc()

	resp := ReportResponse{
		Summary: reportSummary{
			Summary:                   summary,
			TotalFeesCollectedDisplay: currency.FormatINR(summary.TotalFeesCollected),
			PendingAmountDisplay:      currency.FormatINR(summary.PendingAmount),
		},
		Rows: make([]ReportRow, 0, len(filtered)),
	}
	if bounds.From != nil {
		resp.DateRange.From = bounds.From.Format(dateParam)
	}
	if bounds.To != nil {
		resp.DateRange.To = bounds.To.Format(dateParam)
	}
	for _, reg := range filtered {
		resp.Rows = append(resp.Rows, toReportRow(reg))
	}

	c.JSON(http.StatusOK, resp)
}

func toReportRow(reg models.Registration) ReportRow {
	row := ReportRow{
		Name:           reg.Name,
		Mobile:         reg.Mobile,
		FeePaid:        reg.FeePaid,
		FeePaidDisplay: currency.FormatINR(reg.FeePaid),
		ApprovedDate:   reg.ApprovedDateDisplay(),
	}
	if reg.CategoryName != nil {
		row.CategoryName = *reg.CategoryName
	}
	if reg.ApprovedBy != nil {
		row.ApprovedBy = *reg.ApprovedBy
	}
	return row
}

// FiltersResponse lists the lookup values behind the report filter dropdowns.
type FiltersResponse struct {
	Categories  []models.Category   `json:"categories"`
	Panchayaths []models.Panchayath `json:"panchayaths"`
}

// @Summary      Get report filter options
// @Description  Returns the category and panchayath listings used to populate the report screen's filter dropdowns.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  FiltersResponse
// @Failure      500  {object}  map[string]interface{}  "Lookup query failed"
// @Router       /api/v1/admin/reports/filters [get]
// GetReportFilters returns the filter dropdown listings.
func (h *ReportsHandler) GetReportFilters(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.lookups.ListCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	panchayaths, err := h.lookups.ListPanchayaths(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load panchayaths"})
		return
	}

	c.JSON(http.StatusOK, FiltersResponse{Categories: categories, Panchayaths: panchayaths})
}
