// Package reports implements the registration report pipeline: loading approved and
// pending registration snapshots, filtering approved rows by an optional approval-date
// range, and deriving the summary metrics shown on the admin dashboard.
//
// Filtering and aggregation are pure functions over in-memory slices. They never
// mutate their inputs and never fail; all error handling lives at the loading
// boundary (see Loader).
package reports

import (
	"time"

	"github.com/sevadesk/sevadesk/internal/db/models"
)

// Performance grade labels, derived solely from the filtered registration count.
const (
	PerformanceExcellent = "Excellent"
	PerformanceGood      = "Good"
	PerformanceFair      = "Fair"
)

// Grade thresholds: strictly more than excellentThreshold rows is "Excellent",
// strictly more than goodThreshold is "Good", anything else "Fair".
const (
	excellentThreshold = 50
	goodThreshold      = 20
)

// DateRange is an optionally open-ended approval-date interval. A nil bound means
// unbounded on that side; both nil means no filtering at all. Bounds are calendar
// dates: From is widened to the start of its day and To to the end of its day, so
// both ends are inclusive.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether no bound is set (the cleared state).
func (d DateRange) IsZero() bool {
	return d.From == nil && d.To == nil
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable instant of t's day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Contains reports whether an approval timestamp satisfies the range. A nil
// timestamp only passes the cleared state: once any bound is set, rows without an
// approval time are excluded.
func (d DateRange) Contains(approvedAt *time.Time) bool {
	if d.IsZero() {
		return true
	}
	if approvedAt == nil {
		return false
	}
	if d.From != nil && approvedAt.Before(startOfDay(*d.From)) {
		return false
	}
	if d.To != nil && approvedAt.After(endOfDay(*d.To)) {
		return false
	}
	return true
}

// FilterByApproval returns the approved registrations whose approval timestamp
// falls within the range, preserving input order. The result is always a fresh
// slice; the input is never aliased or mutated.
func FilterByApproval(approved []models.Registration, bounds DateRange) []models.Registration {
	filtered := make([]models.Registration, 0, len(approved))
	for _, reg := range approved {
		if bounds.Contains(reg.ApprovedAt) {
			filtered = append(filtered, reg)
		}
	}
	return filtered
}

// Summary holds the six derived metrics displayed on the report cards.
type Summary struct {
	TotalRegistrations int     `json:"total_registrations"`
	TotalFeesCollected float64 `json:"total_fees_collected"`
	TotalCategories    int     `json:"total_categories"`
	TotalPanchayaths   int     `json:"total_panchayaths"`
	PendingAmount      float64 `json:"pending_amount"`
	Performance        string  `json:"performance"`
}

// Summarize computes the report metrics. The first four metrics are computed over
// the filtered approved rows. PendingAmount always sums the full pending set;
// the date range never applies to pending registrations.
//
// Distinct-count asymmetry: categories are keyed by CategoryKey, so rows without
// a category share one empty-key bucket and together count as one "category".
// Panchayaths skip empty keys entirely. This mirrors the legacy screen's
// behaviour; see DESIGN.md before changing either side.
func Summarize(filtered, pending []models.Registration) Summary {
	summary := Summary{
		TotalRegistrations: len(filtered),
	}

	categories := make(map[string]struct{})
	panchayaths := make(map[string]struct{})
	for _, reg := range filtered {
		summary.TotalFeesCollected += reg.FeePaid
		categories[reg.CategoryKey()] = struct{}{}
		if key := reg.PanchayathKey(); key != "" {
			panchayaths[key] = struct{}{}
		}
	}
	summary.TotalCategories = len(categories)
	summary.TotalPanchayaths = len(panchayaths)

	for _, reg := range pending {
		summary.PendingAmount += reg.FeePaid
	}

	summary.Performance = performanceGrade(summary.TotalRegistrations)
	return summary
}

// performanceGrade maps a filtered-row count to its three-tier label.
func performanceGrade(count int) string {
	switch {
	case count > excellentThreshold:
		return PerformanceExcellent
	case count > goodThreshold:
		return PerformanceGood
	default:
		return PerformanceFair
	}
}
