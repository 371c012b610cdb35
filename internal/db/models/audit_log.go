// Package models - audit_log.go defines the AuditLog entry recorded for report
// export invocations, capturing the action, requested format, and client IP.
package models

import "time"

// AuditLog records a single user-invoked action against the reporting API.
type AuditLog struct {
	ID        string
	Action    string                 // "report.export", "report.view"
	Metadata  map[string]interface{} // JSONB: format, date bounds, row count
	IPAddress *string
	CreatedAt time.Time
}
