package models

import "time"

// Severity of an alert record.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert is a persisted alert row. Immutable once written except for the
// acknowledged flag, which only the acknowledgement flow flips.
type Alert struct {
	ID           string    `json:"id"`
	LineID       string    `json:"line_id"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}
