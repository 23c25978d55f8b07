package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// CreateAlert inserts a new unacknowledged alert row and returns it.
func (d *DB) CreateAlert(ctx context.Context, lineID string, severity models.Severity, message string) (models.Alert, error) {
	alert := models.Alert{
		ID:       uuid.New().String(),
		LineID:   lineID,
		Severity: severity,
		Message:  message,
	}

	err := d.Pool.QueryRow(ctx,
		`INSERT INTO alerts (id, line_id, severity, message, acknowledged, created_at)
		 VALUES ($1, $2, $3, $4, false, CURRENT_TIMESTAMP)
		 RETURNING created_at`,
		alert.ID, alert.LineID, alert.Severity, alert.Message).
		Scan(&alert.CreatedAt)
	if err != nil {
		return models.Alert{}, fmt.Errorf("failed to insert alert for line %s: %w", lineID, err)
	}
	return alert, nil
}

// GetAllAlerts returns every alert, newest first.
func (d *DB) GetAllAlerts(ctx context.Context) ([]models.Alert, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT id, line_id, severity, message, acknowledged, created_at
		 FROM alerts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// GetUnacknowledgedAlerts returns open alerts ordered by severity then
// recency.
func (d *DB) GetUnacknowledgedAlerts(ctx context.Context) ([]models.Alert, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT id, line_id, severity, message, acknowledged, created_at
		 FROM alerts
		 WHERE acknowledged = false
		 ORDER BY
		   CASE severity
		     WHEN 'critical' THEN 1
		     WHEN 'warning' THEN 2
		     WHEN 'info' THEN 3
		   END,
		   created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unacknowledged alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

func scanAlerts(rows pgx.Rows) ([]models.Alert, error) {
	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.LineID, &a.Severity, &a.Message, &a.Acknowledged, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}
	return alerts, nil
}
