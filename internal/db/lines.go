package db

import (
	"context"
	"fmt"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// GetAllLines fetches every production line with its four sensors attached.
func (d *DB) GetAllLines(ctx context.Context) ([]models.ProductionLine, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT id, name, COALESCE(zone, ''), risk_level, max_risk_score, last_update
		 FROM production_lines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query production lines: %w", err)
	}
	defer rows.Close()

	var lines []models.ProductionLine
	for rows.Next() {
		var line models.ProductionLine
		if err := rows.Scan(&line.ID, &line.Name, &line.Zone, &line.RiskLevel, &line.MaxRiskScore, &line.LastUpdate); err != nil {
			return nil, fmt.Errorf("failed to scan production line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read production lines: %w", err)
	}

	for i := range lines {
		if err := d.attachSensors(ctx, &lines[i]); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// GetLineByID fetches one production line with its four sensors, or nil when
// the id is unknown.
func (d *DB) GetLineByID(ctx context.Context, id string) (*models.ProductionLine, error) {
	var line models.ProductionLine
	err := d.Pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(zone, ''), risk_level, max_risk_score, last_update
		 FROM production_lines WHERE id = $1`, id).
		Scan(&line.ID, &line.Name, &line.Zone, &line.RiskLevel, &line.MaxRiskScore, &line.LastUpdate)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query production line %s: %w", id, err)
	}
	if err := d.attachSensors(ctx, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateLineRiskScore overwrites the persisted risk assessment on the line
// row. Last write wins, no versioning.
func (d *DB) UpdateLineRiskScore(ctx context.Context, lineID string, score float64, level models.RiskLevel) error {
	_, err := d.Pool.Exec(ctx,
		`UPDATE production_lines
		 SET max_risk_score = $1, risk_level = $2, last_update = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		score, level, lineID)
	if err != nil {
		return fmt.Errorf("failed to update risk score for line %s: %w", lineID, err)
	}
	return nil
}

// attachSensors fills the four typed sensor slots of a line.
func (d *DB) attachSensors(ctx context.Context, line *models.ProductionLine) error {
	rows, err := d.Pool.Query(ctx,
		`SELECT id, type, name, value, unit, status, threshold, last_update
		 FROM sensors WHERE line_id = $1 ORDER BY type`, line.ID)
	if err != nil {
		return fmt.Errorf("failed to query sensors for line %s: %w", line.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sensor
		var sensorType string
		if err := rows.Scan(&s.ID, &sensorType, &s.Name, &s.Value, &s.Unit, &s.Status, &s.Threshold, &s.LastUpdate); err != nil {
			return fmt.Errorf("failed to scan sensor for line %s: %w", line.ID, err)
		}
		switch sensorType {
		case "pressure":
			line.Pressure = s
		case "temperature":
			line.Temperature = s
		case "vibration":
			line.Vibration = s
		case "level":
			line.Level = s
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read sensors for line %s: %w", line.ID, err)
	}
	return nil
}
