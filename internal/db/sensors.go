package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetLineSensorIDs resolves the pressure and temperature sensor ids of a
// line. Either one missing is a configuration error for that line.
func (d *DB) GetLineSensorIDs(ctx context.Context, lineID string) (pressureID, temperatureID string, err error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT id, type FROM sensors WHERE line_id = $1 AND type IN ('pressure', 'temperature')`, lineID)
	if err != nil {
		return "", "", fmt.Errorf("failed to query sensors for line %s: %w", lineID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, sensorType string
		if err := rows.Scan(&id, &sensorType); err != nil {
			return "", "", fmt.Errorf("failed to scan sensor for line %s: %w", lineID, err)
		}
		switch sensorType {
		case "pressure":
			pressureID = id
		case "temperature":
			temperatureID = id
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("failed to read sensors for line %s: %w", lineID, err)
	}

	if pressureID == "" || temperatureID == "" {
		return "", "", fmt.Errorf("missing pressure or temperature sensor for line %s", lineID)
	}
	return pressureID, temperatureID, nil
}

// UpdateSensorValue refreshes the current value of a sensor, used by the
// readings ingestion path.
func (d *DB) UpdateSensorValue(ctx context.Context, sensorID string, value float64) error {
	_, err := d.Pool.Exec(ctx,
		`UPDATE sensors SET value = $1, last_update = CURRENT_TIMESTAMP WHERE id = $2`,
		value, sensorID)
	if err != nil {
		return fmt.Errorf("failed to update sensor %s: %w", sensorID, err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
