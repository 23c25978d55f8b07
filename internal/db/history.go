package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// GetSensorHistory returns stored readings for a sensor inside the lookback
// window, ascending by time, capped at limit rows. No gap filling.
func (d *DB) GetSensorHistory(ctx context.Context, sensorID string, window time.Duration, limit int) ([]models.Reading, error) {
	since := time.Now().Add(-window)

	rows, err := d.Pool.Query(ctx,
		`SELECT value, created_at
		 FROM sensor_readings
		 WHERE sensor_id = $1 AND created_at >= $2
		 ORDER BY created_at ASC
		 LIMIT $3`,
		sensorID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for sensor %s: %w", sensorID, err)
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var r models.Reading
		if err := rows.Scan(&r.Value, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan reading for sensor %s: %w", sensorID, err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history for sensor %s: %w", sensorID, err)
	}
	return readings, nil
}

// InsertReading stores one ingested sensor sample.
func (d *DB) InsertReading(ctx context.Context, sensorID string, value float64, ts time.Time) error {
	_, err := d.Pool.Exec(ctx,
		`INSERT INTO sensor_readings (sensor_id, value, created_at) VALUES ($1, $2, $3)`,
		sensorID, value, ts)
	if err != nil {
		return fmt.Errorf("failed to insert reading for sensor %s: %w", sensorID, err)
	}
	return nil
}

// GetLineHistory merges the last 24 hours of the line's four sensors into
// per-timestamp rows for the history endpoint.
func (d *DB) GetLineHistory(ctx context.Context, lineID string) ([]models.HistoryPoint, error) {
	sensorRows, err := d.Pool.Query(ctx,
		`SELECT id, type FROM sensors WHERE line_id = $1 AND type IN ('pressure', 'temperature', 'vibration', 'level')`,
		lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensors for line %s: %w", lineID, err)
	}
	defer sensorRows.Close()

	typeBySensor := map[string]string{}
	var sensorIDs []string
	for sensorRows.Next() {
		var id, sensorType string
		if err := sensorRows.Scan(&id, &sensorType); err != nil {
			return nil, fmt.Errorf("failed to scan sensor for line %s: %w", lineID, err)
		}
		typeBySensor[id] = sensorType
		sensorIDs = append(sensorIDs, id)
	}
	if err := sensorRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sensors for line %s: %w", lineID, err)
	}
	if len(sensorIDs) == 0 {
		return []models.HistoryPoint{}, nil
	}

	since := time.Now().Add(-24 * time.Hour)
	rows, err := d.Pool.Query(ctx,
		`SELECT sensor_id, value, created_at
		 FROM sensor_readings
		 WHERE sensor_id = ANY($1) AND created_at >= $2
		 ORDER BY created_at ASC`,
		sensorIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for line %s: %w", lineID, err)
	}
	defer rows.Close()

	points := map[int64]*models.HistoryPoint{}
	for rows.Next() {
		var sensorID string
		var value float64
		var ts time.Time
		if err := rows.Scan(&sensorID, &value, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan reading for line %s: %w", lineID, err)
		}

		key := ts.UnixNano()
		point, ok := points[key]
		if !ok {
			point = &models.HistoryPoint{
				Time:      ts.Format("15:04"),
				Timestamp: ts.Format(time.RFC3339),
			}
			points[key] = point
		}

		v := value
		switch typeBySensor[sensorID] {
		case "pressure":
			point.Pressure = &v
		case "temperature":
			point.Temperature = &v
		case "vibration":
			point.Vibration = &v
		case "level":
			point.Level = &v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history for line %s: %w", lineID, err)
	}

	keys := make([]int64, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	history := make([]models.HistoryPoint, 0, len(keys))
	for _, k := range keys {
		history = append(history, *points[k])
	}
	return history, nil
}
