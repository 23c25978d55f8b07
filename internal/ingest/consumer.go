package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/db"
)

// Consumer ingests sensor readings from Kafka into sensor_readings and
// refreshes each sensor's current value. Optional: started only when a
// broker is configured.
type Consumer struct {
	reader *kafka.Reader
	db     *db.DB
	logger *logrus.Logger
}

type readingMessage struct {
	SensorID  string    `json:"sensor_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

func NewConsumer(cfg config.Config, database *db.DB, logger *logrus.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	return &Consumer{reader: reader, db: database, logger: logger}
}

// Run consumes until the context is cancelled. Malformed messages are logged
// and skipped.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("Sensor readings consumer started")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		var reading readingMessage
		if err := json.Unmarshal(msg.Value, &reading); err != nil {
			c.logger.Errorf("Unmarshal reading failed: %v", err)
			continue
		}
		if reading.SensorID == "" {
			c.logger.Error("Invalid reading: missing sensor_id")
			continue
		}
		if reading.Timestamp.IsZero() {
			reading.Timestamp = time.Now()
		}

		if err := c.db.InsertReading(ctx, reading.SensorID, reading.Value, reading.Timestamp); err != nil {
			c.logger.Errorf("Insert reading failed: %v", err)
			continue
		}
		if err := c.db.UpdateSensorValue(ctx, reading.SensorID, reading.Value); err != nil {
			c.logger.Errorf("Update sensor value failed: %v", err)
		}
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Close consumer failed: %v", err)
	}
}
