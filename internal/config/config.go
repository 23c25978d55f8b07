package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Predictor struct {
		PythonCmd      string
		ScriptPath     string
		TimeoutSeconds int
	}
	Scoring struct {
		MaxWorkers int
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Telegram struct {
		BotToken string
		ChatID   int64
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// ML predictor settings
	cfg.Predictor.PythonCmd = os.Getenv("PYTHON_CMD")
	cfg.Predictor.ScriptPath = os.Getenv("ML_SCRIPT_PATH")
	if t, err := strconv.Atoi(os.Getenv("PREDICT_TIMEOUT_SECONDS")); err == nil {
		cfg.Predictor.TimeoutSeconds = t
	}

	// Scoring worker settings
	if mw, err := strconv.Atoi(os.Getenv("SCORING_MAX_WORKERS")); err == nil {
		cfg.Scoring.MaxWorkers = mw
	}

	// Optional Kafka ingestion settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Optional Telegram ops notifications
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api"
	}
	if cfg.Predictor.PythonCmd == "" {
		cfg.Predictor.PythonCmd = "python3"
	}
	if cfg.Predictor.ScriptPath == "" {
		cfg.Predictor.ScriptPath = "ml/predict_risk.py"
	}
	if cfg.Predictor.TimeoutSeconds == 0 {
		cfg.Predictor.TimeoutSeconds = 30
	}
	if cfg.Scoring.MaxWorkers == 0 {
		cfg.Scoring.MaxWorkers = 8
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "sensor_readings"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "prisk-ingest"
	}

	return cfg, nil
}
