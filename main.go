package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AYEX777/Pr-sub001/internal/api"
	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/db"
	"github.com/AYEX777/Pr-sub001/internal/ingest"
	"github.com/AYEX777/Pr-sub001/internal/logging"
	"github.com/AYEX777/Pr-sub001/internal/notify"
	"github.com/AYEX777/Pr-sub001/internal/risk"
	"github.com/AYEX777/Pr-sub001/internal/ws"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger := logging.New()

	// Connect to DB
	database, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("DB connect failed: %v", err)
		log.Fatal("DB connect failed:", err)
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WebSocket hub for live alert broadcast
	hub := ws.NewHub(logger)
	go hub.Run()

	// Alert fan-out sinks: websocket always, Telegram when configured
	sinks := []risk.AlertSink{hub}
	if tg := notify.NewTelegram(cfg, logger); tg != nil {
		sinks = append(sinks, tg)
		logger.Info("Telegram notifications enabled")
	}

	// Risk scoring engine
	extractor := risk.NewExtractor(database, database, logger)
	predictor := risk.NewScriptPredictor(cfg)
	emitter := risk.NewEmitter(database, logger, sinks...)
	engine := risk.NewEngine(extractor, predictor, database, emitter, logger, cfg.Scoring.MaxWorkers)

	// Optional sensor readings ingestion
	var consumer *ingest.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = ingest.NewConsumer(cfg, database, logger)
		go consumer.Run(ctx)
	}

	// Start API server
	r := api.NewRouter(database, engine, hub, logger, cfg)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	cancel()
	if consumer != nil {
		consumer.Close()
	}
	logger.Info("Service stopped")
}
