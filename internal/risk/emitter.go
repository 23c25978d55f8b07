package risk

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

const (
	// alertTriggerScore is a strict lower bound: a score of exactly 0.85
	// classifies as critical but does not create an alert.
	alertTriggerScore  = 0.85
	alertCriticalScore = 0.95
)

// AlertStore persists alert rows.
type AlertStore interface {
	CreateAlert(ctx context.Context, lineID string, severity models.Severity, message string) (models.Alert, error)
}

// AlertSink receives created alerts for best-effort fan-out (websocket
// broadcast, ops notifications).
type AlertSink interface {
	NotifyAlert(alert models.Alert)
}

// Emitter decides whether a scoring pass raises an alert and at what
// severity. Alerting is best-effort relative to scoring: an insert failure
// is logged and never rolls back the score update that triggered it.
type Emitter struct {
	store  AlertStore
	sinks  []AlertSink
	logger *logrus.Logger
}

func NewEmitter(store AlertStore, logger *logrus.Logger, sinks ...AlertSink) *Emitter {
	return &Emitter{store: store, sinks: sinks, logger: logger}
}

// MaybeEmitAlert creates an alert when the score crosses the trigger
// threshold. Returns the created alert, or nil when no alert was raised.
func (e *Emitter) MaybeEmitAlert(ctx context.Context, lineID string, score float64, tbeMinutes *float64) *models.Alert {
	if score <= alertTriggerScore {
		return nil
	}

	severity := models.SeverityWarning
	if score >= alertCriticalScore {
		severity = models.SeverityCritical
	}

	tbeMsg := "TBE not applicable"
	if tbeMinutes != nil && !math.IsNaN(*tbeMinutes) && !math.IsInf(*tbeMinutes, 0) {
		tbeMsg = fmt.Sprintf("Estimated TBE: %.0f min", *tbeMinutes)
	}
	message := fmt.Sprintf("DANGER: safety threshold %.0f bar imminent. Risk score: %.0f%%. %s",
		PressureSafetyThreshold, score*100, tbeMsg)

	alert, err := e.store.CreateAlert(ctx, lineID, severity, message)
	if err != nil {
		e.logger.Errorf("Failed to create alert for line %s: %v", lineID, err)
		return nil
	}
	e.logger.Infof("Alert created for line %s (severity: %s, score: %.4f)", lineID, severity, score)

	for _, sink := range e.sinks {
		sink.NotifyAlert(alert)
	}
	return &alert
}
