package risk

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// LineStore persists the risk assessment on the line record.
type LineStore interface {
	UpdateLineRiskScore(ctx context.Context, lineID string, score float64, level models.RiskLevel) error
}

// Engine runs the scoring pipeline: feature extraction, model prediction,
// classification, TBE estimation, persistence and alert emission. Each pass
// is stateless given current sensor history and the last persisted score.
type Engine struct {
	extractor  *Extractor
	predictor  Predictor
	lines      LineStore
	emitter    *Emitter
	logger     *logrus.Logger
	maxWorkers int
}

func NewEngine(extractor *Extractor, predictor Predictor, lines LineStore, emitter *Emitter, logger *logrus.Logger, maxWorkers int) *Engine {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Engine{
		extractor:  extractor,
		predictor:  predictor,
		lines:      lines,
		emitter:    emitter,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// ScoreLine runs one full pass for one line. It never returns an error: any
// failure degrades to the line's last persisted score and level, marked
// stale, with no alert raised.
func (e *Engine) ScoreLine(ctx context.Context, line models.ProductionLine) models.LineScore {
	result := models.LineScore{
		LineID:     line.ID,
		Score:      line.MaxRiskScore,
		Level:      line.RiskLevel,
		ComputedAt: time.Now(),
	}

	features, err := e.extractor.ComputeFeatures(ctx, line.ID, line.Pressure.Value, line.Temperature.Value)
	if err != nil {
		e.logger.Errorf("Scoring line %s: feature extraction failed: %v", line.ID, err)
		result.Stale = true
		return result
	}

	score, err := e.predictor.Predict(ctx, features)
	if err != nil {
		e.logger.Errorf("Scoring line %s: prediction failed, keeping last known score: %v", line.ID, err)
		result.Stale = true
		return result
	}

	result.Score = score
	result.Level = ClassifyScore(score)
	result.TBEMinutes = EstimateTBE(features.P, features.VitP)

	if err := e.lines.UpdateLineRiskScore(ctx, line.ID, score, result.Level); err != nil {
		// Fresh values are still returned; only alerting is skipped.
		e.logger.Errorf("Scoring line %s: risk score update failed: %v", line.ID, err)
		return result
	}

	e.emitter.MaybeEmitAlert(ctx, line.ID, score, result.TBEMinutes)
	return result
}

// ScoreAllLines scores every line concurrently with a bounded worker count
// and captures a result per line. One line's failure never aborts another's.
func (e *Engine) ScoreAllLines(ctx context.Context, lines []models.ProductionLine) []models.LineScore {
	results := make([]models.LineScore, len(lines))
	sem := make(chan struct{}, e.maxWorkers)
	var wg sync.WaitGroup

	for i, line := range lines {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, line models.ProductionLine) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.ScoreLine(ctx, line)
		}(i, line)
	}
	wg.Wait()
	return results
}
