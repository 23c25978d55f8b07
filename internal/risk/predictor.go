package risk

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/models"
)

// Predictor is the boundary to the external risk model. Implementations take
// the 7-feature vector and return a score in [0, 1].
type Predictor interface {
	Predict(ctx context.Context, features models.FeatureVector) (float64, error)
}

// ScriptPredictor invokes the Python model script with the 7 features as
// positional arguments and parses a single float from its stdout.
type ScriptPredictor struct {
	pythonCmd  string
	scriptPath string
	timeout    time.Duration
}

func NewScriptPredictor(cfg config.Config) *ScriptPredictor {
	return &ScriptPredictor{
		pythonCmd:  cfg.Predictor.PythonCmd,
		scriptPath: cfg.Predictor.ScriptPath,
		timeout:    time.Duration(cfg.Predictor.TimeoutSeconds) * time.Second,
	}
}

func (p *ScriptPredictor) Predict(ctx context.Context, features models.FeatureVector) (float64, error) {
	if err := validateFeatures(features); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{p.scriptPath}
	for _, v := range featureArgs(features) {
		args = append(args, strconv.FormatFloat(v, 'g', -1, 64))
	}

	cmd := exec.CommandContext(ctx, p.pythonCmd, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return 0, fmt.Errorf("risk model process failed: %v: %s", err, strings.TrimSpace(stderr.String()))
		}
		return 0, fmt.Errorf("risk model process failed: %w", err)
	}

	out := strings.TrimSpace(stdout.String())
	score, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid risk model output %q: %w", out, err)
	}

	// Defensive clamp against a misbehaving model.
	return clamp01(score), nil
}

// featureArgs returns the features in the positional order the model script
// expects: P T Vit_P Vit_T Instab_P Ratio_PT Corr_PT.
func featureArgs(f models.FeatureVector) []float64 {
	return []float64{f.P, f.T, f.VitP, f.VitT, f.InstabP, f.RatioPT, f.CorrPT}
}

// validateFeatures rejects non-finite inputs before the process call.
func validateFeatures(f models.FeatureVector) error {
	names := []string{"P", "T", "Vit_P", "Vit_T", "Instab_P", "Ratio_PT", "Corr_PT"}
	for i, v := range featureArgs(f) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("feature %s is not a finite number: %v", names[i], v)
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
