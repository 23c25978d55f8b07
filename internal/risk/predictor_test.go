package risk

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/models"
)

func TestValidateFeaturesRejectsNonFinite(t *testing.T) {
	valid := models.FeatureVector{P: 8.4, T: 70, VitP: 0.01, RatioPT: 0.12, CorrPT: 0.5}
	require.NoError(t, validateFeatures(valid))

	nan := valid
	nan.VitT = math.NaN()
	assert.Error(t, validateFeatures(nan))

	inf := valid
	inf.VitP = math.Inf(1)
	assert.Error(t, validateFeatures(inf))
}

func TestScriptPredictorRejectsInvalidInputBeforeSpawn(t *testing.T) {
	cfg := config.Config{}
	cfg.Predictor.PythonCmd = "definitely-not-a-real-binary"
	cfg.Predictor.ScriptPath = "nowhere.py"
	cfg.Predictor.TimeoutSeconds = 1
	predictor := NewScriptPredictor(cfg)

	_, err := predictor.Predict(context.Background(), models.FeatureVector{P: math.Inf(-1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a finite number")
}

func TestFeatureArgsOrder(t *testing.T) {
	f := models.FeatureVector{P: 1, T: 2, VitP: 3, VitT: 4, InstabP: 5, RatioPT: 6, CorrPT: 7}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, featureArgs(f))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.2))
	assert.Equal(t, 1.0, clamp01(1.7))
	assert.Equal(t, 0.42, clamp01(0.42))
}
