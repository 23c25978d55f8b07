package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

func TestClassifyScore(t *testing.T) {
	cases := []struct {
		score float64
		level models.RiskLevel
	}{
		{0.0, models.RiskLow},
		{0.34, models.RiskLow},
		{0.35, models.RiskMedium},
		{0.5, models.RiskMedium},
		{0.64, models.RiskMedium},
		{0.65, models.RiskHigh},
		{0.84, models.RiskHigh},
		{0.85, models.RiskCritical},
		{0.95, models.RiskCritical},
		{1.0, models.RiskCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, ClassifyScore(tc.score), "score %v", tc.score)
	}
}

func TestClassifyScoreMonotonic(t *testing.T) {
	rank := map[models.RiskLevel]int{
		models.RiskLow:      0,
		models.RiskMedium:   1,
		models.RiskHigh:     2,
		models.RiskCritical: 3,
	}
	prev := -1
	for score := 0.0; score <= 1.0; score += 0.005 {
		level := ClassifyScore(score)
		r, known := rank[level]
		require.True(t, known, "unknown level %q at score %v", level, score)
		assert.GreaterOrEqual(t, r, prev, "severity decreased at score %v", score)
		prev = r
	}
}

func TestEstimateTBE(t *testing.T) {
	t.Run("at threshold", func(t *testing.T) {
		assert.Nil(t, EstimateTBE(10.0, 2.5))
	})
	t.Run("past threshold", func(t *testing.T) {
		assert.Nil(t, EstimateTBE(12.0, 1.0))
	})
	t.Run("flat pressure", func(t *testing.T) {
		assert.Nil(t, EstimateTBE(5.0, 0))
	})
	t.Run("falling pressure", func(t *testing.T) {
		assert.Nil(t, EstimateTBE(5.0, -1))
	})
	t.Run("rising pressure", func(t *testing.T) {
		tbe := EstimateTBE(8.0, 1.0)
		require.NotNil(t, tbe)
		assert.Equal(t, 2.0, *tbe)
	})
	t.Run("slow rise", func(t *testing.T) {
		tbe := EstimateTBE(8.4, 0.0133)
		require.NotNil(t, tbe)
		assert.InDelta(t, 120.3, *tbe, 0.1)
	})
}
