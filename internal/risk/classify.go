package risk

import "github.com/AYEX777/Pr-sub001/internal/models"

// ClassifyScore buckets a risk score into a discrete level. Pure and total
// over [0, 1], no hysteresis.
func ClassifyScore(score float64) models.RiskLevel {
	switch {
	case score >= 0.85:
		return models.RiskCritical
	case score >= 0.65:
		return models.RiskHigh
	case score >= 0.35:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
