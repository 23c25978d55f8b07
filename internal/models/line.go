package models

import "time"

// RiskLevel is the discrete bucketing of a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Sensor is one of the four physical sensors attached to a production line.
type Sensor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"` // "ok", "warning", "error"
	Threshold  float64   `json:"threshold"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// ProductionLine carries the line record plus its four sensors and the last
// persisted risk assessment (max_risk_score / risk_level on the row).
type ProductionLine struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Zone         string    `json:"zone,omitempty"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	MaxRiskScore float64   `json:"maxRiskScore"`
	LastUpdate   time.Time `json:"lastUpdate"`
	Pressure     Sensor    `json:"pressure"`
	Temperature  Sensor    `json:"temperature"`
	Vibration    Sensor    `json:"vibration"`
	Level        Sensor    `json:"level"`
}
