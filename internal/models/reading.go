package models

import "time"

// Reading is a single stored sensor sample.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// FeatureVector is the 7-feature input of the risk model. Built fresh on
// every scoring pass, never persisted.
type FeatureVector struct {
	P       float64 // current pressure (bar)
	T       float64 // current temperature (degC)
	VitP    float64 // pressure rate of change (bar/min)
	VitT    float64 // temperature rate of change (degC/min)
	InstabP float64 // pressure std deviation over the window
	RatioPT float64 // P/T, 0 when T <= 0
	CorrPT  float64 // Pearson correlation of aligned P/T samples
}

// LineScore is the outcome of one scoring pass for one line.
type LineScore struct {
	LineID     string    `json:"line_id"`
	Score      float64   `json:"score"`
	Level      RiskLevel `json:"level"`
	TBEMinutes *float64  `json:"tbe_minutes"`
	ComputedAt time.Time `json:"computed_at"`
	Stale      bool      `json:"stale"` // true when fresh scoring failed and last persisted values are shown
}

// HistoryPoint is one merged row of the 24h line history, one column per
// sensor type, null when that sensor has no sample at the timestamp.
type HistoryPoint struct {
	Time        string   `json:"time"` // HH:MM label
	Timestamp   string   `json:"timestamp"`
	Pressure    *float64 `json:"pressure"`
	Temperature *float64 `json:"temperature"`
	Vibration   *float64 `json:"vibration"`
	Level       *float64 `json:"level"`
}
