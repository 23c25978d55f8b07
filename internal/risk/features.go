package risk

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

const (
	historyWindow     = 30 * time.Minute
	historyMaxSamples = 100
)

// SensorResolver maps a line to its pressure and temperature sensor ids.
type SensorResolver interface {
	GetLineSensorIDs(ctx context.Context, lineID string) (pressureID, temperatureID string, err error)
}

// HistoryReader returns stored readings for a sensor, ascending by time.
type HistoryReader interface {
	GetSensorHistory(ctx context.Context, sensorID string, window time.Duration, limit int) ([]models.Reading, error)
}

// Extractor derives the 7-feature model input from recent sensor history.
type Extractor struct {
	sensors SensorResolver
	history HistoryReader
	logger  *logrus.Logger
}

func NewExtractor(sensors SensorResolver, history HistoryReader, logger *logrus.Logger) *Extractor {
	return &Extractor{sensors: sensors, history: history, logger: logger}
}

// ComputeFeatures builds the feature vector for a line from the last 30
// minutes of pressure and temperature history. A missing sensor is a
// configuration error and fails the line; a failed history fetch or a series
// with fewer than 2 samples degrades to the default vector instead.
func (e *Extractor) ComputeFeatures(ctx context.Context, lineID string, currentPressure, currentTemperature float64) (models.FeatureVector, error) {
	pressureID, temperatureID, err := e.sensors.GetLineSensorIDs(ctx, lineID)
	if err != nil {
		return models.FeatureVector{}, err
	}

	pressureHistory, err := e.history.GetSensorHistory(ctx, pressureID, historyWindow, historyMaxSamples)
	if err != nil {
		e.logger.Warnf("Feature extraction for line %s: pressure history fetch failed, using defaults: %v", lineID, err)
		return defaultVector(currentPressure, currentTemperature), nil
	}
	temperatureHistory, err := e.history.GetSensorHistory(ctx, temperatureID, historyWindow, historyMaxSamples)
	if err != nil {
		e.logger.Warnf("Feature extraction for line %s: temperature history fetch failed, using defaults: %v", lineID, err)
		return defaultVector(currentPressure, currentTemperature), nil
	}

	if len(pressureHistory) < 2 || len(temperatureHistory) < 2 {
		e.logger.Warnf("Not enough history for line %s (P: %d, T: %d), using defaults",
			lineID, len(pressureHistory), len(temperatureHistory))
		return defaultVector(currentPressure, currentTemperature), nil
	}

	// The live pressure reading stands in for the newest stored sample in the
	// two-point fallback; temperature always uses stored values only.
	vitP := rateOfChange(pressureHistory, &currentPressure)
	vitT := rateOfChange(temperatureHistory, nil)

	return models.FeatureVector{
		P:       currentPressure,
		T:       currentTemperature,
		VitP:    vitP,
		VitT:    vitT,
		InstabP: populationStdDev(values(pressureHistory)),
		RatioPT: ratioPT(currentPressure, currentTemperature),
		CorrPT:  pearsonAligned(pressureHistory, temperatureHistory),
	}, nil
}

// defaultVector is the documented fallback when history is missing or
// unusable: live readings, zero dynamics.
func defaultVector(currentPressure, currentTemperature float64) models.FeatureVector {
	return models.FeatureVector{
		P:       currentPressure,
		T:       currentTemperature,
		RatioPT: ratioPT(currentPressure, currentTemperature),
	}
}

func ratioPT(pressure, temperature float64) float64 {
	if temperature > 0 {
		return pressure / temperature
	}
	return 0
}

// rateOfChange estimates the per-minute slope of a series. With 3+ samples it
// fits a least-squares line over the last three points (sample index as x)
// and rescales the per-sample slope by the mean inter-sample interval. With
// exactly 2 samples it uses the secant between oldest and newest, where
// liveNewest, when set, replaces the newest stored value.
func rateOfChange(readings []models.Reading, liveNewest *float64) float64 {
	if len(readings) >= 3 {
		recent := readings[len(readings)-3:]

		var sumX, sumY, sumXY, sumX2 float64
		for i, r := range recent {
			x := float64(i)
			sumX += x
			sumY += r.Value
			sumXY += x * r.Value
			sumX2 += x * x
		}
		n := float64(len(recent))
		slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)

		avgIntervalMinutes := recent[len(recent)-1].Timestamp.Sub(recent[0].Timestamp).Minutes() / float64(len(recent)-1)
		return slope / avgIntervalMinutes
	}

	oldest := readings[0]
	newest := readings[len(readings)-1]
	minutes := newest.Timestamp.Sub(oldest.Timestamp).Minutes()
	if minutes <= 0 {
		return 0
	}
	newestValue := newest.Value
	if liveNewest != nil {
		newestValue = *liveNewest
	}
	return (newestValue - oldest.Value) / minutes
}

func values(readings []models.Reading) []float64 {
	vals := make([]float64, len(readings))
	for i, r := range readings {
		vals[i] = r.Value
	}
	return vals
}

// populationStdDev divides by N, not N-1. A constant series yields exactly 0.
func populationStdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))

	var variance float64
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}

// pearsonAligned computes the Pearson correlation of pressure and temperature
// samples joined on exact timestamp. Fewer than 2 aligned pairs or a zero
// standard deviation on either side gives 0. The result is clamped to [-1, 1].
func pearsonAligned(pressure, temperature []models.Reading) float64 {
	tempByTime := make(map[int64]float64, len(temperature))
	for _, r := range temperature {
		tempByTime[r.Timestamp.UnixNano()] = r.Value
	}

	var pVals, tVals []float64
	for _, r := range pressure {
		if t, ok := tempByTime[r.Timestamp.UnixNano()]; ok {
			pVals = append(pVals, r.Value)
			tVals = append(tVals, t)
		}
	}
	if len(pVals) < 2 {
		return 0
	}

	n := float64(len(pVals))
	var pSum, tSum float64
	for i := range pVals {
		pSum += pVals[i]
		tSum += tVals[i]
	}
	pMean := pSum / n
	tMean := tSum / n

	var numerator float64
	for i := range pVals {
		numerator += (pVals[i] - pMean) * (tVals[i] - tMean)
	}
	pStd := populationStdDev(pVals)
	tStd := populationStdDev(tVals)
	if pStd == 0 || tStd == 0 {
		return 0
	}

	corr := numerator / (n * pStd * tStd)
	return math.Max(-1, math.Min(1, corr))
}
