package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

type fakeStore struct {
	lines  []models.ProductionLine
	alerts []models.Alert
	err    error
}

func (f *fakeStore) GetAllLines(ctx context.Context) ([]models.ProductionLine, error) {
	return f.lines, f.err
}

func (f *fakeStore) GetLineByID(ctx context.Context, id string) (*models.ProductionLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, line := range f.lines {
		if line.ID == id {
			return &line, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetLineHistory(ctx context.Context, lineID string) ([]models.HistoryPoint, error) {
	return []models.HistoryPoint{}, f.err
}

func (f *fakeStore) GetAllAlerts(ctx context.Context) ([]models.Alert, error) {
	return f.alerts, f.err
}

func (f *fakeStore) GetUnacknowledgedAlerts(ctx context.Context) ([]models.Alert, error) {
	return f.alerts, f.err
}

// fakeScorer returns a fixed fresh score for every line except those listed
// in stale, which keep their persisted values.
type fakeScorer struct {
	score float64
	level models.RiskLevel
	tbe   *float64
	stale map[string]bool
}

func (f *fakeScorer) ScoreLine(ctx context.Context, line models.ProductionLine) models.LineScore {
	if f.stale[line.ID] {
		return models.LineScore{LineID: line.ID, Score: line.MaxRiskScore, Level: line.RiskLevel, Stale: true}
	}
	return models.LineScore{LineID: line.ID, Score: f.score, Level: f.level, TBEMinutes: f.tbe}
}

func (f *fakeScorer) ScoreAllLines(ctx context.Context, lines []models.ProductionLine) []models.LineScore {
	results := make([]models.LineScore, len(lines))
	for i, line := range lines {
		results[i] = f.ScoreLine(ctx, line)
	}
	return results
}

func testRouter(store Store, scorer Scorer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	h := NewHandler(store, scorer, logger)
	r.GET("/api/lines", h.GetAllLines)
	r.GET("/api/lines/:id", h.GetLineByID)
	r.GET("/api/lines/:id/history", h.GetLineHistory)
	r.GET("/api/alerts", h.GetAlerts)
	return r
}

func testLines() []models.ProductionLine {
	return []models.ProductionLine{
		{ID: "line-A", Name: "Line A", RiskLevel: models.RiskLow, MaxRiskScore: 0.2},
		{ID: "line-B", Name: "Line B", RiskLevel: models.RiskMedium, MaxRiskScore: 0.5},
	}
}

func TestGetAllLinesMergesFreshScores(t *testing.T) {
	tbe := 42.0
	router := testRouter(
		&fakeStore{lines: testLines()},
		&fakeScorer{score: 0.9, level: models.RiskCritical, tbe: &tbe},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload, 2)

	assert.Equal(t, "line-A", payload[0]["id"])
	assert.Equal(t, 0.9, payload[0]["maxRiskScore"])
	assert.Equal(t, "critical", payload[0]["riskLevel"])
	assert.Equal(t, 42.0, payload[0]["tbeMinutes"])
}

func TestGetAllLinesDegradesStaleEntries(t *testing.T) {
	router := testRouter(
		&fakeStore{lines: testLines()},
		&fakeScorer{score: 0.9, level: models.RiskCritical, stale: map[string]bool{"line-B": true}},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload, 2)

	// line-B keeps its last persisted score and shows no TBE
	assert.Equal(t, 0.5, payload[1]["maxRiskScore"])
	assert.Equal(t, "medium", payload[1]["riskLevel"])
	assert.Nil(t, payload[1]["tbeMinutes"])
}

func TestGetLineByIDNotFound(t *testing.T) {
	router := testRouter(&fakeStore{lines: testLines()}, &fakeScorer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lines/line-Z", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLineByIDScoresFresh(t *testing.T) {
	router := testRouter(
		&fakeStore{lines: testLines()},
		&fakeScorer{score: 0.7, level: models.RiskHigh},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lines/line-A", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 0.7, body.Data["maxRiskScore"])
	assert.Equal(t, "high", body.Data["riskLevel"])
}

func TestGetAllLinesStoreError(t *testing.T) {
	router := testRouter(&fakeStore{err: errors.New("db down")}, &fakeScorer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetAlerts(t *testing.T) {
	router := testRouter(&fakeStore{alerts: []models.Alert{
		{ID: "a1", LineID: "line-A", Severity: models.SeverityWarning, Message: "DANGER"},
	}}, &fakeScorer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    []models.Alert `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, models.SeverityWarning, body.Data[0].Severity)
}
