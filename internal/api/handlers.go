package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

// Store is the persistence surface the handlers read from. *db.DB satisfies
// it.
type Store interface {
	GetAllLines(ctx context.Context) ([]models.ProductionLine, error)
	GetLineByID(ctx context.Context, id string) (*models.ProductionLine, error)
	GetLineHistory(ctx context.Context, lineID string) ([]models.HistoryPoint, error)
	GetAllAlerts(ctx context.Context) ([]models.Alert, error)
	GetUnacknowledgedAlerts(ctx context.Context) ([]models.Alert, error)
}

// Scorer re-runs the risk pipeline for the lines in scope of a request.
type Scorer interface {
	ScoreLine(ctx context.Context, line models.ProductionLine) models.LineScore
	ScoreAllLines(ctx context.Context, lines []models.ProductionLine) []models.LineScore
}

type Handler struct {
	store  Store
	scorer Scorer
	logger *logrus.Logger
}

func NewHandler(store Store, scorer Scorer, logger *logrus.Logger) *Handler {
	return &Handler{store: store, scorer: scorer, logger: logger}
}

// linePayload is the line response shape: the line record with the freshly
// computed assessment folded in.
type linePayload struct {
	models.ProductionLine
	TBEMinutes *float64 `json:"tbeMinutes"`
}

func mergeScore(line models.ProductionLine, score models.LineScore) linePayload {
	line.MaxRiskScore = score.Score
	line.RiskLevel = score.Level
	return linePayload{ProductionLine: line, TBEMinutes: score.TBEMinutes}
}

// GetAllLines scores every line fresh and returns the merged payloads. A
// line whose scoring failed still gets a row, carrying its last persisted
// score and level.
func (h *Handler) GetAllLines(c *gin.Context) {
	lines, err := h.store.GetAllLines(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Get lines failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch production lines"})
		return
	}

	scores := h.scorer.ScoreAllLines(c.Request.Context(), lines)
	payload := make([]linePayload, len(lines))
	for i := range lines {
		payload[i] = mergeScore(lines[i], scores[i])
	}
	c.JSON(http.StatusOK, payload)
}

// GetLineByID scores one line fresh and returns it.
func (h *Handler) GetLineByID(c *gin.Context) {
	id := c.Param("id")

	line, err := h.store.GetLineByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Get line %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch production line"})
		return
	}
	if line == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "production line not found"})
		return
	}

	score := h.scorer.ScoreLine(c.Request.Context(), *line)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mergeScore(*line, score)})
}

// GetLineHistory returns the merged 24h history of the line's four sensors.
func (h *Handler) GetLineHistory(c *gin.Context) {
	id := c.Param("id")

	history, err := h.store.GetLineHistory(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Get history for line %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch line history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

func (h *Handler) GetAlerts(c *gin.Context) {
	alerts, err := h.store.GetAllAlerts(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Get alerts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts})
}

func (h *Handler) GetUnacknowledgedAlerts(c *gin.Context) {
	alerts, err := h.store.GetUnacknowledgedAlerts(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Get unacknowledged alerts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts})
}
