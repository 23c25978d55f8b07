package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/ws"
)

func NewRouter(store Store, scorer Scorer, hub *ws.Hub, logger *logrus.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(store, scorer, logger)
	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/lines", h.GetAllLines)
		api.GET("/lines/:id", h.GetLineByID)
		api.GET("/lines/:id/history", h.GetLineHistory)
		api.GET("/alerts", h.GetAlerts)
		api.GET("/alerts/unacknowledged", h.GetUnacknowledgedAlerts)
	}

	r.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(hub, logger, c.Writer, c.Request)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
