package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/service/reset"
)

// ResetHandler exposes the daily reset trigger.
type ResetHandler struct {
	svc    *reset.Service
	logger *zap.Logger
}

// NewResetHandler constructs the HTTP handler adapter.
func NewResetHandler(svc *reset.Service, logger *zap.Logger) *ResetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResetHandler{svc: svc, logger: logger}
}

// Run performs the daily reset and reports how many rows were archived.
func (h *ResetHandler) Run(c *gin.Context) {
	archived, err := h.svc.PerformDailyReset(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "reset gagal")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "reset harian sukses",
		"archivedCount": archived,
	})
}
