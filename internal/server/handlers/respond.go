package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

// fail maps a service error onto an HTTP error response. Sentinel errors get
// their own status and message; anything else is logged server-side and
// surfaced as a generic 500.
func fail(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFound.Error()})
	case errors.Is(err, models.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidDate.Error()})
	case errors.Is(err, models.ErrEmptyBaseline):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyBaseline.Error()})
	case errors.Is(err, models.ErrAlreadyReset):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrAlreadyReset.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": models.ErrInvalidCredentials.Error()})
	default:
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
