package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
	"github.com/mchuang3/dentms/internal/service/ledger"
)

// monthParam extracts and validates the ?month=YYYY-MM query parameter.
// Writes the 400 response itself when invalid.
func monthParam(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if _, err := models.ParseMonth(month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return "", false
	}
	return month, true
}

// respondError maps business errors to HTTP codes. Store failures surface as
// one 502 for the whole request; the client retries, we don't.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
	case errors.Is(err, models.ErrMonthLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "month is locked"})
	case errors.Is(err, ledger.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusBadGateway, gin.H{"error": "calculation failed, try again"})
	}
}
