package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/models"
)

// respondError maps domain errors to HTTP responses. Bank business failures
// carry their message verbatim; anything unrecognized is a plain 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var bankErr *models.BankError
	var shapeErr *models.UpstreamShapeError
	var statusErr *gateway.StatusError

	switch {
	case errors.Is(err, models.ErrHoldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "hold_not_found", "message": "Hold not found"})
	case errors.Is(err, models.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room_not_found", "message": "Room not found"})
	case errors.Is(err, models.ErrHoldExpired):
		c.JSON(http.StatusConflict, gin.H{"error": "hold_expired", "message": "The hold has expired"})
	case errors.Is(err, models.ErrHoldNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "hold_not_pending", "message": "The hold is not pending"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Authentication required"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Not allowed"})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "Credenciales incorrectas"})
	case errors.As(err, &bankErr):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment_rejected", "message": bankErr.Message})
	case errors.As(err, &shapeErr):
		logger.WithError(err).Error("Upstream response shape mismatch")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_shape", "message": err.Error()})
	case errors.As(err, &statusErr):
		logger.WithError(err).Error("Upstream call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": "Remote service error"})
	default:
		logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Internal server error"})
	}
}
