package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/middleware"
	"github.com/hotelandino/booking-bff/internal/models"
	"github.com/hotelandino/booking-bff/internal/orchestrator"
)

// BookingHandler serves the hold/confirm/cancel lifecycle and the merged
// reservations view.
type BookingHandler struct {
	orch   *orchestrator.Orchestrator
	logger *logrus.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(orch *orchestrator.Orchestrator, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{orch: orch, logger: logger}
}

// CreateHold handles POST /api/bookings/holds.
func (h *BookingHandler) CreateHold(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	var req models.CreateHoldInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "room_id, start_date, end_date and guests are required"})
		return
	}

	hold, err := h.orch.CreateHold(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

// Confirm handles POST /api/bookings/holds/:holdId/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	outcome, err := h.orch.Confirm(c.Request.Context(), sess, c.Param("holdId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// HoldStatus handles GET /api/bookings/holds/:holdId. It answers with the
// local hold record plus the server-side state when the remote is reachable.
func (h *BookingHandler) HoldStatus(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	hold, remote, err := h.orch.HoldStatus(c.Request.Context(), sess, c.Param("holdId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := gin.H{"hold": hold}
	if remote != nil {
		resp["remote"] = remote
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel handles DELETE /api/bookings/holds/:holdId.
func (h *BookingHandler) Cancel(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	if err := h.orch.Cancel(c.Request.Context(), sess, c.Param("holdId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reserva cancelada"})
}

// MyReservations handles GET /api/bookings/reservations.
func (h *BookingHandler) MyReservations(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	displays, err := h.orch.MyReservations(c.Request.Context(), sess)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": displays, "count": len(displays)})
}
