package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/middleware"
	"github.com/hotelandino/booking-bff/internal/models"
	"github.com/hotelandino/booking-bff/internal/orchestrator"
)

// PaymentsHandler serves the payments view and invoice emission.
type PaymentsHandler struct {
	orch   *orchestrator.Orchestrator
	logger *logrus.Logger
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(orch *orchestrator.Orchestrator, logger *logrus.Logger) *PaymentsHandler {
	return &PaymentsHandler{orch: orch, logger: logger}
}

// MyPayments handles GET /api/payments.
func (h *PaymentsHandler) MyPayments(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	displays, err := h.orch.MyPayments(c.Request.Context(), sess)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": displays, "count": len(displays)})
}

type emitInvoiceRequest struct {
	ReservationID int `json:"reservation_id" binding:"required"`
}

// EmitInvoice handles POST /api/payments/invoices.
func (h *PaymentsHandler) EmitInvoice(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	var req emitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "reservation_id is required"})
		return
	}

	if err := h.orch.EmitInvoice(c.Request.Context(), sess, req.ReservationID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Factura generada correctamente"})
}
