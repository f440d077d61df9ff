package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/middleware"
	"github.com/hotelandino/booking-bff/internal/models"
	"github.com/hotelandino/booking-bff/internal/orchestrator"
	"github.com/hotelandino/booking-bff/internal/report"
)

// ReportHandler exports the user's bookings and payments as a workbook.
type ReportHandler struct {
	orch   *orchestrator.Orchestrator
	logger *logrus.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(orch *orchestrator.Orchestrator, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{orch: orch, logger: logger}
}

// Export handles GET /api/reports/bookings.xlsx.
func (h *ReportHandler) Export(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	reservations, err := h.orch.MyReservations(ctx, sess)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	payments, err := h.orch.MyPayments(ctx, sess)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="reservas.xlsx"`)
	if err := report.Write(c.Writer, reservations, payments); err != nil {
		h.logger.WithError(err).Error("Workbook export failed")
	}
}
