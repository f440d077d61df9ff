package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/models"
)

// AdminHandler serves the admin room catalog mutations. Routes using it are
// guarded by the admin-only middleware.
type AdminHandler struct {
	rooms  *gateway.RoomsClient
	logger *logrus.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(rooms *gateway.RoomsClient, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{rooms: rooms, logger: logger}
}

// CreateRoom handles POST /api/admin/rooms.
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	var req models.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "name is required"})
		return
	}

	if err := h.rooms.CreateRoom(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("room_id", req.ID).Info("Room created")
	c.JSON(http.StatusCreated, gin.H{"message": "Habitación creada"})
}

// UpdateRoom handles PUT /api/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c *gin.Context) {
	var req models.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "name is required"})
		return
	}
	req.ID = c.Param("id")

	if err := h.rooms.UpdateRoom(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("room_id", req.ID).Info("Room updated")
	c.JSON(http.StatusOK, gin.H{"message": "Habitación actualizada"})
}

// DeactivateRoom handles DELETE /api/admin/rooms/:id. The rooms service has
// no delete; deactivation is an update with availability off.
func (h *AdminHandler) DeactivateRoom(c *gin.Context) {
	id := c.Param("id")

	room, err := h.rooms.RoomByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	input := models.RoomInput{
		ID:           room.ID,
		Name:         room.Name,
		HotelID:      room.HotelID,
		CityID:       room.CityID,
		TypeID:       room.TypeID,
		NormalPrice:  room.NormalPrice,
		CurrentPrice: room.CurrentPrice,
		Capacity:     room.Capacity,
		Available:    false,
		Active:       room.Active,
	}
	if err := h.rooms.UpdateRoom(c.Request.Context(), input); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("room_id", id).Info("Room deactivated")
	c.JSON(http.StatusOK, gin.H{"message": "Habitación desactivada"})
}
