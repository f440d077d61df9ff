package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hotelandino/booking-bff/internal/availability"
	"github.com/hotelandino/booking-bff/internal/enrich"
	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/models"
)

// RoomsHandler serves the room catalog views.
type RoomsHandler struct {
	rooms        *gateway.RoomsClient
	catalog      *gateway.CatalogClient
	availability *availability.Resolver
	logger       *logrus.Logger
}

// NewRoomsHandler creates a new rooms handler.
func NewRoomsHandler(rooms *gateway.RoomsClient, catalog *gateway.CatalogClient, resolver *availability.Resolver, logger *logrus.Logger) *RoomsHandler {
	return &RoomsHandler{
		rooms:        rooms,
		catalog:      catalog,
		availability: resolver,
		logger:       logger,
	}
}

// catalogData is everything the enrichment mapper consumes.
type catalogData struct {
	types     []models.RoomType
	amenities []models.Amenity
	links     []models.AmenityLink
	images    []models.RoomImage
	hotels    []models.Hotel
	cities    []models.City
}

// fetchCatalogData fans out the six lookup fetches. Each leg degrades to an
// empty slice on failure so one stale catalog does not blank the listing.
func (h *RoomsHandler) fetchCatalogData(ctx context.Context) catalogData {
	var data catalogData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := h.catalog.RoomTypes(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Room types unavailable")
			return nil
		}
		data.types = list
		return nil
	})
	g.Go(func() error {
		list, err := h.catalog.Amenities(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Amenities unavailable")
			return nil
		}
		data.amenities = list
		return nil
	})
	g.Go(func() error {
		list, err := h.rooms.AmenityLinks(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Amenity links unavailable")
			return nil
		}
		data.links = list
		return nil
	})
	g.Go(func() error {
		list, err := h.rooms.Images(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Room images unavailable")
			return nil
		}
		data.images = list
		return nil
	})
	g.Go(func() error {
		list, err := h.catalog.Hotels(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Hotels unavailable")
			return nil
		}
		data.hotels = list
		return nil
	})
	g.Go(func() error {
		list, err := h.catalog.Cities(gctx)
		if err != nil {
			h.logger.WithError(err).Warn("Cities unavailable")
			return nil
		}
		data.cities = list
		return nil
	})
	_ = g.Wait()

	return data
}

func parseFilter(c *gin.Context) models.RoomFilter {
	var filter models.RoomFilter
	if v := c.Query("type"); v != "" {
		filter.TypeName = &v
	}
	if v := c.Query("capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Capacity = &n
		}
	}
	if v := c.Query("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &f
		}
	}
	if v := c.Query("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &f
		}
	}
	return filter
}

// List handles GET /api/rooms. Optional query filters: type, capacity,
// price_min, price_max; plus start_date/end_date to exclude occupied rooms.
func (h *RoomsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var rooms []models.Room
	var data catalogData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = h.rooms.Rooms(gctx)
		return err
	})
	g.Go(func() error {
		data = h.fetchCatalogData(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	cards := enrich.EnrichRooms(rooms, data.types, data.amenities, data.links, data.images, data.hotels, data.cities, parseFilter(c))

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		occupied, err := h.availability.OccupiedRooms(ctx, startDate, endDate)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		available := make([]models.RoomCard, 0, len(cards))
		for _, card := range cards {
			if !occupied[card.ID] {
				available = append(available, card)
			}
		}
		cards = available
	}

	c.JSON(http.StatusOK, gin.H{"rooms": cards, "count": len(cards)})
}

// Detail handles GET /api/rooms/:id.
func (h *RoomsHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	room, err := h.rooms.RoomByID(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data := h.fetchCatalogData(ctx)
	detail := enrich.RoomDetail(*room, data.types, data.amenities, data.links, data.images, data.hotels, data.cities)
	c.JSON(http.StatusOK, detail)
}

// OccupiedDates handles GET /api/rooms/:id/occupied-dates. Always answers
// 200; an unreachable reservations bridge means no blocked dates.
func (h *RoomsHandler) OccupiedDates(c *gin.Context) {
	dates := h.availability.OccupiedDates(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"occupied_dates": dates})
}

// Availability handles GET /api/rooms/availability?start_date=&end_date=.
func (h *RoomsHandler) Availability(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "start_date and end_date are required"})
		return
	}

	occupied, err := h.availability.OccupiedRooms(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ids := make([]string, 0, len(occupied))
	for id := range occupied {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	c.JSON(http.StatusOK, gin.H{"occupied_room_ids": ids})
}
