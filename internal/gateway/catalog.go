package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/models"
)

// CatalogClient talks to the catalog service: lookup tables for amenities,
// room types, hotels, cities and countries.
type CatalogClient struct {
	baseURL string
	logger  *logrus.Logger
	client  *http.Client
}

// NewCatalogClient creates a catalog client against the given base URL.
func NewCatalogClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		logger:  logger,
		client:  newHTTPClient(timeout),
	}
}

type amenityDTO struct {
	ID   int    `json:"idAmenidad"`
	Name string `json:"nombreAmenidad"`
}

type roomTypeDTO struct {
	ID          int    `json:"idTipoHabitacion"`
	Name        string `json:"nombreTipoHabitacion"`
	Description string `json:"descripcionTipoHabitacion"`
}

type hotelDTO struct {
	ID   int    `json:"idHotel"`
	Name string `json:"nombreHotel"`
}

type cityDTO struct {
	ID   int    `json:"idCiudad"`
	Name string `json:"nombreCiudad"`
}

type countryDTO struct {
	ID   int    `json:"idPais"`
	Name string `json:"nombrePais"`
}

// fetchList GETs a catalog collection and unwraps the optional value envelope.
func (c *CatalogClient) fetchList(ctx context.Context, resource string, out interface{}) error {
	var raw json.RawMessage
	url := c.baseURL + "/" + resource
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &raw); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	if err := decodeValueWrapped(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	return nil
}

// Amenities returns the amenity lookup table.
func (c *CatalogClient) Amenities(ctx context.Context) ([]models.Amenity, error) {
	var dtos []amenityDTO
	if err := c.fetchList(ctx, "Amenidades", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Amenity, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Amenity{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// RoomTypes returns the room type lookup table.
func (c *CatalogClient) RoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var dtos []roomTypeDTO
	if err := c.fetchList(ctx, "TiposHabitacion", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.RoomType, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.RoomType{ID: d.ID, Name: d.Name, Description: d.Description})
	}
	return out, nil
}

// Hotels returns the hotel lookup table.
func (c *CatalogClient) Hotels(ctx context.Context) ([]models.Hotel, error) {
	var dtos []hotelDTO
	if err := c.fetchList(ctx, "Hoteles", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Hotel, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Hotel{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// Cities returns the city lookup table.
func (c *CatalogClient) Cities(ctx context.Context) ([]models.City, error) {
	var dtos []cityDTO
	if err := c.fetchList(ctx, "Ciudades", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.City, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.City{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// Countries returns the country lookup table.
func (c *CatalogClient) Countries(ctx context.Context) ([]models.Country, error) {
	var dtos []countryDTO
	if err := c.fetchList(ctx, "paises", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Country, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Country{ID: d.ID, Name: d.Name})
	}
	return out, nil
}
