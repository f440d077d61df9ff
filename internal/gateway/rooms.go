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

// RoomsClient talks to the rooms service over GraphQL.
type RoomsClient struct {
	endpoint string
	logger   *logrus.Logger
	client   *http.Client
}

// NewRoomsClient creates a rooms client against the given GraphQL endpoint.
func NewRoomsClient(endpoint string, timeout time.Duration, logger *logrus.Logger) *RoomsClient {
	return &RoomsClient{
		endpoint: endpoint,
		logger:   logger,
		client:   newHTTPClient(timeout),
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// query executes a GraphQL operation and unmarshals the data envelope into
// out. Errors in the envelope become Go errors even on HTTP 200.
func (c *RoomsClient) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	var resp graphQLResponse
	req := graphQLRequest{Query: query, Variables: variables}
	if err := doJSON(ctx, c.client, http.MethodPost, c.endpoint, req, &resp); err != nil {
		return fmt.Errorf("failed to execute rooms query: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("rooms query rejected: %s", resp.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if resp.Data == nil {
		return &models.UpstreamShapeError{Service: "rooms", Field: "data"}
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode rooms data: %w", err)
	}
	return nil
}

type roomDTO struct {
	ID           string  `json:"idHabitacion"`
	Name         string  `json:"nombreHabitacion"`
	HotelID      int     `json:"idHotel"`
	CityID       int     `json:"idCiudad"`
	TypeID       int     `json:"idTipoHabitacion"`
	NormalPrice  float64 `json:"precioNormalHabitacion"`
	CurrentPrice float64 `json:"precioActualHabitacion"`
	Capacity     int     `json:"capacidadHabitacion"`
	Available    bool    `json:"estadoHabitacion"`
	Active       bool    `json:"estadoActivoHabitacion"`
}

func (d roomDTO) toModel() models.Room {
	return models.Room{
		ID:           d.ID,
		Name:         d.Name,
		HotelID:      d.HotelID,
		CityID:       d.CityID,
		TypeID:       d.TypeID,
		NormalPrice:  d.NormalPrice,
		CurrentPrice: d.CurrentPrice,
		Capacity:     d.Capacity,
		Available:    d.Available,
		Active:       d.Active,
	}
}

const roomFields = `
    idHabitacion
    nombreHabitacion
    idHotel
    idCiudad
    idTipoHabitacion
    precioNormalHabitacion
    precioActualHabitacion
    capacidadHabitacion
    estadoHabitacion
    estadoActivoHabitacion`

// Rooms returns the full room catalog.
func (c *RoomsClient) Rooms(ctx context.Context) ([]models.Room, error) {
	var data struct {
		Rooms []roomDTO `json:"habitaciones"`
	}
	q := "query {\n  habitaciones {" + roomFields + "\n  }\n}"
	if err := c.query(ctx, q, nil, &data); err != nil {
		return nil, err
	}
	out := make([]models.Room, 0, len(data.Rooms))
	for _, d := range data.Rooms {
		out = append(out, d.toModel())
	}
	return out, nil
}

// RoomByID returns a single room or models.ErrRoomNotFound.
func (c *RoomsClient) RoomByID(ctx context.Context, id string) (*models.Room, error) {
	var data struct {
		Room *roomDTO `json:"habitacionById"`
	}
	q := "query($id: String!) {\n  habitacionById(id: $id) {" + roomFields + "\n  }\n}"
	if err := c.query(ctx, q, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Room == nil {
		return nil, models.ErrRoomNotFound
	}
	room := data.Room.toModel()
	return &room, nil
}

// AmenityLinks returns the room-to-amenity join table.
func (c *RoomsClient) AmenityLinks(ctx context.Context) ([]models.AmenityLink, error) {
	var data struct {
		Links []struct {
			RoomID    string `json:"idHabitacion"`
			AmenityID int    `json:"idAmenidad"`
		} `json:"amenidadesPorHabitacion"`
	}
	q := `query {
  amenidadesPorHabitacion {
    idHabitacion
    idAmenidad
  }
}`
	if err := c.query(ctx, q, nil, &data); err != nil {
		return nil, err
	}
	out := make([]models.AmenityLink, 0, len(data.Links))
	for _, l := range data.Links {
		out = append(out, models.AmenityLink{RoomID: l.RoomID, AmenityID: l.AmenityID})
	}
	return out, nil
}

// Images returns every room image record.
func (c *RoomsClient) Images(ctx context.Context) ([]models.RoomImage, error) {
	var data struct {
		Images []struct {
			ID     int    `json:"idImagen"`
			RoomID string `json:"idHabitacion"`
			URL    string `json:"urlImagen"`
			Active bool   `json:"estadoImagen"`
		} `json:"imagenesHabitacion"`
	}
	q := `query {
  imagenesHabitacion {
    idImagen
    idHabitacion
    urlImagen
    estadoImagen
  }
}`
	if err := c.query(ctx, q, nil, &data); err != nil {
		return nil, err
	}
	out := make([]models.RoomImage, 0, len(data.Images))
	for _, i := range data.Images {
		out = append(out, models.RoomImage{ID: i.ID, RoomID: i.RoomID, URL: i.URL, Active: i.Active})
	}
	return out, nil
}

// RoomSummary is the denormalized projection used when joining reservations
// to rooms: the nested hotel/city/image selection flattened.
type RoomSummary struct {
	ID    string
	Name  string
	Hotel string
	City  string
	Image string
}

// RoomSummaries returns rooms with their hotel, city and first image already
// resolved by the rooms service.
func (c *RoomsClient) RoomSummaries(ctx context.Context) ([]RoomSummary, error) {
	var data struct {
		Rooms []struct {
			ID    string `json:"idHabitacion"`
			Name  string `json:"nombreHabitacion"`
			Hotel *struct {
				Name string `json:"nombreHotel"`
				City *struct {
					Name string `json:"nombreCiudad"`
				} `json:"ciudad"`
			} `json:"hotel"`
			Images []struct {
				URL string `json:"urlImagenHabitacion"`
			} `json:"imagenes"`
		} `json:"habitaciones"`
	}
	q := `query {
  habitaciones {
    idHabitacion
    nombreHabitacion
    hotel {
      nombreHotel
      ciudad {
        nombreCiudad
      }
    }
    imagenes {
      urlImagenHabitacion
    }
  }
}`
	if err := c.query(ctx, q, nil, &data); err != nil {
		return nil, err
	}

	out := make([]RoomSummary, 0, len(data.Rooms))
	for _, r := range data.Rooms {
		s := RoomSummary{ID: r.ID, Name: r.Name, Image: models.DefaultRoomImage}
		if r.Name == "" {
			s.Name = r.ID
		}
		if r.Hotel != nil {
			s.Hotel = r.Hotel.Name
			if r.Hotel.City != nil {
				s.City = r.Hotel.City.Name
			}
		}
		if len(r.Images) > 0 && r.Images[0].URL != "" {
			s.Image = r.Images[0].URL
		}
		out = append(out, s)
	}
	return out, nil
}

func roomInputVariables(input models.RoomInput) map[string]interface{} {
	return map[string]interface{}{
		"idHabitacion":           input.ID,
		"nombreHabitacion":       input.Name,
		"idHotel":                input.HotelID,
		"idCiudad":               input.CityID,
		"idTipoHabitacion":       input.TypeID,
		"precioNormalHabitacion": input.NormalPrice,
		"precioActualHabitacion": input.CurrentPrice,
		"capacidadHabitacion":    input.Capacity,
		"estadoHabitacion":       input.Available,
	}
}

// CreateRoom runs the createHabitacion mutation.
func (c *RoomsClient) CreateRoom(ctx context.Context, input models.RoomInput) error {
	q := `mutation($input: HabitacionInput!) {
  createHabitacion(input: $input) {
    idHabitacion
    estadoHabitacion
  }
}`
	return c.query(ctx, q, map[string]interface{}{"input": roomInputVariables(input)}, nil)
}

// UpdateRoom runs the updateHabitacion mutation. Deactivation is an update
// with estadoHabitacion false; the service has no delete.
func (c *RoomsClient) UpdateRoom(ctx context.Context, input models.RoomInput) error {
	q := `mutation($id: String!, $input: HabitacionInput!) {
  updateHabitacion(id: $id, input: $input) {
    idHabitacion
    estadoHabitacion
  }
}`
	vars := map[string]interface{}{
		"id":    input.ID,
		"input": roomInputVariables(input),
	}
	return c.query(ctx, q, vars, nil)
}
