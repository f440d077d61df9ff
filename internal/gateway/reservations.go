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

// ReservationsClient talks to the reservations service through the API
// gateway's gRPC-to-REST bridge. The bridge re-serializes upstream protobuf
// messages, so field casing varies by deployment; the DTOs below accept the
// observed variants and fail loudly when a required field matches none.
type ReservationsClient struct {
	baseURL string
	logger  *logrus.Logger
	client  *http.Client
}

// NewReservationsClient creates a reservations client against the API
// gateway base URL.
func NewReservationsClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *ReservationsClient {
	return &ReservationsClient{
		baseURL: baseURL,
		logger:  logger,
		client:  newHTTPClient(timeout),
	}
}

type reservationDTO models.Reservation

func (d *reservationDTO) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	id, ok := pickInt(obj, "idReserva", "IdReserva", "id_reserva")
	if !ok {
		return &models.UpstreamShapeError{Service: "reservations", Field: "idReserva"}
	}
	d.ID = id
	d.UserID, _ = pickInt(obj, "idUsuario", "IdUsuario", "id_usuario")
	d.TotalCost = pickFloat(obj, "costoTotal", "CostoTotal", "costo_total")
	d.RegisteredAt = pickString(obj, "fechaRegistro", "FechaRegistro", "fecha_registro")
	d.StartDate = pickString(obj, "fechaInicio", "FechaInicio", "fecha_inicio")
	d.EndDate = pickString(obj, "fechaFinal", "FechaFinal", "fecha_final")
	d.State = pickString(obj, "estadoGeneral", "EstadoGeneral", "estado_general")
	d.Active = pickBool(obj, true, "estado", "Estado")
	return nil
}

type reservationLinkDTO models.ReservationLink

func (d *reservationLinkDTO) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	reservationID, ok := pickInt(obj, "idReserva", "IdReserva", "id_reserva")
	if !ok {
		return &models.UpstreamShapeError{Service: "reservations", Field: "habxres.idReserva"}
	}
	roomID := pickString(obj, "idHabitacion", "IdHabitacion", "id_habitacion")
	if roomID == "" {
		return &models.UpstreamShapeError{Service: "reservations", Field: "habxres.idHabitacion"}
	}

	d.ID, _ = pickInt(obj, "idHabxRes", "IdHabxRes", "id_habxres")
	d.ReservationID = reservationID
	d.RoomID = roomID
	d.Capacity, _ = pickInt(obj, "capacidad", "Capacidad")
	d.Cost = pickFloat(obj, "costo", "Costo")
	d.Active = pickBool(obj, true, "estado", "Estado")
	return nil
}

// fetchBridgeList GETs a bridge collection, tolerating both a bare array and
// an object wrapping the array under the given key.
func (c *ReservationsClient) fetchBridgeList(ctx context.Context, path, wrapperKey string, out interface{}) error {
	var raw json.RawMessage
	url := c.baseURL + path
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &raw); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	trimmed := raw
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("failed to decode %s envelope: %w", path, err)
		}
		inner, ok := pickRaw(obj, wrapperKey)
		if !ok {
			return &models.UpstreamShapeError{Service: "reservations", Field: wrapperKey}
		}
		trimmed = inner
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Reservations returns every reservation known to the bridge.
func (c *ReservationsClient) Reservations(ctx context.Context) ([]models.Reservation, error) {
	var dtos []reservationDTO
	if err := c.fetchBridgeList(ctx, "/reservas-grpc/reservas", "reservas", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Reservation(d))
	}
	return out, nil
}

// Links returns the room-to-reservation join records.
func (c *ReservationsClient) Links(ctx context.Context) ([]models.ReservationLink, error) {
	var dtos []reservationLinkDTO
	if err := c.fetchBridgeList(ctx, "/reservas-grpc/habxres", "items", &dtos); err != nil {
		return nil, err
	}
	out := make([]models.ReservationLink, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.ReservationLink(d))
	}
	return out, nil
}

// OccupiedDates returns the blocked calendar dates for a room.
func (c *ReservationsClient) OccupiedDates(ctx context.Context, roomID string) ([]string, error) {
	var obj map[string]json.RawMessage
	url := c.baseURL + "/reservas-grpc/fechas-ocupadas/" + roomID
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &obj); err != nil {
		return nil, fmt.Errorf("failed to fetch occupied dates for %s: %w", roomID, err)
	}

	raw, ok := pickRaw(obj, "fechasOcupadas", "FechasOcupadas")
	if !ok {
		return []string{}, nil
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, fmt.Errorf("failed to decode occupied dates: %w", err)
	}
	return dates, nil
}
