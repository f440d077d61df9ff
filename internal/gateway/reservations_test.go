package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelandino/booking-bff/internal/models"
)

func reservationsServer(t *testing.T, path, body string) *ReservationsClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewReservationsClient(server.URL, 0, logger)
}

func TestReservationsDecodesCasingVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"camelCase", `[{"idReserva": 5, "idUsuario": 7, "costoTotal": 320.5, "fechaInicio": "2026-04-01", "fechaFinal": "2026-04-05", "estadoGeneral": "CONFIRMADO"}]`},
		{"PascalCase", `[{"IdReserva": 5, "IdUsuario": 7, "CostoTotal": 320.5, "FechaInicio": "2026-04-01", "FechaFinal": "2026-04-05", "EstadoGeneral": "CONFIRMADO"}]`},
		{"snake_case", `[{"id_reserva": 5, "id_usuario": 7, "costo_total": 320.5, "fecha_inicio": "2026-04-01", "fecha_final": "2026-04-05", "estado_general": "CONFIRMADO"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := reservationsServer(t, "/reservas-grpc/reservas", tt.body)
			reservations, err := client.Reservations(context.Background())
			require.NoError(t, err)
			require.Len(t, reservations, 1)

			r := reservations[0]
			assert.Equal(t, 5, r.ID)
			assert.Equal(t, 7, r.UserID)
			assert.Equal(t, 320.5, r.TotalCost)
			assert.Equal(t, "2026-04-01", r.StartDate)
			assert.Equal(t, "2026-04-05", r.EndDate)
			assert.Equal(t, "CONFIRMADO", r.State)
		})
	}
}

func TestReservationsUnwrapsEnvelope(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/reservas",
		`{"reservas": [{"idReserva": 1}, {"idReserva": 2}]}`)
	reservations, err := client.Reservations(context.Background())
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, 2, reservations[1].ID)
}

func TestReservationsMissingIDFailsLoudly(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/reservas", `[{"idUsuario": 7}]`)
	_, err := client.Reservations(context.Background())

	var shapeErr *models.UpstreamShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "idReserva", shapeErr.Field)
}

func TestReservationsUnknownEnvelopeKeyFailsLoudly(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/reservas", `{"rows": []}`)
	_, err := client.Reservations(context.Background())

	var shapeErr *models.UpstreamShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestLinksDecodeAndRequiredFields(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/habxres",
		`{"items": [{"idHabxRes": 3, "idReserva": 5, "idHabitacion": "HAB-101", "capacidad": 2, "costo": 80, "estado": true}]}`)
	links, err := client.Links(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 5, links[0].ReservationID)
	assert.Equal(t, "HAB-101", links[0].RoomID)
	assert.True(t, links[0].Active)

	client = reservationsServer(t, "/reservas-grpc/habxres", `[{"idReserva": 5}]`)
	_, err = client.Links(context.Background())
	var shapeErr *models.UpstreamShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "habxres.idHabitacion", shapeErr.Field)
}

func TestOccupiedDatesKeyVariants(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/fechas-ocupadas/HAB-101",
		`{"FechasOcupadas": ["2026-04-01", "2026-04-02"]}`)
	dates, err := client.OccupiedDates(context.Background(), "HAB-101")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-04-01", "2026-04-02"}, dates)
}

func TestOccupiedDatesMissingKeyIsEmpty(t *testing.T) {
	client := reservationsServer(t, "/reservas-grpc/fechas-ocupadas/HAB-101", `{}`)
	dates, err := client.OccupiedDates(context.Background(), "HAB-101")
	require.NoError(t, err)
	assert.NotNil(t, dates)
	assert.Empty(t, dates)
}

func TestReservationsNon2xxSurfacesStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservas-grpc/reservas", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bridge unavailable", http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewReservationsClient(server.URL, 0, logger)

	_, err := client.Reservations(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}
