package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelandino/booking-bff/internal/models"
)

func roomsClientFor(t *testing.T, handler func(req graphQLRequest) string) (*RoomsClient, *[]graphQLRequest) {
	t.Helper()
	var requests []graphQLRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(handler(req)))
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewRoomsClient(server.URL, 0, logger), &requests
}

func TestRoomsDecodesCatalog(t *testing.T) {
	client, _ := roomsClientFor(t, func(req graphQLRequest) string {
		return `{"data": {"habitaciones": [{"idHabitacion": "HAB-101", "nombreHabitacion": "Suite", "idHotel": 1, "idCiudad": 10, "idTipoHabitacion": 1, "precioNormalHabitacion": 300, "precioActualHabitacion": 250, "capacidadHabitacion": 4, "estadoHabitacion": true, "estadoActivoHabitacion": true}]}}`
	})

	rooms, err := client.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "HAB-101", rooms[0].ID)
	assert.Equal(t, 250.0, rooms[0].CurrentPrice)
	assert.True(t, rooms[0].Available)
}

func TestRoomByIDNotFound(t *testing.T) {
	client, _ := roomsClientFor(t, func(req graphQLRequest) string {
		return `{"data": {"habitacionById": null}}`
	})

	_, err := client.RoomByID(context.Background(), "HAB-999")
	assert.ErrorIs(t, err, models.ErrRoomNotFound)
}

func TestGraphQLEnvelopeErrorsSurface(t *testing.T) {
	client, _ := roomsClientFor(t, func(req graphQLRequest) string {
		return `{"errors": [{"message": "Cannot query field habitaciones"}]}`
	})

	_, err := client.Rooms(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot query field habitaciones")
}

func TestGraphQLNilDataFailsLoudly(t *testing.T) {
	client, _ := roomsClientFor(t, func(req graphQLRequest) string {
		return `{}`
	})

	_, err := client.Rooms(context.Background())
	var shapeErr *models.UpstreamShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "data", shapeErr.Field)
}

func TestRoomSummariesFlattensAndDefaults(t *testing.T) {
	client, _ := roomsClientFor(t, func(req graphQLRequest) string {
		return `{"data": {"habitaciones": [
			{"idHabitacion": "HAB-101", "nombreHabitacion": "Suite", "hotel": {"nombreHotel": "Hotel Andino", "ciudad": {"nombreCiudad": "Cuenca"}}, "imagenes": [{"urlImagenHabitacion": "https://img/101.jpg"}]},
			{"idHabitacion": "HAB-102", "nombreHabitacion": "", "hotel": null, "imagenes": []}
		]}}`
	})

	summaries, err := client.RoomSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Suite", summaries[0].Name)
	assert.Equal(t, "Hotel Andino", summaries[0].Hotel)
	assert.Equal(t, "Cuenca", summaries[0].City)
	assert.Equal(t, "https://img/101.jpg", summaries[0].Image)

	// Missing name falls back to the id, missing image to the placeholder.
	assert.Equal(t, "HAB-102", summaries[1].Name)
	assert.Equal(t, models.DefaultRoomImage, summaries[1].Image)
	assert.Empty(t, summaries[1].Hotel)
}

func TestUpdateRoomSendsVariables(t *testing.T) {
	client, requests := roomsClientFor(t, func(req graphQLRequest) string {
		return `{"data": {"updateHabitacion": {"idHabitacion": "HAB-101", "estadoHabitacion": false}}}`
	})

	err := client.UpdateRoom(context.Background(), models.RoomInput{
		ID:           "HAB-101",
		Name:         "Suite",
		HotelID:      1,
		CityID:       10,
		TypeID:       1,
		NormalPrice:  300,
		CurrentPrice: 250,
		Capacity:     4,
		Available:    false,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	sent := (*requests)[0]
	assert.Contains(t, sent.Query, "updateHabitacion")
	assert.Equal(t, "HAB-101", sent.Variables["id"])

	input, ok := sent.Variables["input"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Suite", input["nombreHabitacion"])
	assert.Equal(t, false, input["estadoHabitacion"])
}
