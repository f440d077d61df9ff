package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogClientFor(t *testing.T, resource, body string) *CatalogClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/"+resource, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewCatalogClient(server.URL, 0, logger)
}

func TestAmenitiesBareArray(t *testing.T) {
	client := catalogClientFor(t, "Amenidades",
		`[{"idAmenidad": 1, "nombreAmenidad": "WiFi"}, {"idAmenidad": 2, "nombreAmenidad": "Piscina"}]`)

	amenities, err := client.Amenities(context.Background())
	require.NoError(t, err)
	require.Len(t, amenities, 2)
	assert.Equal(t, "WiFi", amenities[0].Name)
}

func TestRoomTypesValueEnvelope(t *testing.T) {
	client := catalogClientFor(t, "TiposHabitacion",
		`{"value": [{"idTipoHabitacion": 1, "nombreTipoHabitacion": "Suite", "descripcionTipoHabitacion": "Amplia"}]}`)

	types, err := client.RoomTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Suite", types[0].Name)
	assert.Equal(t, "Amplia", types[0].Description)
}

func TestCatalogRejectsUnknownEnvelope(t *testing.T) {
	client := catalogClientFor(t, "Hoteles", `{"hoteles": []}`)
	_, err := client.Hotels(context.Background())
	assert.Error(t, err)
}

func TestCountriesLowercaseResource(t *testing.T) {
	client := catalogClientFor(t, "paises", `[{"idPais": 1, "nombrePais": "Ecuador"}]`)
	countries, err := client.Countries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "Ecuador", countries[0].Name)
}
