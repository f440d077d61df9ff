package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelandino/booking-bff/internal/models"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func fixtureRooms() []models.Room {
	return []models.Room{
		{ID: "HAB-101", Name: "Suite Presidencial", HotelID: 1, CityID: 10, TypeID: 1, CurrentPrice: 250, Capacity: 4},
		{ID: "HAB-102", Name: "Doble Estándar", HotelID: 1, CityID: 10, TypeID: 2, CurrentPrice: 80, Capacity: 2},
		{ID: "HAB-201", Name: "Suite Junior", HotelID: 2, CityID: 20, TypeID: 1, CurrentPrice: 150, Capacity: 3},
	}
}

func fixtureTypes() []models.RoomType {
	return []models.RoomType{
		{ID: 1, Name: "Suite", Description: "Amplia y con sala"},
		{ID: 2, Name: "Doble", Description: "Dos camas"},
	}
}

func fixtureCatalog() ([]models.Amenity, []models.AmenityLink, []models.RoomImage, []models.Hotel, []models.City) {
	amenities := []models.Amenity{{ID: 1, Name: "WiFi"}, {ID: 2, Name: "Piscina"}}
	links := []models.AmenityLink{
		{RoomID: "HAB-101", AmenityID: 1},
		{RoomID: "HAB-101", AmenityID: 2},
		{RoomID: "HAB-102", AmenityID: 1},
	}
	images := []models.RoomImage{
		{ID: 1, RoomID: "HAB-101", URL: "https://img/101-a.jpg", Active: true},
		{ID: 2, RoomID: "HAB-101", URL: "https://img/101-b.jpg", Active: true},
		{ID: 3, RoomID: "HAB-102", URL: "https://img/102-inactive.jpg", Active: false},
	}
	hotels := []models.Hotel{{ID: 1, Name: "Hotel Andino"}, {ID: 2, Name: "Hotel del Río"}}
	cities := []models.City{{ID: 10, Name: "Cuenca"}, {ID: 20, Name: "Quito"}}
	return amenities, links, images, hotels, cities
}

func enrichAll(t *testing.T, filter models.RoomFilter) []models.RoomCard {
	t.Helper()
	amenities, links, images, hotels, cities := fixtureCatalog()
	return EnrichRooms(fixtureRooms(), fixtureTypes(), amenities, links, images, hotels, cities, filter)
}

func TestEnrichRoomsEmptyFilterKeepsAllRooms(t *testing.T) {
	cards := enrichAll(t, models.RoomFilter{})
	require.Len(t, cards, 3)

	first := cards[0]
	assert.Equal(t, "HAB-101", first.ID)
	assert.Equal(t, "Hotel Andino", first.Hotel)
	assert.Equal(t, "Cuenca", first.City)
	assert.Equal(t, "Suite", first.TypeName)
	assert.Equal(t, []string{"WiFi", "Piscina"}, first.Amenities)
	assert.Equal(t, "https://img/101-a.jpg", first.Image)
}

func TestEnrichRoomsPlaceholderWhenNoActiveImage(t *testing.T) {
	cards := enrichAll(t, models.RoomFilter{})
	// HAB-102 has only an inactive image, HAB-201 has none.
	assert.Equal(t, models.DefaultRoomImage, cards[1].Image)
	assert.Equal(t, models.DefaultRoomImage, cards[2].Image)
}

func TestEnrichRoomsTypeFilterIsCaseInsensitive(t *testing.T) {
	cards := enrichAll(t, models.RoomFilter{TypeName: strPtr("sUiTe")})
	require.Len(t, cards, 2)
	assert.Equal(t, "HAB-101", cards[0].ID)
	assert.Equal(t, "HAB-201", cards[1].ID)
}

func TestEnrichRoomsCapacityAndPriceBounds(t *testing.T) {
	cards := enrichAll(t, models.RoomFilter{Capacity: intPtr(3)})
	require.Len(t, cards, 2)

	cards = enrichAll(t, models.RoomFilter{PriceMin: floatPtr(100)})
	require.Len(t, cards, 2)

	cards = enrichAll(t, models.RoomFilter{PriceMax: floatPtr(100)})
	require.Len(t, cards, 1)
	assert.Equal(t, "HAB-102", cards[0].ID)
}

func TestEnrichRoomsFiltersCompose(t *testing.T) {
	combined := enrichAll(t, models.RoomFilter{
		TypeName: strPtr("Suite"),
		Capacity: intPtr(3),
		PriceMin: floatPtr(100),
		PriceMax: floatPtr(200),
	})

	// Applying the same filters one at a time must select the same rooms.
	survivors := map[string]bool{}
	for _, c := range enrichAll(t, models.RoomFilter{TypeName: strPtr("Suite")}) {
		survivors[c.ID] = true
	}
	for _, step := range []models.RoomFilter{
		{Capacity: intPtr(3)},
		{PriceMin: floatPtr(100)},
		{PriceMax: floatPtr(200)},
	} {
		keep := map[string]bool{}
		for _, c := range enrichAll(t, step) {
			if survivors[c.ID] {
				keep[c.ID] = true
			}
		}
		survivors = keep
	}

	require.Len(t, combined, len(survivors))
	for _, c := range combined {
		assert.True(t, survivors[c.ID])
	}
	require.Len(t, combined, 1)
	assert.Equal(t, "HAB-201", combined[0].ID)
}

func TestRoomDetailEnrichment(t *testing.T) {
	amenities, links, images, hotels, cities := fixtureCatalog()
	detail := RoomDetail(fixtureRooms()[0], fixtureTypes(), amenities, links, images, hotels, cities)

	assert.Equal(t, "Hotel Andino", detail.HotelName)
	assert.Equal(t, "Cuenca", detail.CityName)
	assert.Equal(t, "Suite", detail.TypeName)
	assert.Equal(t, []string{"WiFi", "Piscina"}, detail.Amenities)
	assert.Equal(t, []string{"https://img/101-a.jpg", "https://img/101-b.jpg"}, detail.Images)
}

func TestRoomDetailPlaceholderImage(t *testing.T) {
	amenities, links, images, hotels, cities := fixtureCatalog()
	detail := RoomDetail(fixtureRooms()[2], fixtureTypes(), amenities, links, images, hotels, cities)
	assert.Equal(t, []string{models.DefaultRoomImage}, detail.Images)
	assert.Empty(t, detail.Amenities)
}
