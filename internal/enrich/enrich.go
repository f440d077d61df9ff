// Package enrich turns raw catalog collections into the denormalized room
// views the API serves. Everything here is a pure function over slices:
// no I/O, no clocks, same input same output.
package enrich

import (
	"strings"

	"github.com/hotelandino/booking-bff/internal/models"
)

type indexes struct {
	amenityNames map[int]string
	roomAmenity  map[string][]int
	types        map[int]models.RoomType
	activeImages map[string][]string
	hotelNames   map[int]string
	cityNames    map[int]string
}

func buildIndexes(
	types []models.RoomType,
	amenities []models.Amenity,
	links []models.AmenityLink,
	images []models.RoomImage,
	hotels []models.Hotel,
	cities []models.City,
) indexes {
	idx := indexes{
		amenityNames: make(map[int]string, len(amenities)),
		roomAmenity:  make(map[string][]int),
		types:        make(map[int]models.RoomType, len(types)),
		activeImages: make(map[string][]string),
		hotelNames:   make(map[int]string, len(hotels)),
		cityNames:    make(map[int]string, len(cities)),
	}
	for _, a := range amenities {
		idx.amenityNames[a.ID] = a.Name
	}
	for _, l := range links {
		idx.roomAmenity[l.RoomID] = append(idx.roomAmenity[l.RoomID], l.AmenityID)
	}
	for _, t := range types {
		idx.types[t.ID] = t
	}
	for _, img := range images {
		if img.Active && img.URL != "" {
			idx.activeImages[img.RoomID] = append(idx.activeImages[img.RoomID], img.URL)
		}
	}
	for _, h := range hotels {
		idx.hotelNames[h.ID] = h.Name
	}
	for _, c := range cities {
		idx.cityNames[c.ID] = c.Name
	}
	return idx
}

func (idx indexes) amenitiesFor(roomID string) []string {
	ids := idx.roomAmenity[roomID]
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := idx.amenityNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func matches(room models.Room, filter models.RoomFilter, idx indexes) bool {
	if filter.TypeName != nil {
		t, ok := idx.types[room.TypeID]
		if !ok || !strings.EqualFold(t.Name, *filter.TypeName) {
			return false
		}
	}
	if filter.Capacity != nil && room.Capacity < *filter.Capacity {
		return false
	}
	if filter.PriceMin != nil && room.CurrentPrice < *filter.PriceMin {
		return false
	}
	if filter.PriceMax != nil && room.CurrentPrice > *filter.PriceMax {
		return false
	}
	return true
}

// EnrichRooms maps rooms to listing cards, resolving foreign keys to names
// and applying the optional filter. Rooms keep their input order. A room
// with no active image gets the fixed placeholder.
func EnrichRooms(
	rooms []models.Room,
	types []models.RoomType,
	amenities []models.Amenity,
	links []models.AmenityLink,
	images []models.RoomImage,
	hotels []models.Hotel,
	cities []models.City,
	filter models.RoomFilter,
) []models.RoomCard {
	idx := buildIndexes(types, amenities, links, images, hotels, cities)

	cards := make([]models.RoomCard, 0, len(rooms))
	for _, room := range rooms {
		if !matches(room, filter, idx) {
			continue
		}

		image := models.DefaultRoomImage
		if imgs := idx.activeImages[room.ID]; len(imgs) > 0 {
			image = imgs[0]
		}

		card := models.RoomCard{
			ID:        room.ID,
			Name:      room.Name,
			Hotel:     idx.hotelNames[room.HotelID],
			City:      idx.cityNames[room.CityID],
			Price:     room.CurrentPrice,
			Image:     image,
			Amenities: idx.amenitiesFor(room.ID),
			Capacity:  room.Capacity,
		}
		if t, ok := idx.types[room.TypeID]; ok {
			card.TypeName = t.Name
			card.TypeDescription = t.Description
		}
		cards = append(cards, card)
	}
	return cards
}

// RoomDetail builds the enriched single-room view: amenity names and the
// active image list, with the placeholder substituted when no image is on
// file.
func RoomDetail(
	room models.Room,
	types []models.RoomType,
	amenities []models.Amenity,
	links []models.AmenityLink,
	images []models.RoomImage,
	hotels []models.Hotel,
	cities []models.City,
) models.RoomDetail {
	idx := buildIndexes(types, amenities, links, images, hotels, cities)

	imgs := idx.activeImages[room.ID]
	if len(imgs) == 0 {
		imgs = []string{models.DefaultRoomImage}
	}

	detail := models.RoomDetail{
		Room:      room,
		HotelName: idx.hotelNames[room.HotelID],
		CityName:  idx.cityNames[room.CityID],
		Amenities: idx.amenitiesFor(room.ID),
		Images:    imgs,
	}
	if t, ok := idx.types[room.TypeID]; ok {
		detail.TypeName = t.Name
	}
	return detail
}
