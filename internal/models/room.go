package models

// DefaultRoomImage is shown when a room has no active image on file.
const DefaultRoomImage = "https://imageness3realdecuenca.s3.us-east-2.amazonaws.com/Imagen4.png"

// Room is the catalog record for a bookable room, sourced from the rooms
// GraphQL service. Immutable from this service's perspective.
type Room struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HotelID      int     `json:"hotel_id"`
	CityID       int     `json:"city_id"`
	TypeID       int     `json:"type_id"`
	NormalPrice  float64 `json:"normal_price"`
	CurrentPrice float64 `json:"current_price"`
	Capacity     int     `json:"capacity"`
	Available    bool    `json:"available"`
	Active       bool    `json:"active"`
}

// RoomType is a catalog lookup record.
type RoomType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Amenity is a catalog lookup record.
type Amenity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AmenityLink joins a room to one of its amenities.
type AmenityLink struct {
	RoomID    string `json:"room_id"`
	AmenityID int    `json:"amenity_id"`
}

// RoomImage is an image attached to a room; only active images are displayed.
type RoomImage struct {
	ID     int    `json:"id"`
	RoomID string `json:"room_id"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Hotel is a catalog lookup record.
type Hotel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// City is a catalog lookup record.
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is a catalog lookup record.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RoomCard is the denormalized listing record produced by the enrichment
// mapper: foreign keys replaced with human-readable labels.
type RoomCard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Hotel           string   `json:"hotel"`
	City            string   `json:"city"`
	Price           float64  `json:"price"`
	Image           string   `json:"image"`
	Amenities       []string `json:"amenities"`
	Capacity        int      `json:"capacity"`
	TypeName        string   `json:"type_name,omitempty"`
	TypeDescription string   `json:"type_description,omitempty"`
}

// RoomDetail is the enriched single-room view.
type RoomDetail struct {
	Room      Room     `json:"room"`
	HotelName string   `json:"hotel_name"`
	CityName  string   `json:"city_name"`
	TypeName  string   `json:"type_name"`
	Amenities []string `json:"amenities"`
	Images    []string `json:"images"`
}

// RoomFilter holds the optional listing filters. Nil fields are not applied.
type RoomFilter struct {
	TypeName *string  `json:"type_name,omitempty"`
	Capacity *int     `json:"capacity,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
}

// RoomInput is the admin create/update payload forwarded to the rooms
// GraphQL mutations.
type RoomInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" binding:"required"`
	HotelID      int     `json:"hotel_id"`
	CityID       int     `json:"city_id"`
	TypeID       int     `json:"type_id"`
	NormalPrice  float64 `json:"normal_price"`
	CurrentPrice float64 `json:"current_price"`
	Capacity     int     `json:"capacity"`
	Available    bool    `json:"available"`
	Active       bool    `json:"active"`
}
