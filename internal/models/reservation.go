package models

import "time"

// HoldStatus is the lifecycle state of a locally owned hold record.
type HoldStatus string

const (
	HoldStatusPending   HoldStatus = "PENDIENTE"
	HoldStatusConfirmed HoldStatus = "CONFIRMADA"
	HoldStatusCancelled HoldStatus = "CANCELADA"
	HoldStatusExpired   HoldStatus = "EXPIRADA"
)

// Remote reservation general states as reported by the reservations service.
const (
	ReservationStateCancelled  = "CANCELADO"
	ReservationStateConfirmed  = "CONFIRMADO"
	ReservationStatePreReserve = "PRE-RESERVA"
)

// Hold is a client-owned reservation intent persisted in the local ledger.
// Its expiry is derived from the server-reported hold duration at creation
// time and is never extended.
type Hold struct {
	ID                  string     `json:"id"`
	HoldID              string     `json:"hold_id"`
	ServerReservationID int        `json:"server_reservation_id,omitempty"`
	RoomID              string     `json:"room_id"`
	RoomName            string     `json:"room_name"`
	HotelName           string     `json:"hotel_name,omitempty"`
	CityName            string     `json:"city_name,omitempty"`
	StartDate           string     `json:"start_date"`
	EndDate             string     `json:"end_date"`
	Guests              int        `json:"guests"`
	TotalPrice          float64    `json:"total_price,omitempty"`
	Status              HoldStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	ExpiresAt           time.Time  `json:"expires_at"`
	UserID              int        `json:"user_id"`
	Image               string     `json:"image,omitempty"`
	InvoiceIssued       bool       `json:"invoice_issued,omitempty"`
	InvoiceURL          string     `json:"invoice_url,omitempty"`
}

// Reservation is the server-of-record booking. The client never mutates it
// directly; it only triggers remote transitions and reflects the result.
type Reservation struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	TotalCost    float64 `json:"total_cost"`
	RegisteredAt string  `json:"registered_at"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	State        string  `json:"state"`
	Active       bool    `json:"active"`
}

// ReservationLink joins a room to a reservation (habxres on the wire).
type ReservationLink struct {
	ID            int     `json:"id"`
	RoomID        string  `json:"room_id"`
	ReservationID int     `json:"reservation_id"`
	Capacity      int     `json:"capacity"`
	Cost          float64 `json:"cost"`
	Active        bool    `json:"active"`
}

// ReservationDisplay is the denormalized record served to the reservations
// view: remote bookings and local pending holds share this shape.
type ReservationDisplay struct {
	ReservationID int     `json:"reservation_id"`
	UserID        int     `json:"user_id"`
	RoomID        string  `json:"room_id,omitempty"`
	HoldID        string  `json:"hold_id,omitempty"`
	RoomName      string  `json:"room_name"`
	Hotel         string  `json:"hotel"`
	City          string  `json:"city"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Guests        int     `json:"guests"`
	State         string  `json:"state"`
	Subtotal      float64 `json:"subtotal"`
	Total         float64 `json:"total"`
	Image         string  `json:"image"`
	RegisteredAt  string  `json:"registered_at,omitempty"`
}

// CreateHoldInput is what the orchestrator needs to request a pre-reserve.
type CreateHoldInput struct {
	RoomID     string  `json:"room_id" binding:"required"`
	RoomName   string  `json:"room_name"`
	HotelName  string  `json:"hotel_name"`
	CityName   string  `json:"city_name"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Guests     int     `json:"guests" binding:"required"`
	TotalPrice float64 `json:"total_price"`
	Image      string  `json:"image"`
}

// ConfirmOutcomeStatus tags the two ways a confirm can succeed.
type ConfirmOutcomeStatus string

const (
	// ConfirmOutcomeConfirmed means all three steps completed.
	ConfirmOutcomeConfirmed ConfirmOutcomeStatus = "CONFIRMED"
	// ConfirmOutcomePaymentPending means the bank transfer and the remote
	// confirmation completed but the payment record could not be written.
	// The booking stands; the payment ledger is reconciled later.
	ConfirmOutcomePaymentPending ConfirmOutcomeStatus = "CONFIRMED_PAYMENT_PENDING"
)

// ConfirmOutcome is the tagged result of a confirm flow.
type ConfirmOutcome struct {
	Status        ConfirmOutcomeStatus `json:"status"`
	ReservationID int                  `json:"reservation_id"`
	Message       string               `json:"message"`
}
