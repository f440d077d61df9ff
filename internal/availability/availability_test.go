package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelandino/booking-bff/internal/models"
)

type stubSource struct {
	reservations []models.Reservation
	links        []models.ReservationLink
	dates        []string
	err          error
}

func (s *stubSource) Reservations(ctx context.Context) ([]models.Reservation, error) {
	return s.reservations, s.err
}

func (s *stubSource) Links(ctx context.Context) ([]models.ReservationLink, error) {
	return s.links, s.err
}

func (s *stubSource) OccupiedDates(ctx context.Context, roomID string) ([]string, error) {
	return s.dates, s.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestOccupiedRoomsOverlap(t *testing.T) {
	source := &stubSource{
		reservations: []models.Reservation{
			{ID: 1, StartDate: "2026-03-10", EndDate: "2026-03-15", State: models.ReservationStateConfirmed},
		},
		links: []models.ReservationLink{
			{ReservationID: 1, RoomID: "HAB-101", Active: true},
		},
	}
	resolver := NewResolver(source, quietLogger())

	tests := []struct {
		name     string
		start    string
		end      string
		occupied bool
	}{
		{"inside the stay", "2026-03-11", "2026-03-13", true},
		{"straddles the start", "2026-03-08", "2026-03-11", true},
		{"straddles the end", "2026-03-14", "2026-03-18", true},
		{"covers the stay", "2026-03-01", "2026-03-31", true},
		{"ends on check-in day", "2026-03-05", "2026-03-10", false},
		{"starts on check-out day", "2026-03-15", "2026-03-20", false},
		{"entirely before", "2026-03-01", "2026-03-05", false},
		{"entirely after", "2026-03-20", "2026-03-25", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occupied, err := resolver.OccupiedRooms(context.Background(), tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.occupied, occupied["HAB-101"])
		})
	}
}

func TestOccupiedRoomsSkipsCancelledReservations(t *testing.T) {
	source := &stubSource{
		reservations: []models.Reservation{
			{ID: 1, StartDate: "2026-03-10", EndDate: "2026-03-15", State: models.ReservationStateCancelled},
			{ID: 2, StartDate: "2026-03-10", EndDate: "2026-03-15", State: models.ReservationStateConfirmed},
		},
		links: []models.ReservationLink{
			{ReservationID: 1, RoomID: "HAB-101", Active: true},
			{ReservationID: 2, RoomID: "HAB-102", Active: true},
		},
	}
	resolver := NewResolver(source, quietLogger())

	occupied, err := resolver.OccupiedRooms(context.Background(), "2026-03-11", "2026-03-12")
	require.NoError(t, err)
	assert.False(t, occupied["HAB-101"])
	assert.True(t, occupied["HAB-102"])
}

func TestOccupiedRoomsSkipsInactiveLinks(t *testing.T) {
	source := &stubSource{
		reservations: []models.Reservation{
			{ID: 1, StartDate: "2026-03-10", EndDate: "2026-03-15", State: models.ReservationStatePreReserve},
		},
		links: []models.ReservationLink{
			{ReservationID: 1, RoomID: "HAB-101", Active: false},
		},
	}
	resolver := NewResolver(source, quietLogger())

	occupied, err := resolver.OccupiedRooms(context.Background(), "2026-03-11", "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, occupied)
}

func TestOccupiedRoomsInvalidDates(t *testing.T) {
	resolver := NewResolver(&stubSource{}, quietLogger())
	_, err := resolver.OccupiedRooms(context.Background(), "not-a-date", "2026-03-12")
	assert.Error(t, err)
}

func TestOccupiedRoomsFetchFailure(t *testing.T) {
	resolver := NewResolver(&stubSource{err: errors.New("bridge down")}, quietLogger())
	_, err := resolver.OccupiedRooms(context.Background(), "2026-03-11", "2026-03-12")
	assert.Error(t, err)
}

func TestOccupiedDatesDegradesToEmpty(t *testing.T) {
	resolver := NewResolver(&stubSource{err: errors.New("bridge down")}, quietLogger())
	dates := resolver.OccupiedDates(context.Background(), "HAB-101")
	assert.NotNil(t, dates)
	assert.Empty(t, dates)
}

func TestOccupiedDatesPassThrough(t *testing.T) {
	resolver := NewResolver(&stubSource{dates: []string{"2026-03-10", "2026-03-11"}}, quietLogger())
	dates := resolver.OccupiedDates(context.Background(), "HAB-101")
	assert.Equal(t, []string{"2026-03-10", "2026-03-11"}, dates)
}
