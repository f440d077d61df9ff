// Package availability resolves which rooms are taken for a date range by
// joining the reservation list against the room-reservation links.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hotelandino/booking-bff/internal/models"
)

// ReservationSource is the slice of the reservations gateway this resolver
// needs.
type ReservationSource interface {
	Reservations(ctx context.Context) ([]models.Reservation, error)
	Links(ctx context.Context) ([]models.ReservationLink, error)
	OccupiedDates(ctx context.Context, roomID string) ([]string, error)
}

// Resolver computes room occupancy from bulk reservation data.
type Resolver struct {
	source ReservationSource
	logger *logrus.Logger
}

// NewResolver creates an availability resolver.
func NewResolver(source ReservationSource, logger *logrus.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

type dateRange struct {
	start time.Time
	end   time.Time
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// OccupiedRooms returns the ids of rooms with a conflicting reservation in
// [start, end). Two bulk fetches are issued concurrently instead of one call
// per room. Cancelled reservations and inactive links never block a room.
func (r *Resolver) OccupiedRooms(ctx context.Context, startDate, endDate string) (map[string]bool, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	var reservations []models.Reservation
	var links []models.ReservationLink

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = r.source.Reservations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = r.source.Links(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch occupancy data: %w", err)
	}

	ranges := make(map[int]dateRange, len(reservations))
	for _, res := range reservations {
		if res.State == models.ReservationStateCancelled {
			continue
		}
		resStart, err := parseDate(res.StartDate)
		if err != nil {
			continue
		}
		resEnd, err := parseDate(res.EndDate)
		if err != nil {
			continue
		}
		ranges[res.ID] = dateRange{start: resStart, end: resEnd}
	}

	occupied := make(map[string]bool)
	for _, link := range links {
		if !link.Active {
			continue
		}
		rng, ok := ranges[link.ReservationID]
		if !ok {
			continue
		}
		// Half-open overlap: checkout day does not collide with check-in day.
		if !(end.Before(rng.start) || end.Equal(rng.start) || start.After(rng.end) || start.Equal(rng.end)) {
			occupied[link.RoomID] = true
		}
	}

	r.logger.WithFields(logrus.Fields{
		"start":    startDate,
		"end":      endDate,
		"occupied": len(occupied),
	}).Debug("Resolved occupied rooms")

	return occupied, nil
}

// OccupiedDates returns the blocked calendar dates for a single room. The
// backing endpoint bridges a gRPC service that is not always deployed; when
// it fails the calendar degrades to no blocked dates rather than an error.
func (r *Resolver) OccupiedDates(ctx context.Context, roomID string) []string {
	dates, err := r.source.OccupiedDates(ctx, roomID)
	if err != nil {
		r.logger.WithError(err).WithField("room_id", roomID).Warn("Occupied dates unavailable, returning none")
		return []string{}
	}
	if dates == nil {
		return []string{}
	}
	return dates
}
