// Package ledger persists client-owned hold records: reservation attempts
// that only this service knows about until the remote booking is confirmed.
// It is the one piece of state the BFF owns end-to-end.
package ledger

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/clock"
	"github.com/hotelandino/booking-bff/internal/models"
)

// Ledger wraps a Store with hold lifecycle rules: expiry sweeping on read,
// status transitions, and invoice flags.
type Ledger struct {
	store  Store
	clock  clock.Clock
	logger *logrus.Logger
}

// New creates a ledger over the given store.
func New(store Store, clk clock.Clock, logger *logrus.Logger) *Ledger {
	return &Ledger{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Save persists a new hold record.
func (l *Ledger) Save(hold models.Hold) error {
	if err := l.store.Put(hold); err != nil {
		return fmt.Errorf("failed to save hold: %w", err)
	}
	return nil
}

// Get returns a single hold by its synthetic id.
func (l *Ledger) Get(id string) (*models.Hold, error) {
	return l.store.Get(id)
}

// GetByHoldID returns the hold carrying the given server-assigned hold id.
func (l *Ledger) GetByHoldID(holdID string) (*models.Hold, error) {
	holds, err := l.store.List()
	if err != nil {
		return nil, err
	}
	for i := range holds {
		if holds[i].HoldID == holdID {
			return &holds[i], nil
		}
	}
	return nil, models.ErrHoldNotFound
}

// List returns every hold after sweeping expired ones.
func (l *Ledger) List() ([]models.Hold, error) {
	if err := l.sweepExpired(); err != nil {
		return nil, err
	}
	return l.store.List()
}

// ListForUser returns the user's holds, newest first, after sweeping
// expired ones.
func (l *Ledger) ListForUser(userID int) ([]models.Hold, error) {
	holds, err := l.List()
	if err != nil {
		return nil, err
	}

	out := make([]models.Hold, 0, len(holds))
	for _, h := range holds {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus transitions a hold identified by its server hold id. A
// non-zero serverReservationID is recorded alongside the new status.
func (l *Ledger) UpdateStatus(holdID string, status models.HoldStatus, serverReservationID int) error {
	hold, err := l.GetByHoldID(holdID)
	if err != nil {
		return err
	}

	hold.Status = status
	if serverReservationID != 0 {
		hold.ServerReservationID = serverReservationID
	}
	if err := l.store.Put(*hold); err != nil {
		return fmt.Errorf("failed to update hold %s: %w", holdID, err)
	}
	return nil
}

// Remove deletes a hold by its server hold id. Removing an unknown hold is
// not an error.
func (l *Ledger) Remove(holdID string) error {
	hold, err := l.GetByHoldID(holdID)
	if err != nil {
		if err == models.ErrHoldNotFound {
			return nil
		}
		return err
	}
	return l.store.Delete(hold.ID)
}

// MarkInvoiced flags the hold linked to the given server reservation id as
// invoiced, recording the document URL when known.
func (l *Ledger) MarkInvoiced(reservationID int, url string) error {
	holds, err := l.store.List()
	if err != nil {
		return err
	}
	for i := range holds {
		if holds[i].ServerReservationID == reservationID {
			holds[i].InvoiceIssued = true
			if url != "" {
				holds[i].InvoiceURL = url
			}
			return l.store.Put(holds[i])
		}
	}
	return models.ErrHoldNotFound
}

// sweepExpired rewrites PENDING holds whose expiry has passed to EXPIRED.
// The scan is idempotent: already-EXPIRED records are left untouched, so
// repeated reads observe the same state.
func (l *Ledger) sweepExpired() error {
	holds, err := l.store.List()
	if err != nil {
		return err
	}

	now := l.clock.Now()
	for _, h := range holds {
		if h.Status != models.HoldStatusPending || !h.ExpiresAt.Before(now) {
			continue
		}
		h.Status = models.HoldStatusExpired
		if err := l.store.Put(h); err != nil {
			return fmt.Errorf("failed to expire hold %s: %w", h.HoldID, err)
		}
		l.logger.WithFields(logrus.Fields{
			"hold_id":    h.HoldID,
			"expired_at": h.ExpiresAt,
		}).Info("Hold expired")
	}
	return nil
}
