// Package orchestrator drives the booking lifecycle: hold, pay, confirm,
// record. It owns the coordination rules between the local hold ledger and
// the remote services; it never talks HTTP itself.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hotelandino/booking-bff/internal/clock"
	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/ledger"
	"github.com/hotelandino/booking-bff/internal/models"
	"github.com/hotelandino/booking-bff/internal/session"
)

// BookingGateway is the slice of the users/payments client the orchestrator
// drives.
type BookingGateway interface {
	CreateHold(ctx context.Context, req gateway.HoldRequest) (*gateway.HoldGrant, error)
	ConfirmReservation(ctx context.Context, req gateway.ConfirmRequest) (int, error)
	CancelHold(ctx context.Context, holdID string) error
	Hold(ctx context.Context, holdID string) (*gateway.HoldInfo, error)
	Payments(ctx context.Context) ([]models.Payment, error)
	Invoices(ctx context.Context) ([]models.Invoice, error)
	InvoicePDFs(ctx context.Context) ([]models.InvoicePDF, error)
	RegisterInternalPayment(ctx context.Context, input models.RegisterPaymentInput) error
	IssueInvoice(ctx context.Context, input models.IssueInvoiceInput) error
}

// Bank settles a booking amount between the fixed accounts.
type Bank interface {
	Pay(ctx context.Context, amount float64) (*models.TransferResult, error)
}

// ReservationReader provides the bulk reservation data for display joins.
type ReservationReader interface {
	Reservations(ctx context.Context) ([]models.Reservation, error)
	Links(ctx context.Context) ([]models.ReservationLink, error)
}

// RoomReader provides denormalized room projections for display joins.
type RoomReader interface {
	RoomSummaries(ctx context.Context) ([]gateway.RoomSummary, error)
}

// Config carries the orchestration constants.
type Config struct {
	// RequestedHoldSeconds is the hold duration asked of the server.
	RequestedHoldSeconds int
	// DefaultHoldSeconds applies when the server omits the granted duration.
	DefaultHoldSeconds int
	// CustomerAccount and HotelAccount label recorded payments.
	CustomerAccount string
	HotelAccount    string
}

// Orchestrator coordinates holds, payments and confirmations.
type Orchestrator struct {
	bookings     BookingGateway
	bank         Bank
	reservations ReservationReader
	rooms        RoomReader
	ledger       *ledger.Ledger
	clock        clock.Clock
	logger       *logrus.Logger
	cfg          Config
}

// New creates an orchestrator.
func New(
	bookings BookingGateway,
	bank Bank,
	reservations ReservationReader,
	rooms RoomReader,
	ldg *ledger.Ledger,
	clk clock.Clock,
	logger *logrus.Logger,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		bookings:     bookings,
		bank:         bank,
		reservations: reservations,
		rooms:        rooms,
		ledger:       ldg,
		clock:        clk,
		logger:       logger,
		cfg:          cfg,
	}
}

// CreateHold requests a pre-reserve from the booking service and records the
// granted hold locally. The expiry is fixed at creation from the server's
// granted duration and never extended. On remote failure nothing is
// persisted and the error surfaces unchanged.
func (o *Orchestrator) CreateHold(ctx context.Context, sess session.Context, input models.CreateHoldInput) (*models.Hold, error) {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	grant, err := o.bookings.CreateHold(ctx, gateway.HoldRequest{
		RoomID:           input.RoomID,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Guests:           input.Guests,
		RequestedSeconds: o.cfg.RequestedHoldSeconds,
		UserID:           sess.UserID,
	})
	if err != nil {
		return nil, err
	}

	seconds := grant.Seconds
	if seconds <= 0 {
		seconds = o.cfg.DefaultHoldSeconds
	}

	now := o.clock.Now()
	hold := models.Hold{
		ID:         uuid.NewString(),
		HoldID:     grant.HoldID,
		RoomID:     input.RoomID,
		RoomName:   input.RoomName,
		HotelName:  input.HotelName,
		CityName:   input.CityName,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Guests:     input.Guests,
		TotalPrice: input.TotalPrice,
		Status:     models.HoldStatusPending,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(seconds) * time.Second),
		UserID:     sess.UserID,
		Image:      input.Image,
	}
	if err := o.ledger.Save(hold); err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"hold_id":    hold.HoldID,
		"room_id":    hold.RoomID,
		"user_id":    hold.UserID,
		"expires_at": hold.ExpiresAt,
	}).Info("Hold created")

	return &hold, nil
}

func (o *Orchestrator) pendingHold(sess session.Context, holdID string) (*models.Hold, error) {
	hold, err := o.ledger.GetByHoldID(holdID)
	if err != nil {
		return nil, err
	}
	if hold.UserID != sess.UserID && !sess.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if hold.Status == models.HoldStatusPending && hold.ExpiresAt.Before(o.clock.Now()) {
		if err := o.ledger.UpdateStatus(holdID, models.HoldStatusExpired, 0); err != nil {
			return nil, err
		}
		return nil, models.ErrHoldExpired
	}
	if hold.Status != models.HoldStatusPending {
		return nil, models.ErrHoldNotPending
	}
	return hold, nil
}

// Confirm runs the three-step settlement pipeline for a pending hold:
// bank transfer, remote confirmation, payment record. The first two steps
// failing leave the hold PENDING; a transfer is never compensated because
// the bank exposes no reversal. A failed payment record does not undo the
// confirmation: the outcome is tagged payment-pending instead.
func (o *Orchestrator) Confirm(ctx context.Context, sess session.Context, holdID string) (*models.ConfirmOutcome, error) {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	hold, err := o.pendingHold(sess, holdID)
	if err != nil {
		return nil, err
	}

	if _, err := o.bank.Pay(ctx, hold.TotalPrice); err != nil {
		return nil, err
	}

	reservationID, err := o.bookings.ConfirmReservation(ctx, gateway.ConfirmRequest{
		RoomID:       hold.RoomID,
		HoldID:       hold.HoldID,
		FirstName:    sess.FirstName,
		LastName:     sess.LastName,
		Email:        sess.Email,
		DocumentType: sess.DocumentType,
		Document:     sess.Document,
		StartDate:    hold.StartDate,
		EndDate:      hold.EndDate,
		Guests:       hold.Guests,
	})
	if err != nil {
		o.logger.WithError(err).WithField("hold_id", holdID).Error("Confirmation failed after bank transfer")
		return nil, err
	}
	if reservationID == 0 {
		reservationID = hold.ServerReservationID
	}

	if err := o.ledger.UpdateStatus(holdID, models.HoldStatusConfirmed, reservationID); err != nil {
		return nil, err
	}

	err = o.bookings.RegisterInternalPayment(ctx, models.RegisterPaymentInput{
		ReservationID:      reservationID,
		UserID:             sess.UserID,
		Amount:             hold.TotalPrice,
		SourceAccount:      o.cfg.CustomerAccount,
		DestinationAccount: o.cfg.HotelAccount,
	})
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"hold_id":        holdID,
			"reservation_id": reservationID,
		}).Warn("Reservation confirmed but payment record failed")
		return &models.ConfirmOutcome{
			Status:        models.ConfirmOutcomePaymentPending,
			ReservationID: reservationID,
			Message:       "Reserva confirmada; el registro del pago queda pendiente",
		}, nil
	}

	o.logger.WithFields(logrus.Fields{
		"hold_id":        holdID,
		"reservation_id": reservationID,
	}).Info("Reservation confirmed")

	return &models.ConfirmOutcome{
		Status:        models.ConfirmOutcomeConfirmed,
		ReservationID: reservationID,
		Message:       "Reserva confirmada correctamente",
	}, nil
}

// HoldStatus returns the local hold record together with the server-side
// state of the hold. The remote lookup degrades to nil when the booking
// service is unreachable; the local record is authoritative for display.
func (o *Orchestrator) HoldStatus(ctx context.Context, sess session.Context, holdID string) (*models.Hold, *gateway.HoldInfo, error) {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	hold, err := o.ledger.GetByHoldID(holdID)
	if err != nil {
		return nil, nil, err
	}
	if hold.UserID != sess.UserID && !sess.IsAdmin() {
		return nil, nil, models.ErrForbidden
	}
	if hold.Status == models.HoldStatusPending && hold.ExpiresAt.Before(o.clock.Now()) {
		if err := o.ledger.UpdateStatus(holdID, models.HoldStatusExpired, 0); err != nil {
			return nil, nil, err
		}
		hold.Status = models.HoldStatusExpired
	}

	remote, err := o.bookings.Hold(ctx, holdID)
	if err != nil {
		o.logger.WithError(err).WithField("hold_id", holdID).Warn("Remote hold lookup failed")
		remote = nil
	}
	return hold, remote, nil
}

// Cancel releases a hold. The local record is marked CANCELLED even when the
// remote release fails: the ledger reflects the user's intent and the remote
// hold lapses on its own expiry anyway.
func (o *Orchestrator) Cancel(ctx context.Context, sess session.Context, holdID string) error {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	hold, err := o.ledger.GetByHoldID(holdID)
	if err != nil {
		return err
	}
	if hold.UserID != sess.UserID && !sess.IsAdmin() {
		return models.ErrForbidden
	}

	if err := o.bookings.CancelHold(ctx, holdID); err != nil {
		o.logger.WithError(err).WithField("hold_id", holdID).Warn("Remote hold release failed, cancelling locally")
	}
	return o.ledger.UpdateStatus(holdID, models.HoldStatusCancelled, 0)
}

func localDisplay(h models.Hold) models.ReservationDisplay {
	image := h.Image
	if image == "" {
		image = models.DefaultRoomImage
	}
	return models.ReservationDisplay{
		ReservationID: h.ServerReservationID,
		UserID:        h.UserID,
		RoomID:        h.RoomID,
		HoldID:        h.HoldID,
		RoomName:      h.RoomName,
		Hotel:         h.HotelName,
		City:          h.CityName,
		StartDate:     h.StartDate,
		EndDate:       h.EndDate,
		Guests:        h.Guests,
		State:         string(h.Status),
		Subtotal:      h.TotalPrice,
		Total:         h.TotalPrice,
		Image:         image,
	}
}

func (o *Orchestrator) localOnlyDisplays(userID int) ([]models.ReservationDisplay, error) {
	holds, err := o.ledger.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ReservationDisplay, 0, len(holds))
	for _, h := range holds {
		out = append(out, localDisplay(h))
	}
	return out, nil
}

// MyReservations merges the user's remote reservations with the local
// pending holds into one newest-first list. When any remote leg fails the
// listing degrades to the local ledger alone.
func (o *Orchestrator) MyReservations(ctx context.Context, sess session.Context) ([]models.ReservationDisplay, error) {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	var (
		reservations []models.Reservation
		links        []models.ReservationLink
		rooms        []gateway.RoomSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = o.reservations.Reservations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = o.reservations.Links(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = o.rooms.RoomSummaries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		o.logger.WithError(err).Warn("Remote reservation fetch failed, serving local holds only")
		return o.localOnlyDisplays(sess.UserID)
	}

	roomsByID := make(map[string]gateway.RoomSummary, len(rooms))
	for _, r := range rooms {
		roomsByID[r.ID] = r
	}
	roomByReservation := make(map[int]string, len(links))
	for _, l := range links {
		roomByReservation[l.ReservationID] = l.RoomID
	}

	displays := make([]models.ReservationDisplay, 0, len(reservations))
	for _, res := range reservations {
		if res.UserID != sess.UserID {
			continue
		}

		roomID := roomByReservation[res.ID]
		room := roomsByID[roomID]

		name := room.Name
		if name == "" {
			name = roomID
		}
		if name == "" {
			name = fmt.Sprintf("Reserva #%d", res.ID)
		}
		image := room.Image
		if image == "" {
			image = models.DefaultRoomImage
		}
		state := res.State
		if state == "" {
			state = string(models.HoldStatusConfirmed)
		}

		displays = append(displays, models.ReservationDisplay{
			ReservationID: res.ID,
			UserID:        res.UserID,
			RoomID:        roomID,
			RoomName:      name,
			Hotel:         room.Hotel,
			City:          room.City,
			StartDate:     res.StartDate,
			EndDate:       res.EndDate,
			Guests:        1,
			State:         state,
			Subtotal:      res.TotalCost,
			Total:         res.TotalCost,
			Image:         image,
			RegisteredAt:  res.RegisteredAt,
		})
	}

	holds, err := o.ledger.ListForUser(sess.UserID)
	if err != nil {
		return nil, err
	}
	for _, h := range holds {
		if h.Status == models.HoldStatusPending {
			displays = append(displays, localDisplay(h))
		}
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ReservationID > displays[j].ReservationID
	})
	return displays, nil
}

// syntheticInvoiceID marks a payment whose invoice was issued through this
// service but has not shown up on the remote invoice list yet.
const syntheticInvoiceID = 99999

// unknownPaymentDate labels payments whose issue date could not be parsed;
// they sort after every dated record.
const unknownPaymentDate = "Fecha no disponible"

func paymentDate(issuedAt string) string {
	if strings.Contains(issuedAt, "-") && len(issuedAt) >= 10 {
		return issuedAt[:10]
	}
	return unknownPaymentDate
}

// MyPayments joins the remote payment, invoice and PDF lists for the user
// and fills the eventual-consistency gap: a locally CONFIRMED reservation
// missing from the remote payment list shows up as a synthesized paid
// record with id 0. Each remote leg degrades to empty on failure.
func (o *Orchestrator) MyPayments(ctx context.Context, sess session.Context) ([]models.PaymentDisplay, error) {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	var (
		payments []models.Payment
		invoices []models.Invoice
		pdfs     []models.InvoicePDF
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := o.bookings.Payments(gctx)
		if err != nil {
			o.logger.WithError(err).Warn("Payment list unavailable")
			return nil
		}
		payments = list
		return nil
	})
	g.Go(func() error {
		list, err := o.bookings.Invoices(gctx)
		if err != nil {
			o.logger.WithError(err).Warn("Invoice list unavailable")
			return nil
		}
		invoices = list
		return nil
	})
	g.Go(func() error {
		list, err := o.bookings.InvoicePDFs(gctx)
		if err != nil {
			o.logger.WithError(err).Warn("Invoice pdf list unavailable")
			return nil
		}
		pdfs = list
		return nil
	})
	_ = g.Wait()

	invoicesByID := make(map[int]models.Invoice, len(invoices))
	for _, inv := range invoices {
		invoicesByID[inv.ID] = inv
	}
	pdfsByInvoice := make(map[int]models.InvoicePDF, len(pdfs))
	for _, pdf := range pdfs {
		if pdf.InvoiceID != 0 {
			pdfsByInvoice[pdf.InvoiceID] = pdf
		}
	}

	displays := make([]models.PaymentDisplay, 0, len(payments))
	for _, p := range payments {
		if p.UserID != sess.UserID {
			continue
		}

		state := "Pendiente"
		if p.Paid {
			state = "Pagado"
		}
		d := models.PaymentDisplay{
			ID:                 p.ID,
			ReservationID:      p.ReservationID,
			InvoiceID:          p.InvoiceID,
			Amount:             p.Amount,
			Date:               paymentDate(p.IssuedAt),
			State:              state,
			SourceAccount:      p.SourceAccount,
			DestinationAccount: p.DestinationAccount,
			Method:             p.MethodID,
		}
		if inv, ok := invoicesByID[p.InvoiceID]; ok {
			invCopy := inv
			d.Invoice = &invCopy
		}
		if pdf, ok := pdfsByInvoice[p.InvoiceID]; ok {
			d.PDFReady = pdf.Ready
			d.PDFURL = pdf.URL
		}
		displays = append(displays, d)
	}

	holds, err := o.ledger.ListForUser(sess.UserID)
	if err != nil {
		return nil, err
	}
	for _, h := range holds {
		if h.Status != models.HoldStatusConfirmed {
			continue
		}

		existing := -1
		for i := range displays {
			if displays[i].ReservationID == h.ServerReservationID {
				existing = i
				break
			}
		}
		if existing >= 0 {
			if h.InvoiceIssued {
				displays[existing].InvoiceID = syntheticInvoiceID
				displays[existing].PDFReady = true
				if h.InvoiceURL != "" {
					displays[existing].PDFURL = h.InvoiceURL
				}
			}
			continue
		}

		invoiceID := 0
		if h.InvoiceIssued {
			invoiceID = syntheticInvoiceID
		}
		displays = append(displays, models.PaymentDisplay{
			ID:                 0,
			ReservationID:      h.ServerReservationID,
			InvoiceID:          invoiceID,
			Amount:             h.TotalPrice,
			Date:               h.CreatedAt.Format("2006-01-02"),
			State:              "Pagado",
			SourceAccount:      "Pago en línea",
			DestinationAccount: "Hotel Andino",
			Method:             1,
			PDFReady:           h.InvoiceIssued,
			PDFURL:             h.InvoiceURL,
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		di, dj := displays[i].Date, displays[j].Date
		if (di == unknownPaymentDate) != (dj == unknownPaymentDate) {
			return dj == unknownPaymentDate
		}
		return di > dj
	})
	return displays, nil
}

// EmitInvoice asks the booking service to issue an invoice for a confirmed
// reservation and flags the matching local hold.
func (o *Orchestrator) EmitInvoice(ctx context.Context, sess session.Context, reservationID int) error {
	ctx = gateway.WithBearer(ctx, sess.UpstreamToken)
	err := o.bookings.IssueInvoice(ctx, models.IssueInvoiceInput{
		ReservationID: reservationID,
		FirstName:     sess.FirstName,
		LastName:      sess.LastName,
		Email:         sess.Email,
		DocumentType:  sess.DocumentType,
		Document:      sess.Document,
	})
	if err != nil {
		return err
	}

	if err := o.ledger.MarkInvoiced(reservationID, ""); err != nil && err != models.ErrHoldNotFound {
		return err
	}

	o.logger.WithFields(logrus.Fields{
		"reservation_id": reservationID,
		"user_id":        sess.UserID,
	}).Info("Invoice issued")
	return nil
}
