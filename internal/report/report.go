// Package report renders the signed-in user's bookings and payments as an
// XLSX workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hotelandino/booking-bff/internal/models"
)

const (
	reservationsSheet = "Reservas"
	paymentsSheet     = "Pagos"
)

var reservationHeaders = []string{
	"ID Reserva", "Habitación", "Hotel", "Ciudad", "Inicio", "Fin", "Huéspedes", "Estado", "Total",
}

var paymentHeaders = []string{
	"ID Pago", "ID Reserva", "Monto", "Fecha", "Estado", "Cuenta Origen", "Cuenta Destino", "Factura",
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func headerRow(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

// Write renders the workbook to w: one sheet of reservations, one of
// payments.
func Write(w io.Writer, reservations []models.ReservationDisplay, payments []models.PaymentDisplay) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", reservationsSheet)
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return fmt.Errorf("failed to create payments sheet: %w", err)
	}

	if err := writeRow(f, reservationsSheet, 1, headerRow(reservationHeaders)); err != nil {
		return fmt.Errorf("failed to write reservation headers: %w", err)
	}
	for i, r := range reservations {
		row := []interface{}{
			r.ReservationID, r.RoomName, r.Hotel, r.City, r.StartDate, r.EndDate, r.Guests, r.State, r.Total,
		}
		if err := writeRow(f, reservationsSheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write reservation row: %w", err)
		}
	}

	if err := writeRow(f, paymentsSheet, 1, headerRow(paymentHeaders)); err != nil {
		return fmt.Errorf("failed to write payment headers: %w", err)
	}
	for i, p := range payments {
		invoice := ""
		if p.InvoiceID != 0 {
			invoice = fmt.Sprintf("#%d", p.InvoiceID)
		}
		row := []interface{}{
			p.ID, p.ReservationID, p.Amount, p.Date, p.State, p.SourceAccount, p.DestinationAccount, invoice,
		}
		if err := writeRow(f, paymentsSheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write payment row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
