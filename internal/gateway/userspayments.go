package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/models"
)

// UsersPaymentsClient talks to the users/payments service (accounts, holds,
// payments, invoices) and to the API gateway's auth endpoint for the
// upstream bearer token.
type UsersPaymentsClient struct {
	baseURL    string
	gatewayURL string
	logger     *logrus.Logger
	client     *http.Client
}

// NewUsersPaymentsClient creates a client against the users/payments service
// base URL and the API gateway base URL.
func NewUsersPaymentsClient(baseURL, gatewayURL string, timeout time.Duration, logger *logrus.Logger) *UsersPaymentsClient {
	return &UsersPaymentsClient{
		baseURL:    baseURL,
		gatewayURL: gatewayURL,
		logger:     logger,
		client:     newHTTPClient(timeout),
	}
}

// ---------------------------------------------------------------- accounts

func decodeUser(obj map[string]json.RawMessage) (*models.User, error) {
	id, ok := pickInt(obj, "Id", "id")
	if !ok {
		return nil, &models.UpstreamShapeError{Service: "users", Field: "Id"}
	}

	role, ok := pickInt(obj, "IdRol", "idRol")
	if !ok {
		role = models.RoleGuest
	}

	return &models.User{
		ID:           id,
		Email:        pickString(obj, "Correo", "correo"),
		FirstName:    pickString(obj, "Nombre", "nombre"),
		LastName:     pickString(obj, "Apellido", "apellido"),
		Role:         role,
		DocumentType: pickString(obj, "TipoDocumento", "tipoDocumento"),
		Document:     pickString(obj, "Documento", "documento"),
		BirthDate:    pickString(obj, "FechaNacimiento", "fechaNacimiento"),
	}, nil
}

// Login authenticates against the users service and returns the profile.
// A 401 becomes models.ErrInvalidCredentials.
func (c *UsersPaymentsClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"Correo": email, "Password": password}

	var obj map[string]json.RawMessage
	err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/Usuarios/login", payload, &obj)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	return decodeUser(obj)
}

// UpstreamToken fetches the API gateway bearer token for proxied calls.
func (c *UsersPaymentsClient) UpstreamToken(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"Username": username, "Password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := doJSON(ctx, c.client, http.MethodPost, c.gatewayURL+"/Auth/token", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch upstream token: %w", err)
	}
	return resp.Token, nil
}

func registerPayload(id int, input models.RegisterInput) map[string]interface{} {
	return map[string]interface{}{
		"Id":              id,
		"IdRol":           models.RoleGuest,
		"Nombre":          input.FirstName,
		"Apellido":        input.LastName,
		"Correo":          input.Email,
		"Clave":           input.Password,
		"Estado":          true,
		"TipoDocumento":   input.DocumentType,
		"Documento":       input.Document,
		"FechaNacimiento": input.BirthDate,
	}
}

// Register creates a user account. Validation failures come back as
// StatusError; the handler maps them to user-facing messages.
func (c *UsersPaymentsClient) Register(ctx context.Context, input models.RegisterInput) error {
	err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/Usuarios", registerPayload(0, input), nil)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// UserByID fetches a user profile.
func (c *UsersPaymentsClient) UserByID(ctx context.Context, id int) (*models.User, error) {
	var obj map[string]json.RawMessage
	url := c.baseURL + "/Usuarios/" + strconv.Itoa(id)
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &obj); err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return decodeUser(obj)
}

// UpdateUser rewrites a user profile.
func (c *UsersPaymentsClient) UpdateUser(ctx context.Context, id int, input models.RegisterInput) error {
	url := c.baseURL + "/Usuarios/" + strconv.Itoa(id)
	if err := doJSON(ctx, c.client, http.MethodPut, url, registerPayload(id, input), nil); err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return nil
}

// ------------------------------------------------------------------- holds

// HoldRequest is the pre-reserve request forwarded to the special-functions
// endpoint.
type HoldRequest struct {
	RoomID           string
	StartDate        string
	EndDate          string
	Guests           int
	RequestedSeconds int
	UserID           int
}

// HoldGrant is the server's answer to a pre-reserve: the hold id and the
// granted duration. Seconds is zero when the server omitted it; the caller
// applies its default.
type HoldGrant struct {
	HoldID  string
	Seconds int
}

// CreateHold requests a pre-reserve hold on a room.
func (c *UsersPaymentsClient) CreateHold(ctx context.Context, req HoldRequest) (*HoldGrant, error) {
	payload := map[string]interface{}{
		"IdHabitacion":    req.RoomID,
		"FechaInicio":     req.StartDate,
		"FechaFin":        req.EndDate,
		"NumeroHuespedes": req.Guests,
		"DuracionHoldSeg": req.RequestedSeconds,
		"PrecioActual":    0,
		"IdUsuario":       req.UserID,
	}

	var obj map[string]json.RawMessage
	url := c.baseURL + "/funciones-especiales/prereserva"
	if err := doJSON(ctx, c.client, http.MethodPost, url, payload, &obj); err != nil {
		return nil, fmt.Errorf("failed to create hold: %w", err)
	}

	holdID := pickString(obj, "idHold", "IdHold")
	if holdID == "" {
		return nil, &models.UpstreamShapeError{Service: "users", Field: "idHold"}
	}
	seconds, _ := pickInt(obj, "tiempoHold", "TiempoHold")

	return &HoldGrant{HoldID: holdID, Seconds: seconds}, nil
}

// ConfirmRequest is the confirm payload for the special-functions endpoint.
type ConfirmRequest struct {
	RoomID       string
	HoldID       string
	FirstName    string
	LastName     string
	Email        string
	DocumentType string
	Document     string
	StartDate    string
	EndDate      string
	Guests       int
}

// ConfirmReservation promotes a hold into a reservation and returns the
// server-assigned reservation id. The id arrives at the top level or nested
// under data/reserva depending on the service version; zero means the server
// did not report one.
func (c *UsersPaymentsClient) ConfirmReservation(ctx context.Context, req ConfirmRequest) (int, error) {
	payload := map[string]interface{}{
		"IdHabitacion":    req.RoomID,
		"IdHold":          req.HoldID,
		"Nombre":          req.FirstName,
		"Apellido":        req.LastName,
		"Correo":          req.Email,
		"TipoDocumento":   req.DocumentType,
		"Documento":       req.Document,
		"FechaInicio":     req.StartDate,
		"FechaFin":        req.EndDate,
		"NumeroHuespedes": req.Guests,
	}

	var obj map[string]json.RawMessage
	url := c.baseURL + "/funciones-especiales/confirmar"
	if err := doJSON(ctx, c.client, http.MethodPost, url, payload, &obj); err != nil {
		return 0, fmt.Errorf("failed to confirm reservation: %w", err)
	}

	return extractReservationID(obj), nil
}

func extractReservationID(obj map[string]json.RawMessage) int {
	if id, ok := pickInt(obj, "idReserva", "IdReserva"); ok {
		return id
	}
	for _, key := range []string{"data", "reserva"} {
		raw, ok := pickRaw(obj, key)
		if !ok {
			continue
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err != nil {
			continue
		}
		if id, ok := pickInt(nested, "idReserva", "IdReserva"); ok {
			return id
		}
	}
	return 0
}

// CancelHold releases a pre-reserve hold.
func (c *UsersPaymentsClient) CancelHold(ctx context.Context, holdID string) error {
	url := c.baseURL + "/funciones-especiales/prereserva/" + holdID
	if err := doJSON(ctx, c.client, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to cancel hold %s: %w", holdID, err)
	}
	return nil
}

// HoldInfo is the server-side state of a hold.
type HoldInfo struct {
	HoldID        string `json:"hold_id"`
	RoomID        string `json:"room_id"`
	ReservationID int    `json:"reservation_id"`
	Seconds       int    `json:"seconds"`
	StartedAt     string `json:"started_at"`
	Active        bool   `json:"active"`
}

// Hold fetches the server-side state of a hold.
func (c *UsersPaymentsClient) Hold(ctx context.Context, holdID string) (*HoldInfo, error) {
	var obj map[string]json.RawMessage
	url := c.baseURL + "/funciones-especiales/prereserva/" + holdID
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &obj); err != nil {
		return nil, fmt.Errorf("failed to fetch hold %s: %w", holdID, err)
	}

	id := pickString(obj, "idHold", "IdHold")
	if id == "" {
		return nil, &models.UpstreamShapeError{Service: "users", Field: "idHold"}
	}
	reservationID, _ := pickInt(obj, "idReserva", "IdReserva")
	seconds, _ := pickInt(obj, "tiempoHold", "TiempoHold")

	return &HoldInfo{
		HoldID:        id,
		RoomID:        pickString(obj, "idHabitacion", "IdHabitacion"),
		ReservationID: reservationID,
		Seconds:       seconds,
		StartedAt:     pickString(obj, "fechaInicioHold", "FechaInicioHold"),
		Active:        pickBool(obj, true, "estadoHold", "EstadoHold"),
	}, nil
}

// ---------------------------------------------------------------- payments

type paymentDTO struct {
	ID                 int     `json:"IdPago"`
	ReservationID      int     `json:"IdReserva"`
	UserID             int     `json:"IdUnicoUsuario"`
	InvoiceID          int     `json:"IdFactura"`
	MethodID           int     `json:"IdMetodoPago"`
	Amount             float64 `json:"MontoTotalPago"`
	IssuedAt           string  `json:"FechaEmisionPago"`
	Paid               bool    `json:"EstadoPago"`
	SourceAccount      string  `json:"CuentaOrigenPago"`
	DestinationAccount string  `json:"CuentaDestinoPago"`
}

// Payments returns every payment record.
func (c *UsersPaymentsClient) Payments(ctx context.Context) ([]models.Payment, error) {
	var dtos []paymentDTO
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/Pagos", nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	out := make([]models.Payment, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Payment{
			ID:                 d.ID,
			ReservationID:      d.ReservationID,
			UserID:             d.UserID,
			InvoiceID:          d.InvoiceID,
			MethodID:           d.MethodID,
			Amount:             d.Amount,
			IssuedAt:           d.IssuedAt,
			Paid:               d.Paid,
			SourceAccount:      d.SourceAccount,
			DestinationAccount: d.DestinationAccount,
		})
	}
	return out, nil
}

type invoiceDTO struct {
	ID            int     `json:"IdFactura"`
	ReservationID int     `json:"IdReserva"`
	Subtotal      float64 `json:"SubtotalFactura"`
	Tax           float64 `json:"ImpuestoTotalFactura"`
	Discount      float64 `json:"DescuentoTotalFactura"`
	Email         string  `json:"EmailUsuario"`
	IssuedAt      string  `json:"FechaEmisionFactura"`
	Active        bool    `json:"EstadoFactura"`
}

// Invoices returns every invoice record.
func (c *UsersPaymentsClient) Invoices(ctx context.Context) ([]models.Invoice, error) {
	var dtos []invoiceDTO
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/Facturas", nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	out := make([]models.Invoice, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.Invoice{
			ID:            d.ID,
			ReservationID: d.ReservationID,
			Subtotal:      d.Subtotal,
			Tax:           d.Tax,
			Discount:      d.Discount,
			Email:         d.Email,
			IssuedAt:      d.IssuedAt,
			Active:        d.Active,
		})
	}
	return out, nil
}

type pdfDTO struct {
	InvoiceID int    `json:"IdFactura"`
	URL       string `json:"UrlPdf"`
	Ready     bool   `json:"EstadoPdf"`
}

// InvoicePDFs returns every rendered invoice document record.
func (c *UsersPaymentsClient) InvoicePDFs(ctx context.Context) ([]models.InvoicePDF, error) {
	var dtos []pdfDTO
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/Pdfs", nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch invoice pdfs: %w", err)
	}
	out := make([]models.InvoicePDF, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.InvoicePDF{InvoiceID: d.InvoiceID, URL: d.URL, Ready: d.Ready})
	}
	return out, nil
}

// RegisterInternalPayment records a settled booking payment against the
// remote payment ledger.
func (c *UsersPaymentsClient) RegisterInternalPayment(ctx context.Context, input models.RegisterPaymentInput) error {
	method := input.MethodID
	if method == 0 {
		method = 2 // online payment
	}
	payload := map[string]interface{}{
		"IdReserva":             input.ReservationID,
		"IdUnicoUsuario":        input.UserID,
		"MontoTotalPago":        input.Amount,
		"CuentaOrigenPago":      input.SourceAccount,
		"CuentaDestinoPago":     input.DestinationAccount,
		"IdUnicoUsuarioExterno": nil,
		"IdMetodoPago":          method,
	}

	url := c.baseURL + "/gestion/pago/reserva-interna"
	if err := doJSON(ctx, c.client, http.MethodPost, url, payload, nil); err != nil {
		return fmt.Errorf("failed to register payment: %w", err)
	}
	return nil
}

// IssueInvoice asks the special-functions endpoint to emit an invoice for a
// reservation. The endpoint takes its parameters on the query string.
func (c *UsersPaymentsClient) IssueInvoice(ctx context.Context, input models.IssueInvoiceInput) error {
	params := url.Values{}
	params.Set("idReserva", strconv.Itoa(input.ReservationID))
	if input.Email != "" {
		params.Set("correo", input.Email)
	}
	if input.FirstName != "" {
		params.Set("nombre", input.FirstName)
	}
	if input.LastName != "" {
		params.Set("apellido", input.LastName)
	}
	if input.DocumentType != "" {
		params.Set("tipoDocumento", input.DocumentType)
	}
	if input.Document != "" {
		params.Set("documento", input.Document)
	}

	endpoint := c.baseURL + "/funciones-especiales/emitir-factura?" + params.Encode()
	if err := doJSON(ctx, c.client, http.MethodPost, endpoint, struct{}{}, nil); err != nil {
		return fmt.Errorf("failed to issue invoice: %w", err)
	}
	return nil
}
