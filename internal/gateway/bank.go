package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hotelandino/booking-bff/internal/models"
)

// BankClient talks to the bank's REST API. Transfers answer in plain text;
// the documented success signal is the words "correctamente" or "éxito"
// somewhere in the body.
type BankClient struct {
	baseURL         string
	customerAccount string
	hotelAccount    string
	logger          *logrus.Logger
	client          *http.Client
}

// NewBankClient creates a bank client. customerAccount and hotelAccount are
// the two fixed external account numbers the booking flow settles between.
func NewBankClient(baseURL, customerAccount, hotelAccount string, timeout time.Duration, logger *logrus.Logger) *BankClient {
	return &BankClient{
		baseURL:         baseURL,
		customerAccount: customerAccount,
		hotelAccount:    hotelAccount,
		logger:          logger,
		client:          newHTTPClient(timeout),
	}
}

type bankAccountDTO struct {
	AccountID int     `json:"cuenta_id"`
	Balance   float64 `json:"saldo"`
}

// Accounts fetches the accounts registered under an external account number.
func (c *BankClient) Accounts(ctx context.Context, account string) ([]models.BankAccount, error) {
	var dtos []bankAccountDTO
	url := c.baseURL + "/Cuentas/cliente/" + account
	if err := doJSON(ctx, c.client, http.MethodGet, url, nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch bank accounts: %w", err)
	}
	out := make([]models.BankAccount, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.BankAccount{AccountID: d.AccountID, Balance: d.Balance})
	}
	return out, nil
}

// Transfer moves amount between two internal account ids and normalizes the
// plain-text reply.
func (c *BankClient) Transfer(ctx context.Context, originID, destinationID int, amount float64) (models.TransferResult, error) {
	payload := map[string]interface{}{
		"cuenta_origen":  originID,
		"cuenta_destino": destinationID,
		"monto":          amount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to marshal transfer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Transacciones", bytes.NewReader(body))
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := BearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to call bank: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.TransferResult{}, fmt.Errorf("failed to read bank response: %w", err)
	}

	message := strings.TrimSpace(string(raw))
	lower := strings.ToLower(message)
	if strings.Contains(lower, "correctamente") || strings.Contains(lower, "éxito") {
		if message == "" {
			message = "Transacción realizada correctamente"
		}
		return models.TransferResult{OK: true, Message: message}, nil
	}

	if message == "" {
		message = "Error en la transacción"
	}
	return models.TransferResult{OK: false, Message: message}, nil
}

// Pay settles a booking amount from the shared customer account pool to the
// hotel account: both account lists fetched concurrently, the customer
// account picked by sufficient balance (else the first), then a transfer.
// Business failures come back as *models.BankError with the user-facing
// message; the returned result is only non-nil on success.
func (c *BankClient) Pay(ctx context.Context, amount float64) (*models.TransferResult, error) {
	var customerAccounts, hotelAccounts []models.BankAccount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customerAccounts, err = c.Accounts(gctx, c.customerAccount)
		return err
	})
	g.Go(func() error {
		var err error
		hotelAccounts, err = c.Accounts(gctx, c.hotelAccount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve bank accounts: %w", err)
	}

	if len(customerAccounts) == 0 {
		return nil, &models.BankError{Message: "No se encontró la cuenta del cliente (origen)"}
	}
	if len(hotelAccounts) == 0 {
		return nil, &models.BankError{Message: "No se encontró la cuenta del hotel (destino)"}
	}

	origin := customerAccounts[0]
	for _, acc := range customerAccounts {
		if acc.Balance >= amount {
			origin = acc
			break
		}
	}
	destination := hotelAccounts[0]

	if origin.AccountID == 0 || destination.AccountID == 0 {
		return nil, &models.BankError{Message: "No se pudo obtener los IDs de las cuentas"}
	}
	if origin.Balance < amount {
		return nil, &models.BankError{
			Message: fmt.Sprintf("Saldo insuficiente. Saldo disponible: $%.2f", origin.Balance),
		}
	}

	c.logger.WithFields(logrus.Fields{
		"origin_account":      origin.AccountID,
		"destination_account": destination.AccountID,
		"amount":              amount,
	}).Info("Executing bank transfer")

	result, err := c.Transfer(ctx, origin.AccountID, destination.AccountID, amount)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, &models.BankError{Message: result.Message}
	}
	return &result, nil
}
