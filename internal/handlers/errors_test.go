package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"hold not found", models.ErrHoldNotFound, http.StatusNotFound, ""},
		{"room not found", models.ErrRoomNotFound, http.StatusNotFound, ""},
		{"hold expired", models.ErrHoldExpired, http.StatusConflict, ""},
		{"hold not pending", models.ErrHoldNotPending, http.StatusConflict, ""},
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"forbidden", models.ErrForbidden, http.StatusForbidden, ""},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales incorrectas"},
		{"bank rejection", &models.BankError{Message: "Saldo insuficiente. Saldo disponible: $50.00"}, http.StatusPaymentRequired, "Saldo insuficiente. Saldo disponible: $50.00"},
		{"shape mismatch", &models.UpstreamShapeError{Service: "users", Field: "idHold"}, http.StatusBadGateway, ""},
		{"remote status", &gateway.StatusError{Code: 500, Body: "boom"}, http.StatusBadGateway, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, logger, tt.err)

			assert.Equal(t, tt.code, w.Code)
			if tt.message != "" {
				assert.Contains(t, w.Body.String(), tt.message)
			}
		})
	}
}

func TestRespondErrorWrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, logger, errors.New("context: "+models.ErrHoldNotFound.Error()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondError(c, logger, wrap(models.ErrHoldNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func wrap(err error) error {
	return &wrappedError{err}
}

type wrappedError struct{ inner error }

func (w *wrappedError) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrappedError) Unwrap() error { return w.inner }
