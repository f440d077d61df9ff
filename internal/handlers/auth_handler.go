package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelandino/booking-bff/internal/gateway"
	"github.com/hotelandino/booking-bff/internal/middleware"
	"github.com/hotelandino/booking-bff/internal/models"
	"github.com/hotelandino/booking-bff/pkg/jwt"
)

// AuthHandler handles login, registration and profile requests.
type AuthHandler struct {
	users      *gateway.UsersPaymentsClient
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *gateway.UsersPaymentsClient, jwtService *jwt.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login handles POST /api/auth/login. It authenticates against the users
// service, fetches the upstream gateway token, and answers with a session
// token embedding both. A missing upstream token does not block the login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Correo y contraseña son requeridos"})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	upstreamToken, err := h.users.UpstreamToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Warn("Upstream token unavailable, proceeding without it")
		upstreamToken = ""
	}

	sessionToken, err := h.jwtService.GenerateToken(jwt.Claims{
		UserID:        user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          user.Role,
		DocumentType:  user.DocumentType,
		Document:      user.Document,
		UpstreamToken: upstreamToken,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")

	c.JSON(http.StatusOK, models.LoginResult{User: *user, SessionToken: sessionToken})
}

// registerMessage maps upstream registration failures to user-facing text.
func registerMessage(err error) string {
	var statusErr *gateway.StatusError
	if !errors.As(err, &statusErr) {
		return "Error de conexión. Verifica tu internet."
	}
	switch statusErr.Code {
	case http.StatusUnauthorized:
		return "El registro requiere autenticación. Contacta al administrador."
	case http.StatusBadRequest:
		return "Datos inválidos. Verifica la información."
	case http.StatusConflict, http.StatusInternalServerError:
		return "Es posible que el correo o documento ya estén registrados."
	default:
		return "Error al crear la cuenta"
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Datos de registro incompletos"})
		return
	}

	if err := h.users.Register(c.Request.Context(), req); err != nil {
		h.logger.WithError(err).Warn("Registration failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "registration_failed", "message": registerMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Cuenta creada correctamente"})
}

// Profile handles GET /api/auth/me.
func (h *AuthHandler) Profile(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	user, err := h.users.UserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/me.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, h.logger, models.ErrUnauthorized)
		return
	}

	var req models.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Datos de perfil incompletos"})
		return
	}

	if err := h.users.UpdateUser(c.Request.Context(), sess.UserID, req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Perfil actualizado"})
}
