package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
	"github.com/SscSPs/savings_ledger_app/internal/platform/config"
	"github.com/SscSPs/savings_ledger_app/internal/utils"
)

// AuthHandler handles client registration and login.
type AuthHandler struct {
	clientService portssvc.ClientSvcFacade
	jwtSecret     string
	jwtDuration   time.Duration
	jwtIssuer     string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cs portssvc.ClientSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		clientService: cs,
		jwtSecret:     cfg.JWTSecret,
		jwtDuration:   cfg.JWTExpiryDuration,
		jwtIssuer:     cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per IP.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, clientService portssvc.ClientSvcFacade) error {
	h := NewAuthHandler(clientService, cfg)

	loginLimiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.POST("/register", h.Register)
	}
	return nil
}

// Login godoc
// @Summary Client login
// @Description Authenticates a client by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	client, err := h.clientService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("Failed to authenticate client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	token, err := utils.GenerateJWT(client.ClientID, h.jwtSecret, h.jwtDuration, h.jwtIssuer, time.Now())
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("Client logged in", slog.Int64("client_id", client.ClientID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.jwtDuration.Seconds()),
		Client:    dto.ToClientResponse(client),
	})
}

// Register godoc
// @Summary Register a new client
// @Description Creates a client profile with login credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param client body dto.RegisterClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email or national ID already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.RegisterClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register client")
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}
