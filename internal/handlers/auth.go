package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/dto"
	apierrors "github.com/yukikurage/items-api/internal/errors"
	"github.com/yukikurage/items-api/internal/middleware"
	"github.com/yukikurage/items-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	transport   auth.Transport
	log         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, transport auth.Transport, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		transport:   transport,
		log:         log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user and signs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, result)
}

// Signin authenticates a user and hands out a token.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, result)
}

// Signout removes the client-held credential. Tokens are not revoked server-side.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := h.transport.Clear(c); err != nil {
		h.log.Error("failed to clear credential", "requestId", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "Failed to sign out")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out successfully"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: dto.ToUserDTO(*user)})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, result *services.AuthResult) {
	if err := h.transport.Attach(c, result.Token); err != nil {
		h.log.Error("failed to attach token", "requestId", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	resp := dto.AuthResponse{User: dto.ToUserDTO(*result.User)}
	if h.transport.ExposeToken() {
		resp.Token = result.Token
	}
	c.JSON(status, resp)
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		apierrors.AlreadyExists(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		h.log.Error("auth request failed", "requestId", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "")
	}
}
