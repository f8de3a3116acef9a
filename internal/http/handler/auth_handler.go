package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/morphergyx/inquiry-api/internal/auth"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// AuthService is the login surface the handler depends on
type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Verify(ctx context.Context, token string) (*domain.AuthUserDTO, error)
}

type AuthHandler struct {
	authService  AuthService
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewAuthHandler(authService AuthService, maxBodyBytes int64, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Login godoc
// @Summary Admin login
// @Description Exchanges the admin email and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Verify godoc
// @Summary Verify token
// @Description Returns the identity carried by the bearer token
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	user, err := h.authService.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		h.logger.Error("token verification failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Token verification failed")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
