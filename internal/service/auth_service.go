package service

import (
	"context"
	"errors"

	"github.com/morphergyx/inquiry-api/internal/auth"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	"go.uber.org/zap"
)

// AuthService handles the single-admin login
type AuthService struct {
	account *auth.AdminAccount
	tokens  *auth.TokenIssuer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewAuthService(account *auth.AdminAccount, tokens *auth.TokenIssuer, m *metrics.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		account: account,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// Login exchanges the admin credentials for a signed session token
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, ok := s.account.Authenticate(req.Email, req.Password)
	if !ok {
		s.metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		s.logger.Warn("admin login rejected", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	s.logger.Info("admin logged in", zap.String("admin_id", user.AdminID))

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toAuthUserDTO(user),
	}, nil
}

// Verify returns the identity carried by a token
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.AuthUserDTO, error) {
	user, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	dto := toAuthUserDTO(user)
	return &dto, nil
}

func toAuthUserDTO(user *auth.UserContext) domain.AuthUserDTO {
	return domain.AuthUserDTO{
		ID:    user.AdminID,
		Email: user.Email,
		Role:  user.Role,
	}
}
