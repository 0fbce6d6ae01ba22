package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
)

// AuthService manages the session against the auth endpoints.
type AuthService struct {
	api     API
	session session.Store
	log     logger.Logger
}

// NewAuthService creates an AuthService storing tokens in store.
func NewAuthService(a API, store session.Store, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.Default()
	}
	return &AuthService{api: a, session: store, log: log}
}

type keyResponse struct {
	Key string `json:"key"`
}

// Login exchanges credentials for a token and stores it.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	var resp keyResponse
	if err := s.api.Call(ctx, http.MethodPost, "/api/auth/login/", creds, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.Key == "" {
		return errors.New("login: server returned no token")
	}
	if err := s.session.Set(ctx, resp.Key); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.log.Debug("logged in", "username", creds.Username)
	return nil
}

// Logout revokes the token on the server and clears it locally. The
// local token is cleared even when the server call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	if !session.HasToken(ctx, s.session) {
		return nil
	}

	callErr := s.api.Call(ctx, http.MethodPost, "/api/auth/logout/", nil, nil)
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if callErr != nil {
		s.log.Warn("server logout failed, local token cleared", "error", callErr)
		return fmt.Errorf("logout: %w", callErr)
	}
	return nil
}

// LoggedIn reports whether a token is stored.
func (s *AuthService) LoggedIn(ctx context.Context) bool {
	return session.HasToken(ctx, s.session)
}

// Register creates an account. When the server answers with a token
// (no email verification required) it is stored and true is returned.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (bool, error) {
	if err := reg.Validate(); err != nil {
		return false, err
	}

	var resp keyResponse
	if err := s.api.Call(ctx, http.MethodPost, "/api/auth/registration/", reg, &resp); err != nil {
		return false, fmt.Errorf("register: %w", err)
	}
	if resp.Key == "" {
		return false, nil
	}
	if err := s.session.Set(ctx, resp.Key); err != nil {
		return false, fmt.Errorf("register: %w", err)
	}
	return true, nil
}

// RequestPasswordReset asks the server to email a reset link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return "", err
	}

	var resp domain.Detail
	body := map[string]string{"email": email}
	if err := s.api.Call(ctx, http.MethodPost, "/api/auth/password/reset/", body, &resp); err != nil {
		return "", fmt.Errorf("password reset: %w", err)
	}
	return resp.Detail, nil
}

// ConfirmPasswordReset sets a new password using the uid and token from
// the emailed link.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, c domain.PasswordResetConfirm) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var resp domain.Detail
	if err := s.api.Call(ctx, http.MethodPost, "/api/auth/password/reset/confirm/", c, &resp); err != nil {
		return "", fmt.Errorf("password reset confirm: %w", err)
	}
	return resp.Detail, nil
}
