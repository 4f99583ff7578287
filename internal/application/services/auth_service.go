package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/repositories"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// AuthService manages the prototype login flag. There is no credential
// verification: any non-empty email and password pair sets the flag, which is
// all the route guard checks.
type AuthService struct {
	sessions repositories.SessionRepository
}

// NewAuthService creates a new auth service
func NewAuthService(sessions repositories.SessionRepository) *AuthService {
	return &AuthService{sessions: sessions}
}

// Login sets the login flag after checking both fields are present.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return apperrors.NewValidationError("please enter both email and password")
	}

	if err := s.sessions.SetLoggedIn(ctx, true); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Msg("User logged in")
	return nil
}

// Logout clears the login flag.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.SetLoggedIn(ctx, false); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Msg("User logged out")
	return nil
}

// IsLoggedIn reports the current flag state.
func (s *AuthService) IsLoggedIn(ctx context.Context) (bool, error) {
	return s.sessions.IsLoggedIn(ctx)
}
