package storage

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/repositories"
	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// SessionAdapter persists the login flag consumed by the route guard.
type SessionAdapter struct {
	client *localstore.Client
}

// NewSessionAdapter creates a new session adapter
func NewSessionAdapter(client *localstore.Client) repositories.SessionRepository {
	return &SessionAdapter{client: client}
}

// SetLoggedIn stores the login marker
func (a *SessionAdapter) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	value := "false"
	if loggedIn {
		value = "true"
	}
	if err := a.client.Set(ctx, KeyLoggedIn, value); err != nil {
		return apperrors.NewInternalError("failed to write login flag", err)
	}
	return nil
}

// IsLoggedIn reports whether the login marker is set. Absent or malformed
// values read as false.
func (a *SessionAdapter) IsLoggedIn(ctx context.Context) (bool, error) {
	value, found, err := a.client.Get(ctx, KeyLoggedIn)
	if err != nil {
		return false, apperrors.NewInternalError("failed to read login flag", err)
	}
	if !found {
		return false, nil
	}
	return value == "true", nil
}
