package repositories

import "context"

// SessionRepository persists the login flag consumed by the route guard.
type SessionRepository interface {
	// SetLoggedIn stores the login marker.
	SetLoggedIn(ctx context.Context, loggedIn bool) error

	// IsLoggedIn reports whether the login marker is set. Absent or
	// malformed values read as false.
	IsLoggedIn(ctx context.Context) (bool, error)
}
