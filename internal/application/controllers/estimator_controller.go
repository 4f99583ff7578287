package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// EstimatorState is the estimator page's interaction state.
type EstimatorState string

const (
	// StateIdle is the initial state: no active estimate.
	StateIdle EstimatorState = "idle"

	// StateSubmitting is transient while a submission is being estimated.
	StateSubmitting EstimatorState = "submitting"

	// StateEstimated holds a freshly computed estimate.
	StateEstimated EstimatorState = "estimated"

	// StateLoaded holds an estimate reloaded from the history, unmodified.
	StateLoaded EstimatorState = "loaded"
)

// EstimatorController drives the estimator page for the single interactive
// session. It tracks which estimate is active and how it got there; all
// persistence goes through the services.
type EstimatorController struct {
	history  *services.HistoryService
	projects *services.ProjectService

	mu     sync.Mutex
	state  EstimatorState
	active *entities.SearchHistoryItem
	notice string
}

// Snapshot is the controller state returned to the page.
type Snapshot struct {
	State      EstimatorState              `json:"state"`
	ActiveItem *entities.SearchHistoryItem `json:"activeItem,omitempty"`
	Notice     string                      `json:"notice,omitempty"`
}

// NewEstimatorController creates a new estimator controller
func NewEstimatorController(history *services.HistoryService, projects *services.ProjectService) *EstimatorController {
	return &EstimatorController{
		history:  history,
		projects: projects,
		state:    StateIdle,
	}
}

// Snapshot returns the current state and clears any pending notice. The
// notice is transient: it describes the outcome of the last rejected
// submission and is consumed by the first read.
func (c *EstimatorController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		State:      c.state,
		ActiveItem: c.active,
		Notice:     c.notice,
	}
	c.notice = ""
	return snapshot
}

// Submit runs one estimation. An invalid submission leaves the previous
// state and active item untouched and records a notice instead.
func (c *EstimatorController) Submit(ctx context.Context, input services.SubmitInput) (*entities.SearchHistoryItem, error) {
	c.mu.Lock()
	previous := c.state
	c.state = StateSubmitting
	c.mu.Unlock()

	item, err := c.history.Submit(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = previous
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeValidation {
			c.notice = appErr.Message
		}
		return nil, err
	}

	c.state = StateEstimated
	c.active = item
	c.notice = ""
	return item, nil
}

// LoadSite activates a stored history item without recomputing anything.
func (c *EstimatorController) LoadSite(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	item, err := c.history.LoadSite(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state = StateLoaded
	c.active = item
	c.mu.Unlock()

	return item, nil
}

// Recalculate re-runs the estimation for a stored item. The result replaces
// the active item and counts as a fresh estimate.
func (c *EstimatorController) Recalculate(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	item, err := c.history.Recalculate(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state = StateEstimated
	c.active = item
	c.mu.Unlock()

	return item, nil
}

// Rename changes an item's display name. The interaction state is unchanged;
// only the active item's name is refreshed when it is the one renamed.
func (c *EstimatorController) Rename(ctx context.Context, id, newName string) (*entities.SearchHistoryItem, error) {
	item, err := c.history.Rename(ctx, id, newName)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.active != nil && c.active.ID == id {
		c.active = item
	}
	c.mu.Unlock()

	return item, nil
}

// SaveToProject promotes the item into a project and resets the page to
// idle. Saving requires an active estimate.
func (c *EstimatorController) SaveToProject(ctx context.Context, id string) (*entities.ProjectData, error) {
	c.mu.Lock()
	if c.state != StateEstimated && c.state != StateLoaded {
		c.mu.Unlock()
		return nil, apperrors.NewValidationError("no active estimate to save")
	}
	c.mu.Unlock()

	project, err := c.projects.SaveFromHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state = StateIdle
	c.active = nil
	c.mu.Unlock()

	return project, nil
}

// Delete removes a history item. Deleting the active item resets the page to
// idle; deleting any other item leaves the state alone.
func (c *EstimatorController) Delete(ctx context.Context, id string) ([]*entities.SearchHistoryItem, error) {
	remaining, err := c.history.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.active != nil && c.active.ID == id {
		c.state = StateIdle
		c.active = nil
	}
	c.mu.Unlock()

	return remaining, nil
}

// History lists the stored items, seeding demo data on first load.
func (c *EstimatorController) History(ctx context.Context) ([]*entities.SearchHistoryItem, error) {
	return c.history.List(ctx)
}

// WatchStorage polls the store at the given interval and refreshes the
// active item when another writer changed or removed it. The poll runs until
// the context is cancelled; its lifetime is scoped to the caller's.
func (c *EstimatorController) WatchStorage(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshActive(ctx)
		}
	}
}

func (c *EstimatorController) refreshActive(ctx context.Context) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active == nil {
		return
	}

	item, err := c.history.LoadSite(ctx, active.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.mu.Lock()
			if c.active != nil && c.active.ID == active.ID {
				c.state = StateIdle
				c.active = nil
			}
			c.mu.Unlock()
			log.Ctx(ctx).Debug().Str("item_id", active.ID).Msg("Active item removed by another writer")
		}
		return
	}

	c.mu.Lock()
	if c.active != nil && c.active.ID == item.ID {
		c.active = item
	}
	c.mu.Unlock()
}
