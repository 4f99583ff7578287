package providers

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to market
// price events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.MarketEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.MarketEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelPriceUpdates is the channel carrying every price update
	EventChannelPriceUpdates = "prices:updates"

	// EventChannelPricePrefix is the prefix for per-mineral channels
	EventChannelPricePrefix = "prices:"
)

// GetMineralChannel returns the channel name for a specific mineral.
func GetMineralChannel(mineral entities.MineralType) string {
	return EventChannelPricePrefix + string(mineral)
}
