package services_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/adapters/cache"
	"github.com/geognosis/orecast/internal/adapters/events"
	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
)

func newMarketService(interval time.Duration) (*services.MarketService, providers.EventBus) {
	bus := events.NewMemoryEventBus()
	service := services.NewMarketService(bus, cache.NewMemoryAdapter(), rand.New(rand.NewSource(77)), interval)
	return service, bus
}

func TestMarketService_CurrentQuotes(t *testing.T) {
	service, _ := newMarketService(time.Second)
	defer service.Close()

	quotes := service.CurrentQuotes(context.Background())
	require.Len(t, quotes, len(entities.AllMinerals))

	// Quotes start at the baseline, in display order.
	for i, mineral := range entities.AllMinerals {
		assert.Equal(t, mineral, quotes[i].Mineral)
		assert.Equal(t, entities.BaselineQuotes[mineral].Price, quotes[i].Price)
		assert.NotEmpty(t, quotes[i].Unit)
	}
}

func TestMarketService_Quote_PrefersCachedPrice(t *testing.T) {
	bus := events.NewMemoryEventBus()
	priceCache := cache.NewMemoryAdapter()
	service := services.NewMarketService(bus, priceCache, rand.New(rand.NewSource(77)), time.Second)
	defer service.Close()

	// A price cached by another instance's ticker wins over the local
	// simulation state.
	err := priceCache.Set(context.Background(), "market:price:Gold", []byte("2150.75"), 60)
	require.NoError(t, err)

	quote, err := service.Quote(context.Background(), entities.MineralGold)
	require.NoError(t, err)
	assert.Equal(t, 2150.75, quote.Price)
}

func TestMarketService_Quote_FallsBackWithoutCacheEntry(t *testing.T) {
	service, _ := newMarketService(time.Second)
	defer service.Close()

	quote, err := service.Quote(context.Background(), entities.MineralGold)
	require.NoError(t, err)
	assert.Equal(t, entities.BaselineQuotes[entities.MineralGold].Price, quote.Price)
}

func TestMarketService_Quote_UnknownMineral(t *testing.T) {
	service, _ := newMarketService(time.Second)
	defer service.Close()

	_, err := service.Quote(context.Background(), entities.MineralType("Kryptonite"))
	require.Error(t, err)
}

func TestMarketService_TickerPublishesWithinBand(t *testing.T) {
	service, bus := newMarketService(5 * time.Millisecond)
	defer service.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	eventChan, err := bus.Subscribe(ctx, providers.GetMineralChannel(entities.MineralGold))
	require.NoError(t, err)

	service.AcquireTicker(entities.MineralGold)
	defer service.ReleaseTicker(entities.MineralGold)

	baseline := entities.BaselineQuotes[entities.MineralGold].Price
	for i := 0; i < 5; i++ {
		select {
		case event := <-eventChan:
			require.NotNil(t, event)
			assert.Equal(t, entities.MineralGold, event.Mineral)
			assert.GreaterOrEqual(t, event.Price, baseline*0.9)
			assert.LessOrEqual(t, event.Price, baseline*1.1)
		case <-ctx.Done():
			t.Fatal("timed out waiting for price update")
		}
	}
}

func TestMarketService_TickerStopsWithLastSubscriber(t *testing.T) {
	service, bus := newMarketService(5 * time.Millisecond)
	defer service.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := bus.Subscribe(ctx, providers.GetMineralChannel(entities.MineralSilver))
	require.NoError(t, err)

	service.AcquireTicker(entities.MineralSilver)
	service.AcquireTicker(entities.MineralSilver)
	service.ReleaseTicker(entities.MineralSilver)

	// One subscriber remains, updates keep flowing.
	select {
	case <-eventChan:
	case <-time.After(2 * time.Second):
		t.Fatal("expected updates while a subscriber remains")
	}

	service.ReleaseTicker(entities.MineralSilver)
	time.Sleep(20 * time.Millisecond)

	// Drain anything in flight, then confirm silence.
	for {
		select {
		case <-eventChan:
			continue
		default:
		}
		break
	}
	select {
	case event := <-eventChan:
		if event != nil {
			t.Fatalf("unexpected update after last release: %v", event)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMarketService_History(t *testing.T) {
	service, _ := newMarketService(time.Second)
	defer service.Close()

	tests := []struct {
		period entities.TimePeriod
		count  int
	}{
		{entities.Period1D, 24},
		{entities.Period5D, 30},
		{entities.Period1M, 30},
		{entities.Period1Y, 12},
		{entities.Period5Y, 20},
	}

	baseline := entities.BaselineQuotes[entities.MineralCopper].Price
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			points, err := service.History(context.Background(), entities.MineralCopper, tt.period)
			require.NoError(t, err)
			require.Len(t, points, tt.count)

			for _, point := range points {
				assert.GreaterOrEqual(t, point.Price, baseline*0.5)
				assert.NotEmpty(t, point.Date)
				assert.NotZero(t, point.Timestamp)
			}

			// Timestamps ascend and the series ends at the current price.
			for i := 1; i < len(points); i++ {
				assert.Greater(t, points[i].Timestamp, points[i-1].Timestamp)
			}
			quote, err := service.Quote(context.Background(), entities.MineralCopper)
			require.NoError(t, err)
			assert.Equal(t, quote.Price, points[len(points)-1].Price)
		})
	}
}

func TestMarketService_History_UnknownMineral(t *testing.T) {
	service, _ := newMarketService(time.Second)
	defer service.Close()

	_, err := service.History(context.Background(), entities.MineralType("Mithril"), entities.Period1Y)
	require.Error(t, err)
}
