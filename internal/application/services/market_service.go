package services

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
	"github.com/geognosis/orecast/internal/infrastructure/observability"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// Price band the simulated ticker stays inside, relative to the baseline.
const (
	tickerFloorRatio   = 0.9
	tickerCeilingRatio = 1.1
	historyFloorRatio  = 0.5

	priceCacheKeyPrefix = "market:price:"
	priceCacheTTL       = 60
)

// MarketService simulates live mineral prices. Each mineral has a ticker
// goroutine that perturbs the price by a small random percentage at a fixed
// interval; tickers run only while at least one stream subscriber is
// attached. Updates fan out through the event bus and the latest price is
// mirrored into the cache.
type MarketService struct {
	bus      providers.EventBus
	cache    providers.CacheProvider
	rng      providers.RandomSource
	interval time.Duration
	metrics  *observability.Metrics

	mu      sync.Mutex
	prices  map[entities.MineralType]float64
	tickers map[entities.MineralType]*tickerHandle
}

type tickerHandle struct {
	refs   int
	cancel context.CancelFunc
}

// NewMarketService creates a new market service
func NewMarketService(bus providers.EventBus, cache providers.CacheProvider, rng providers.RandomSource, interval time.Duration) *MarketService {
	prices := make(map[entities.MineralType]float64, len(entities.BaselineQuotes))
	for mineral, quote := range entities.BaselineQuotes {
		prices[mineral] = quote.Price
	}

	return &MarketService{
		bus:      bus,
		cache:    cache,
		rng:      rng,
		interval: interval,
		prices:   prices,
		tickers:  make(map[entities.MineralType]*tickerHandle),
	}
}

// SetMetrics attaches application metrics. Optional.
func (s *MarketService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// CurrentQuotes returns the latest simulated price for every mineral in
// display order.
func (s *MarketService) CurrentQuotes(ctx context.Context) []entities.MineralQuote {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes := make([]entities.MineralQuote, 0, len(entities.AllMinerals))
	for _, mineral := range entities.AllMinerals {
		quote := entities.BaselineQuotes[mineral]
		quote.Price = round2(s.prices[mineral])
		quotes = append(quotes, quote)
	}
	return quotes
}

// Quote returns the latest simulated price for one mineral. The cache holds
// the most recently ticked price, which may come from another instance; the
// local simulation state is the fallback.
func (s *MarketService) Quote(ctx context.Context, mineral entities.MineralType) (entities.MineralQuote, error) {
	quote, ok := entities.BaselineQuotes[mineral]
	if !ok {
		return entities.MineralQuote{}, apperrors.NewNotFoundError("unknown mineral: " + string(mineral))
	}

	cacheKey := priceCacheKeyPrefix + string(mineral)
	if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
		if cached, parseErr := strconv.ParseFloat(string(raw), 64); parseErr == nil {
			if s.metrics != nil {
				observability.RecordCacheHit(ctx, s.metrics, cacheKey)
			}
			quote.Price = round2(cached)
			return quote, nil
		}
	}
	if s.metrics != nil {
		observability.RecordCacheMiss(ctx, s.metrics, cacheKey)
	}

	s.mu.Lock()
	quote.Price = round2(s.prices[mineral])
	s.mu.Unlock()

	return quote, nil
}

// AcquireTicker registers one stream subscriber for a mineral and starts the
// ticker goroutine when it is the first.
func (s *MarketService) AcquireTicker(mineral entities.MineralType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.tickers[mineral]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		handle = &tickerHandle{cancel: cancel}
		s.tickers[mineral] = handle
		go s.runTicker(ctx, mineral)
	}
	handle.refs++
}

// ReleaseTicker drops one stream subscriber and stops the ticker goroutine
// when it was the last.
func (s *MarketService) ReleaseTicker(mineral entities.MineralType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.tickers[mineral]
	if !ok {
		return
	}

	handle.refs--
	if handle.refs <= 0 {
		handle.cancel()
		delete(s.tickers, mineral)
	}
}

// Close stops every running ticker.
func (s *MarketService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for mineral, handle := range s.tickers {
		handle.cancel()
		delete(s.tickers, mineral)
	}
}

func (s *MarketService) runTicker(ctx context.Context, mineral entities.MineralType) {
	log.Info().Str("mineral", string(mineral)).Msg("Price ticker started")
	defer log.Info().Str("mineral", string(mineral)).Msg("Price ticker stopped")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, mineral)
		}
	}
}

// tick perturbs the price by up to ±1% and clamps it to the baseline band.
func (s *MarketService) tick(ctx context.Context, mineral entities.MineralType) {
	baseline := entities.BaselineQuotes[mineral]

	s.mu.Lock()
	price := s.prices[mineral] * (1 + (s.rng.Float64()-0.5)*0.02)
	price = math.Max(price, baseline.Price*tickerFloorRatio)
	price = math.Min(price, baseline.Price*tickerCeilingRatio)
	s.prices[mineral] = price
	s.mu.Unlock()

	event := entities.NewMarketEvent(mineral, round2(price), baseline.Unit)

	if err := s.bus.Publish(ctx, providers.GetMineralChannel(mineral), event); err != nil {
		log.Warn().Err(err).Str("mineral", string(mineral)).Msg("Failed to publish price update")
	}
	if err := s.bus.Publish(ctx, providers.EventChannelPriceUpdates, event); err != nil {
		log.Warn().Err(err).Str("mineral", string(mineral)).Msg("Failed to publish price update")
	}

	cacheKey := priceCacheKeyPrefix + string(mineral)
	if err := s.cache.Set(ctx, cacheKey, []byte(strconv.FormatFloat(event.Price, 'f', -1, 64)), priceCacheTTL); err != nil {
		log.Warn().Err(err).Str("mineral", string(mineral)).Msg("Failed to cache price")
	}
}

// History generates a simulated price series for the period. The series is
// not stored; each call produces a fresh walk around the current price with
// the period's volatility, floored at half the baseline, with the final point
// pinned to the current price so chart and ticker agree.
func (s *MarketService) History(ctx context.Context, mineral entities.MineralType, period entities.TimePeriod) ([]entities.PricePoint, error) {
	baseline, ok := entities.BaselineQuotes[mineral]
	if !ok {
		return nil, apperrors.NewNotFoundError("unknown mineral: " + string(mineral))
	}

	s.mu.Lock()
	current := s.prices[mineral]
	s.mu.Unlock()

	count, span, volatility, layout := periodShape(period)
	step := span / time.Duration(count-1)
	now := time.Now()

	points := make([]entities.PricePoint, count)
	for i := 0; i < count; i++ {
		at := now.Add(-span + time.Duration(i)*step)

		s.mu.Lock()
		price := current * (1 + (s.rng.Float64()-0.5)*volatility)
		s.mu.Unlock()

		price = math.Max(price, baseline.Price*historyFloorRatio)
		points[i] = entities.PricePoint{
			Date:      at.Format(layout),
			Price:     round2(price),
			Timestamp: at.UnixMilli(),
		}
	}

	points[count-1].Price = round2(current)
	return points, nil
}

// periodShape maps a time period to its series length, span, volatility, and
// date label layout.
func periodShape(period entities.TimePeriod) (count int, span time.Duration, volatility float64, layout string) {
	const day = 24 * time.Hour
	switch period {
	case entities.Period1D:
		return 24, day, 0.02, "15:04"
	case entities.Period5D:
		return 30, 5 * day, 0.05, "Jan 2 15:04"
	case entities.Period1M:
		return 30, 30 * day, 0.1, "Jan 2"
	case entities.Period5Y:
		return 20, 5 * 365 * day, 0.8, "Jan 2006"
	default: // one year
		return 12, 365 * day, 0.3, "Jan 2006"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
