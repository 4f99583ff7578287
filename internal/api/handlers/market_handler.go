package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
)

// MarketHandler handles mineral price endpoints, including the SSE stream of
// simulated live updates.
type MarketHandler struct {
	market   *services.MarketService
	eventBus providers.EventBus
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(market *services.MarketService, eventBus providers.EventBus) *MarketHandler {
	return &MarketHandler{
		market:   market,
		eventBus: eventBus,
	}
}

// ListPrices handles GET /api/prices
func (h *MarketHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	quotes := h.market.CurrentQuotes(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"prices": quotes,
		"count":  len(quotes),
	})
}

// GetPrice handles GET /api/prices/{mineral}
func (h *MarketHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	mineral, ok := entities.ParseMineral(r.PathValue("mineral"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown mineral")
		return
	}

	quote, err := h.market.Quote(r.Context(), mineral)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, quote)
}

// GetPriceHistory handles GET /api/prices/{mineral}/history?period=1Y
func (h *MarketHandler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	mineral, ok := entities.ParseMineral(r.PathValue("mineral"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown mineral")
		return
	}

	period := entities.ParsePeriod(r.URL.Query().Get("period"))

	points, err := h.market.History(r.Context(), mineral, period)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"mineral": mineral,
		"period":  period,
		"points":  points,
	})
}

// StreamPriceUpdates handles SSE connections for live price updates
// GET /api/stream/prices/{mineral}
func (h *MarketHandler) StreamPriceUpdates(w http.ResponseWriter, r *http.Request) {
	mineral, ok := entities.ParseMineral(r.PathValue("mineral"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown mineral")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	channel := providers.GetMineralChannel(mineral)
	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("channel", channel).Msg("Failed to subscribe to price channel")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	// The ticker only runs while someone is watching.
	h.market.AcquireTicker(mineral)
	defer h.market.ReleaseTicker(mineral)

	quote, _ := h.market.Quote(r.Context(), mineral)
	h.sendEvent(w, "connected", map[string]interface{}{
		"mineral":   mineral,
		"price":     quote.Price,
		"unit":      quote.Unit,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	h.streamEvents(r.Context(), w, flusher, mineral, eventChan)
}

func (h *MarketHandler) streamEvents(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, mineral entities.MineralType, eventChan <-chan *entities.MarketEvent) {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Ctx(ctx).Debug().Str("mineral", string(mineral)).Msg("Client disconnected from price stream")
			return
		case <-heartbeat.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			h.sendEvent(w, "price", event)
			flusher.Flush()
		}
	}
}

// sendEvent sends one SSE event to the client
func (h *MarketHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
