package handlers_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/adapters/cache"
	"github.com/geognosis/orecast/internal/adapters/events"
	"github.com/geognosis/orecast/internal/api/handlers"
	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
)

func newMarketHandler() *handlers.MarketHandler {
	bus := events.NewMemoryEventBus()
	market := services.NewMarketService(bus, cache.NewMemoryAdapter(), rand.New(rand.NewSource(5)), time.Second)
	return handlers.NewMarketHandler(market, bus)
}

func TestMarketHandler_ListPrices(t *testing.T) {
	handler := newMarketHandler()

	req := httptest.NewRequest("GET", "/api/prices", nil)
	w := httptest.NewRecorder()
	handler.ListPrices(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Prices []entities.MineralQuote `json:"prices"`
		Count  int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, len(entities.AllMinerals), response.Count)
}

func TestMarketHandler_GetPrice(t *testing.T) {
	handler := newMarketHandler()

	req := httptest.NewRequest("GET", "/api/prices/gold", nil)
	req.SetPathValue("mineral", "gold")
	w := httptest.NewRecorder()
	handler.GetPrice(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var quote entities.MineralQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.Equal(t, entities.MineralGold, quote.Mineral)
	assert.Equal(t, "$/oz", quote.Unit)
}

func TestMarketHandler_GetPrice_Unknown(t *testing.T) {
	handler := newMarketHandler()

	req := httptest.NewRequest("GET", "/api/prices/plutonium", nil)
	req.SetPathValue("mineral", "plutonium")
	w := httptest.NewRecorder()
	handler.GetPrice(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarketHandler_GetPriceHistory(t *testing.T) {
	handler := newMarketHandler()

	req := httptest.NewRequest("GET", "/api/prices/Copper/history?period=1M", nil)
	req.SetPathValue("mineral", "Copper")
	w := httptest.NewRecorder()
	handler.GetPriceHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Mineral entities.MineralType  `json:"mineral"`
		Period  entities.TimePeriod   `json:"period"`
		Points  []entities.PricePoint `json:"points"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.MineralCopper, response.Mineral)
	assert.Equal(t, entities.Period1M, response.Period)
	assert.Len(t, response.Points, 30)
}

func TestMarketHandler_GetPriceHistory_DefaultPeriod(t *testing.T) {
	handler := newMarketHandler()

	req := httptest.NewRequest("GET", "/api/prices/Iron/history", nil)
	req.SetPathValue("mineral", "Iron")
	w := httptest.NewRecorder()
	handler.GetPriceHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Period entities.TimePeriod   `json:"period"`
		Points []entities.PricePoint `json:"points"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.Period1Y, response.Period)
	assert.Len(t, response.Points, 12)
}
