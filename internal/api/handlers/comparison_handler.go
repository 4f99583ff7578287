package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/geognosis/orecast/internal/application/services"
)

// ComparisonHandler handles the site comparison endpoints
type ComparisonHandler struct {
	comparison *services.ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparison *services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		comparison: comparison,
	}
}

// SearchSites handles GET /api/comparison/sites?q=term
func (h *ComparisonHandler) SearchSites(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	items, err := h.comparison.Search(r.Context(), term)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sites": items,
		"count": len(items),
	})
}

// SelectSites handles POST /api/comparison/select
func (h *ComparisonHandler) SelectSites(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.comparison.Select(r.Context(), body.IDs)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sites": items,
		"count": len(items),
	})
}
