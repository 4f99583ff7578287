package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/geognosis/orecast/internal/application/controllers"
	"github.com/geognosis/orecast/internal/application/services"
)

// EstimatorHandler handles the drilling cost estimator endpoints
type EstimatorHandler struct {
	controller *controllers.EstimatorController
}

// NewEstimatorHandler creates a new estimator handler
func NewEstimatorHandler(controller *controllers.EstimatorController) *EstimatorHandler {
	return &EstimatorHandler{
		controller: controller,
	}
}

// GetState handles GET /api/estimator
func (h *EstimatorHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Calculate handles POST /api/estimator/calculate
func (h *EstimatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.controller.Submit(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

// ListHistory handles GET /api/estimator/history
func (h *EstimatorHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.controller.History(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// LoadSite handles POST /api/estimator/history/{id}/load
func (h *EstimatorHandler) LoadSite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history item ID is required")
		return
	}

	item, err := h.controller.LoadSite(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// Recalculate handles POST /api/estimator/history/{id}/recalculate
func (h *EstimatorHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history item ID is required")
		return
	}

	item, err := h.controller.Recalculate(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// Rename handles PATCH /api/estimator/history/{id}
func (h *EstimatorHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history item ID is required")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.controller.Rename(r.Context(), id, body.Name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/estimator/history/{id}
func (h *EstimatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history item ID is required")
		return
	}

	remaining, err := h.controller.Delete(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": remaining,
		"count": len(remaining),
	})
}

// SaveToProject handles POST /api/estimator/history/{id}/save-to-project
func (h *EstimatorHandler) SaveToProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "history item ID is required")
		return
	}

	project, err := h.controller.SaveToProject(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, project)
}
