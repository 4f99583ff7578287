package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// ProjectHandler handles exploration project endpoints
type ProjectHandler struct {
	projects *services.ProjectService
	metrics  *services.FinancialMetricsService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectService, metrics *services.FinancialMetricsService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		metrics:  metrics,
	}
}

// projectView adds the display-only fields to a stored project.
type projectView struct {
	*entities.ProjectData
	DisplayStatus entities.ProjectStatus `json:"displayStatus"`
	CreatedLabel  string                 `json:"createdLabel"`

	// NPVDisplay is the NPV figure the project page shows: the saved
	// metrics computation when one exists, the stored range otherwise.
	NPVDisplay string `json:"npvDisplay,omitempty"`
}

func newProjectView(project *entities.ProjectData) projectView {
	return projectView{
		ProjectData:   project,
		DisplayStatus: project.DisplayStatus(),
		CreatedLabel:  project.FormatCreatedDate(),
		NPVDisplay:    project.NPVRange,
	}
}

// formatNPVMillions renders a computed NPV as the "$NM" figure.
func formatNPVMillions(npv float64) string {
	return fmt.Sprintf("$%.0fM", npv/1_000_000)
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	views := make([]projectView, len(projects))
	for i, project := range projects {
		views[i] = newProjectView(project)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"projects": views,
		"count":    len(views),
	})
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Missing-project view: the page shows the message plus a link
			// back to the portfolio instead of a bare error.
			respondWithJSON(w, http.StatusNotFound, map[string]string{
				"error":    "Project not found",
				"backLink": "/api/projects",
			})
			return
		}
		respondWithAppError(w, err)
		return
	}

	view := newProjectView(project)
	if metrics, err := h.metrics.SavedForProject(r.Context(), id); err == nil {
		view.NPVDisplay = formatNPVMillions(metrics.NPV)
	}

	respondWithJSON(w, http.StatusOK, view)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newProjectView(project))
}

// DeleteProject handles DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	remaining, err := h.projects.Delete(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	views := make([]projectView, len(remaining))
	for i, project := range remaining {
		views[i] = newProjectView(project)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"projects": views,
		"count":    len(views),
	})
}

// GetMetrics handles GET /api/projects/{id}/metrics
func (h *ProjectHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	metrics, err := h.metrics.GetForProject(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": metrics,
		"sliders": h.metrics.SliderConfigs(),
	})
}

// UpdateMetrics handles PUT /api/projects/{id}/metrics
func (h *ProjectHandler) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var body struct {
		Sliders []entities.SliderPosition `json:"sliders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	metrics, err := h.metrics.UpdateForProject(r.Context(), id, body.Sliders)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": metrics,
		"sliders": h.metrics.SliderConfigs(),
	})
}
