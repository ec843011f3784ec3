package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fitcoach/apiserver/internal/services"
)

// ExerciseHandler serves the static exercise catalog.
type ExerciseHandler struct {
	catalog *services.CatalogService
}

// NewExerciseHandler constructs an ExerciseHandler for the given catalog.
func NewExerciseHandler(catalog *services.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalog: catalog}
}

// ExerciseListResponse wraps the catalog entries.
type ExerciseListResponse struct {
	Results []json.RawMessage `json:"results"`
}

// List handles GET /api/exercices.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ExerciseListResponse{Results: h.catalog.Exercises()})
}
