package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fitcoach/apiserver/internal/handlers"
	"github.com/fitcoach/apiserver/internal/services"
	"go.uber.org/zap"
)

func TestExerciseList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercices.json")
	data := `[{"id":1,"name":"Pompes"},{"id":2,"name":"Squats","level":"debutant"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog := services.NewCatalogService(path, zap.NewNop())
	handler := handlers.NewExerciseHandler(catalog)

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/exercices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results: got %d entries", len(resp.Results))
	}
	if resp.Results[1]["name"] != "Squats" {
		t.Errorf("entry: got %v", resp.Results[1])
	}
}

func TestExerciseListMissingCatalog(t *testing.T) {
	catalog := services.NewCatalogService(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	handler := handlers.NewExerciseHandler(catalog)

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/exercices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"results\":[]}\n" {
		t.Errorf("body: got %q", got)
	}
}
