package services

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// CatalogService serves the static exercise catalog. The catalog is loaded
// once at startup and never mutated; its entry schema is opaque to the
// server, so entries stay raw JSON.
type CatalogService struct {
	exercises []json.RawMessage
}

// NewCatalogService loads the catalog file. A missing or unreadable catalog
// is logged and served as empty rather than failing startup.
func NewCatalogService(path string, log *zap.Logger) *CatalogService {
	svc := &CatalogService{exercises: []json.RawMessage{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("exercise catalog file not found, serving empty catalog", zap.String("path", path))
		} else {
			log.Warn("failed to read exercise catalog", zap.String("path", path), zap.Error(err))
		}
		return svc
	}

	var exercises []json.RawMessage
	if err := json.Unmarshal(data, &exercises); err != nil {
		log.Warn("exercise catalog is not a JSON array, serving empty catalog", zap.String("path", path), zap.Error(err))
		return svc
	}

	svc.exercises = exercises
	log.Info("exercise catalog loaded", zap.String("path", path), zap.Int("count", len(exercises)))
	return svc
}

// Exercises returns the catalog entries in file order.
func (c *CatalogService) Exercises() []json.RawMessage {
	return c.exercises
}
