package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atsresumie/latex-studio/internal/types"
)

// Document is the latest version of a stored LaTeX resume
type Document struct {
	ID        uuid.UUID         `json:"id"`
	Label     string            `json:"label"`
	Latex     string            `json:"latex"`
	Style     types.StyleConfig `json:"style"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DocumentVersion is one saved revision of a document
type DocumentVersion struct {
	DocumentID uuid.UUID         `json:"documentId"`
	Version    int               `json:"version"`
	Latex      string            `json:"latex"`
	Style      types.StyleConfig `json:"style"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// encodeStyle serializes a style config for a JSONB column
func encodeStyle(cfg types.StyleConfig) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal style: %w", err)
	}
	return data, nil
}

// decodeStyle reads a JSONB style column; missing fields keep their defaults
func decodeStyle(data []byte) (types.StyleConfig, error) {
	cfg := types.DefaultStyleConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return types.StyleConfig{}, fmt.Errorf("failed to unmarshal style: %w", err)
	}
	return cfg, nil
}
