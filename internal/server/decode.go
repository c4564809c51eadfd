package server

import (
	"encoding/json"
	"fmt"

	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/schemas"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/atsresumie/latex-studio/internal/validation"
)

// Request fragments arrive as raw JSON so they can be checked against their
// schema before being decoded.

func decodePayload(raw json.RawMessage) (types.RenderPayload, error) {
	var payload types.RenderPayload
	if len(raw) == 0 || string(raw) == "null" {
		return payload, &ErrValidation{Field: "payload", Message: "is required"}
	}
	if err := schemas.Validate(schemas.RenderPayload, raw); err != nil {
		return payload, err
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, &ErrValidation{Field: "payload", Message: err.Error()}
	}
	return payload, nil
}

// decodeStyle returns ok=false when no style was sent
func decodeStyle(raw json.RawMessage) (types.StyleConfig, bool, error) {
	cfg := types.DefaultStyleConfig()
	if len(raw) == 0 || string(raw) == "null" {
		return cfg, false, nil
	}
	if err := schemas.Validate(schemas.StyleConfig, raw); err != nil {
		return cfg, false, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, false, &ErrValidation{Field: "style", Message: err.Error()}
	}
	if err := validation.StyleConfig(cfg); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

// decodeSettings overlays the sent fields on the editor defaults
func decodeSettings(raw json.RawMessage) (pagination.EditorSettings, error) {
	settings := pagination.DefaultEditorSettings()
	if len(raw) == 0 || string(raw) == "null" {
		return settings, nil
	}
	if err := schemas.Validate(schemas.EditorSettings, raw); err != nil {
		return settings, err
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return settings, &ErrValidation{Field: "settings", Message: err.Error()}
	}
	return settings, nil
}

func required(field, value string) error {
	if value == "" {
		return &ErrValidation{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return nil
}
