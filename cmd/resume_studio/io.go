package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/observability"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/schemas"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/atsresumie/latex-studio/internal/validation"
)

// readInput reads a file, or stdin when path is empty or "-"
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// writeOutput writes to a file, or stdout when path is empty or "-"
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", path)
	return nil
}

// writeJSON writes v as indented JSON
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, path, append(data, '\n'))
}

// readSchemaFile reads a JSON file, checks it against the named schema and decodes it into dst
func readSchemaFile(path, schema string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.Validate(schema, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// readPayload reads a RenderPayload JSON file, or stdin when path is empty or "-"
func readPayload(cmd *cobra.Command, path string) (types.RenderPayload, error) {
	var payload types.RenderPayload
	raw, err := readInput(cmd, path)
	if err != nil {
		return payload, err
	}
	if err := schemas.Validate(schemas.RenderPayload, []byte(raw)); err != nil {
		return payload, err
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}

// readStyle reads a StyleConfig JSON file. An empty path returns ok=false.
func readStyle(path string) (types.StyleConfig, bool, error) {
	cfg := types.DefaultStyleConfig()
	if path == "" {
		return cfg, false, nil
	}
	if err := readSchemaFile(path, schemas.StyleConfig, &cfg); err != nil {
		return cfg, false, err
	}
	if err := validation.StyleConfig(cfg); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

// readSettings reads EditorSettings over the defaults. An empty path returns the defaults.
func readSettings(path string) (pagination.EditorSettings, error) {
	settings := pagination.DefaultEditorSettings()
	if path == "" {
		return settings, nil
	}
	err := readSchemaFile(path, schemas.EditorSettings, &settings)
	return settings, err
}

// verbosePrinter returns a stderr Printer when --verbose is set, or nil
func verbosePrinter(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}
