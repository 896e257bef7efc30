package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillgenome/genome/internal/schemas"
)

// writeArtifact marshals v to <outDir>/<name> and, when the matching
// schema file can be located, validates the output against it. Step
// commands compose through these JSON files.
func writeArtifact(outDir, name, schemaFile string, v any) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if schemaFile != "" {
		if schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaFile)); schemaPath != "" {
			schemaContent, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("failed to read schema: %w", err)
			}
			if err := schemas.ValidateJSONString(string(schemaContent), string(data)); err != nil {
				return fmt.Errorf("artifact %s failed schema validation: %w", name, err)
			}
		}
	}

	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
