package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// exportSchema describes the cache export format. Exports are validated
// before writing so a corrupt dump never reaches remote storage.
const exportSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["prompt", "response"],
		"properties": {
			"prompt": {"type": "string", "minLength": 1},
			"response": {"type": "string"}
		},
		"additionalProperties": false
	}
}`

// ExportJSON writes all cached pairs to path as a JSON array.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	entries, err := s.All(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache export: %w", err)
	}

	if err := validateExport(data); err != nil {
		return fmt.Errorf("cache export failed validation: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache export: %w", err)
	}
	s.logger.Info("cache exported", "path", path, "entries", len(entries))
	return nil
}

func validateExport(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("export.json", bytes.NewReader([]byte(exportSchema))); err != nil {
		return fmt.Errorf("failed to load export schema: %w", err)
	}
	schema, err := compiler.Compile("export.json")
	if err != nil {
		return fmt.Errorf("failed to compile export schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode export for validation: %w", err)
	}
	return schema.Validate(doc)
}
