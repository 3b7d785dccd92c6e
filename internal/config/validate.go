package config

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// SchemaViolations checks raw settings against the configuration schema and
// returns every violation, sorted. A nil slice means the settings conform.
func SchemaViolations(settings map[string]any) ([]string, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(settings))
	if err != nil {
		return nil, fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		violations = append(violations, schemaErr.String())
	}
	sort.Strings(violations)
	return violations, nil
}
