// Package schema validates persisted distribution and config files against
// their embedded JSON Schemas before they are loaded or imported.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed distribution.schema.json
var distributionSchemaJSON string

//go:embed config.schema.json
var configSchemaJSON string

var (
	distributionSchema = jsonschema.MustCompileString("distribution.schema.json", distributionSchemaJSON)
	configSchema       = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)
)

// ValidateDistribution checks a distribution file payload.
func ValidateDistribution(data []byte) error {
	return validate(distributionSchema, data)
}

// ValidateConfig checks a config file payload.
func ValidateConfig(data []byte) error {
	return validate(configSchema, data)
}

func validate(s *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
