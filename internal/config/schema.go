package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON schema every loaded configuration must satisfy. It
// catches misspelled keys and wrongly typed values before unmarshalling
// silently drops them.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "depfang configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "project": {"type": "string"},
    "depth": {"type": "integer", "minimum": -1},
    "quiet": {"type": "boolean"},
    "outputter": {"type": "string", "minLength": 1},
    "outputter_params": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "max_file_size": {"type": "string"},
    "exclude_dirs": {
      "type": "array",
      "items": {"type": "string"}
    },
    "cache": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "directory": {"type": "string"}
      }
    }
  }
}`

// ErrSchemaViolation wraps one or more schema validation failures.
var ErrSchemaViolation = errors.New("configuration violates schema")

func validateSettings(settings map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	settingsLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, settingsLoader)
	if err != nil {
		return fmt.Errorf("run schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(messages, "; "))
}
