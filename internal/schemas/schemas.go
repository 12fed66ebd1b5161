// Package schemas provides JSON Schema validation for generator output.
// Validation is diagnostic: the normalizer repairs whatever the schema flags,
// so a validation failure is logged context, never a pipeline failure.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var profileSchema string

//go:embed topics.schema.json
var topicsSchema string

// ValidationError aggregates field-level schema violations.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return sb.String()
}

// ValidateProfileJSON checks raw generator output against the candidate
// profile schema.
func ValidateProfileJSON(doc string) error {
	return validate(profileSchema, doc)
}

// ValidateTopicsJSON checks raw generator output against the topic list
// schema.
func ValidateTopicsJSON(doc string) error {
	return validate(topicsSchema, doc)
}

func validate(schemaContent, doc string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
