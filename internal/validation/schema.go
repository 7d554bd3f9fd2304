// Package validation checks inbound tool arguments against their declared
// JSON schema before any adapter code touches them, so a malformed call
// fails with a readable message instead of a fault deep in a handler.
package validation

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ValidationError reports arguments rejected by a tool's input schema.
type ValidationError struct {
	Type    string
	Message string
	Detail  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateArgs validates an argument map against the given schema. A nil
// schema accepts anything.
func ValidateArgs(schema *jsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return &ValidationError{
			Type:    "SchemaError",
			Message: "failed to resolve input schema",
			Detail:  err.Error(),
		}
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := resolved.Validate(args); err != nil {
		return &ValidationError{
			Type:    "ValidationError",
			Message: "arguments do not match the tool's input schema",
			Detail:  err.Error(),
		}
	}

	return nil
}

// FormatValidationError renders a validation failure for an error envelope.
func FormatValidationError(err error) string {
	if vErr, ok := err.(*ValidationError); ok && vErr.Detail != "" {
		return fmt.Sprintf("%s: %s", vErr.Message, vErr.Detail)
	}
	return err.Error()
}
