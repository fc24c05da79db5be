// Package schema reflects JSON Schemas from Go types and validates generic
// JSON documents against them.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

// Generate reflects the JSON Schema of v's type.
func Generate(v interface{}) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		// Unknown fields are rejected so malformed documents fail closed.
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	return r.Reflect(v)
}

// GenerateJSON renders the reflected schema as indented JSON.
func GenerateJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(Generate(v), "", "  ")
}

// Validator validates documents against a compiled schema.
type Validator struct {
	schema *santhosh.Schema
}

// NewValidatorFor compiles the schema reflected from v's type.
func NewValidatorFor(v interface{}) (*Validator, error) {
	data, err := GenerateJSON(v)
	if err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}

	name := strings.ToLower(reflect.Indirect(reflect.ValueOf(v)).Type().Name()) + ".json"
	compiler := santhosh.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// MustValidatorFor is NewValidatorFor for package-level initialisation.
func MustValidatorFor(v interface{}) *Validator {
	val, err := NewValidatorFor(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Validate checks a generically decoded JSON value (objects as
// map[string]interface{}, numbers as json.Number or float64).
func (v *Validator) Validate(doc interface{}) error {
	if err := v.schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*santhosh.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *santhosh.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" || len(err.Causes) == 0 {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
