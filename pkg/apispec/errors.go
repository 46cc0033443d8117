package apispec

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationError lists schema violations for a request body, keyed by the
// dotted property path ("" for the body itself).
type ValidationError struct {
	Operation string
	Fields    map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "apispec: invalid request body"
	}
	var parts []string
	for _, path := range sortedKeys(e.Fields) {
		for _, msg := range e.Fields[path] {
			if path == "" {
				parts = append(parts, msg)
				continue
			}
			parts = append(parts, path+": "+msg)
		}
	}
	return fmt.Sprintf("apispec: invalid %s body: %s", e.Operation, strings.Join(parts, "; "))
}

func newValidationError(op string, err error) error {
	out := &ValidationError{Operation: op, Fields: make(map[string][]string)}
	collectSchemaErrors(err, out.Fields)
	if len(out.Fields) == 0 {
		out.Fields[""] = []string{err.Error()}
	}
	return out
}

func collectSchemaErrors(err error, dest map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, dest)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := strings.Join(schemaErr.JSONPointer(), ".")
		dest[path] = append(dest[path], schemaErr.Reason)
		return
	}
	if err != nil {
		dest[""] = append(dest[""], err.Error())
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
