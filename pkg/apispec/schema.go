package apispec

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema is a trimmed, dependency-free copy of an OpenAPI schema. Only the
// properties needed to build form fields are kept.
type Schema struct {
	Type        string
	Format      string
	Description string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Enum        []any
}

// IsRequired reports whether name is listed in the schema's required set.
func (s Schema) IsRequired(name string) bool {
	for _, candidate := range s.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

func convertSchema(src *openapi3.Schema) Schema {
	if src == nil {
		return Schema{}
	}
	schema := Schema{
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Pattern:     src.Pattern,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, property := range src.Properties {
			if property == nil {
				continue
			}
			schema.Properties[name] = convertSchema(property.Value)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items.Value)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
