package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
)

// Builder converts API operations into form models.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the fields of op in binding order. Bindings whose property is
// not part of the request body keep their declared Type and are optional.
// A binding without a Label is labelled with its property name.
func (b *Builder) Build(op apispec.Operation, bindings []Binding) (FormModel, error) {
	if strings.TrimSpace(op.ID) == "" {
		return FormModel{}, fmt.Errorf("model: operation id is required")
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
	}

	seen := make(map[string]struct{}, len(bindings))
	for _, binding := range bindings {
		element := strings.TrimSpace(binding.Element)
		if element == "" {
			return FormModel{}, fmt.Errorf("model: %s: binding for %q has no element", op.ID, binding.Property)
		}
		if _, dup := seen[element]; dup {
			return FormModel{}, fmt.Errorf("model: %s: element %q bound twice", op.ID, element)
		}
		seen[element] = struct{}{}

		form.Fields = append(form.Fields, b.field(op.RequestBody, binding))
	}

	return form, nil
}

func (b *Builder) field(body apispec.Schema, binding Binding) Field {
	field := Field{
		Name:    binding.Property,
		Element: binding.Element,
		Type:    binding.Type,
		Label:   binding.Label,
	}
	if field.Label == "" {
		field.Label = binding.Property
	}

	prop, ok := body.Properties[binding.Property]
	if !ok {
		if field.Type == "" {
			field.Type = FieldTypeString
		}
		return field
	}

	if field.Type == "" {
		field.Type = fieldType(prop.Type)
	}
	field.Required = body.IsRequired(binding.Property)
	field.Description = prop.Description
	if len(prop.Enum) > 0 {
		field.Enum = append([]any(nil), prop.Enum...)
	}
	field.Validations = validationsFromSchema(prop)
	return field
}

func fieldType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func validationsFromSchema(schema apispec.Schema) []ValidationRule {
	var rules []ValidationRule
	if schema.Minimum != nil {
		rules = append(rules, ValidationRule{Kind: ValidationRuleMin, Params: map[string]string{"value": formatFloat(*schema.Minimum)}})
	}
	if schema.Maximum != nil {
		rules = append(rules, ValidationRule{Kind: ValidationRuleMax, Params: map[string]string{"value": formatFloat(*schema.Maximum)}})
	}
	if schema.MinLength != nil {
		rules = append(rules, ValidationRule{Kind: ValidationRuleMinLength, Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)}})
	}
	if schema.MaxLength != nil {
		rules = append(rules, ValidationRule{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)}})
	}
	if schema.Pattern != "" {
		rules = append(rules, ValidationRule{Kind: ValidationRulePattern, Params: map[string]string{"pattern": schema.Pattern}})
	}
	return rules
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
