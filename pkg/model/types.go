package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single constraint copied from the request schema.
// Thresholds live in Params["value"], patterns in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field is one input on the page.
type Field struct {
	Name        string           `json:"name"`
	Element     string           `json:"element"`
	Type        FieldType        `json:"type"`
	Required    bool             `json:"required"`
	Label       string           `json:"label,omitempty"`
	Description string           `json:"description,omitempty"`
	Enum        []any            `json:"enum,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
}

// FormModel groups the fields an operation reads.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field returns the field bound to element.
func (f FormModel) Field(element string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Element == element {
			return field, true
		}
	}
	return Field{}, false
}

// Binding ties a request body property to the page element holding its value.
// Label overrides the derived label when set. Properties absent from the
// schema (path parameters such as the wishlist id) are bound with Type.
type Binding struct {
	Element  string
	Property string
	Label    string
	Type     FieldType
}
