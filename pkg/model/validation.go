package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Check validates raw text entered for the field. Empty input is accepted for
// optional fields; booleans accept anything strconv.ParseBool does.
func (f Field) Check(input string) error {
	value := strings.TrimSpace(input)
	if value == "" {
		if f.Required {
			return fmt.Errorf("required")
		}
		return nil
	}

	switch f.Type {
	case FieldTypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("expected true or false")
		}
		return nil
	case FieldTypeInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("expected a whole number")
		}
		return f.checkBounds(float64(n))
	case FieldTypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("expected a number")
		}
		return f.checkBounds(n)
	default:
		return f.checkString(input)
	}
}

func (f Field) checkBounds(n float64) error {
	for _, rule := range f.Validations {
		limit, ok := ruleFloat(rule)
		if !ok {
			continue
		}
		switch rule.Kind {
		case ValidationRuleMin:
			if n < limit {
				return fmt.Errorf("must be >= %s", rule.Params["value"])
			}
		case ValidationRuleMax:
			if n > limit {
				return fmt.Errorf("must be <= %s", rule.Params["value"])
			}
		}
	}
	return nil
}

func (f Field) checkString(value string) error {
	length := utf8.RuneCountInString(value)
	for _, rule := range f.Validations {
		switch rule.Kind {
		case ValidationRuleMinLength:
			if limit, ok := ruleInt(rule); ok && length < limit {
				return fmt.Errorf("must be at least %d characters", limit)
			}
		case ValidationRuleMaxLength:
			if limit, ok := ruleInt(rule); ok && length > limit {
				return fmt.Errorf("must be at most %d characters", limit)
			}
		case ValidationRulePattern:
			re, err := regexp.Compile(rule.Params["pattern"])
			if err != nil {
				continue
			}
			if !re.MatchString(value) {
				return fmt.Errorf("must match %s", rule.Params["pattern"])
			}
		}
	}
	return nil
}

func ruleFloat(rule ValidationRule) (float64, bool) {
	v, err := strconv.ParseFloat(rule.Params["value"], 64)
	return v, err == nil
}

func ruleInt(rule ValidationRule) (int, bool) {
	v, err := strconv.Atoi(rule.Params["value"])
	return v, err == nil
}
