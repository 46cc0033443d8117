package surface

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned by ParseAction for names that are not buttons.
	ErrUnknownAction = errors.New("surface: unknown action")
	// ErrInvalidField matches every *FieldError.
	ErrInvalidField = errors.New("surface: invalid field")
)

// FieldError reports an input whose text could not be used for a request.
type FieldError struct {
	Element string
	Value   string
	Reason  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("surface: %s: %s", e.Element, e.Reason)
}

// Is lets errors.Is match ErrInvalidField.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// Message is the flash text for the error.
func (e *FieldError) Message() string {
	return Label(e.Element) + " " + e.Reason
}
