package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrMissingBaseURL is returned by New when no service URL is given.
	ErrMissingBaseURL = errors.New("client: base url is required")
	// ErrInvalidID is returned when an identifier is not positive.
	ErrInvalidID = errors.New("client: id must be positive")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Operation  string
	StatusCode int
	Status     string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e == nil {
		return "client: api error"
	}
	if e.Message != "" && e.Message != e.Status {
		return fmt.Sprintf("client: %s: %d %s: %s", e.Operation, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("client: %s: %d %s", e.Operation, e.StatusCode, e.Status)
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == http.StatusNotFound
}

// MessageOf returns the text a user should see for err: the service message
// for API errors, the error text otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Status
	}
	return err.Error()
}

type errorBody struct {
	Message string `json:"message"`
}

func newAPIError(op string, resp *http.Response, body []byte, requestID string) *APIError {
	apiErr := &APIError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		RequestID:  requestID,
	}

	var payload errorBody
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	if apiErr.Message == "" {
		apiErr.Message = apiErr.Status
	}
	return apiErr
}

// statusText prefers the reason phrase the server sent over the canonical one.
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
