package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/oaigo/oaigo/internal/utils"
)

// TransportError reports a network-level failure: the request never reached
// the API, or the connection died before a complete response was read. The
// underlying cause is available via [errors.Unwrap].
type TransportError struct {
	// Op identifies the phase that failed, e.g. "call", "stream open" or
	// "stream read".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx HTTP response from the API. When the response
// body carries the standard error envelope its fields are parsed into Code,
// Type, Param and Message; otherwise Raw holds the body as received.
type APIError struct {
	StatusCode int
	Code       string
	Type       string
	Param      string
	Message    string
	Raw        string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: status %d, type %q: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("API error: status %d: %s", e.StatusCode, utils.TruncateString(e.Raw, utils.DefaultMaxStringLength))
}

// IsRateLimit reports whether the error is a 429 rate-limit rejection.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsAuth reports whether the error is an authentication or permission
// failure (401 or 403).
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsServer reports whether the API itself failed (5xx).
func (e *APIError) IsServer() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// errorEnvelope is the standard error body shape returned by the API:
//
//	{"error": {"message": "...", "type": "...", "param": "...", "code": "..."}}
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewAPIError builds an APIError from a non-2xx response. It parses the
// standard error envelope when present and falls back to keeping the raw
// body otherwise, so no diagnostic information is lost.
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Raw:        string(body),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.Type = envelope.Error.Type
		apiErr.Param = envelope.Error.Param
		apiErr.Code = envelope.Error.Code
	}
	return apiErr
}

// AsAPIError extracts an *APIError from err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// DecodeError reports a response that arrived intact but could not be
// decoded into the expected structure. Payload holds a truncated copy of the
// offending input for diagnostics.
type DecodeError struct {
	Err     error
	Payload string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding response: %v (payload: %s)", e.Err, utils.TruncateString(e.Payload, utils.DefaultMaxStringLength))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a violation of the event-stream framing, such as an
// event line exceeding the maximum size.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("stream protocol error: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
