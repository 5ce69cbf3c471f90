package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidMethod is returned before any network traffic when the method is
// not one of get, post, put or delete.
var ErrInvalidMethod = errors.New("gateway: invalid method")

// Kind classifies a failed gateway call.
type Kind int

const (
	// KindTransport means the request never reached the server or no response came back.
	KindTransport Kind = iota + 1
	// KindServer means the backend answered non-2xx with a structured error payload.
	KindServer
	// KindUnclassified means the backend answered non-2xx without a usable payload.
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindUnclassified:
		return "unclassified"
	default:
		return "unknown"
	}
}

// Error is the normalized failure returned by every gateway call.
//
// Message holds the server's error value when one was provided, otherwise the
// synthesized "Failed to <method> <path>" text.
type Error struct {
	Kind    Kind
	Method  Method
	Path    string
	Status  int
	Message string
	// Payload is the raw JSON value of the server's "error" field (KindServer only).
	Payload json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the error the way the backend shapes failures:
// {"error": <value>}.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e.Kind == KindServer && len(e.Payload) > 0 {
		return json.Marshal(map[string]json.RawMessage{"error": e.Payload})
	}
	return json.Marshal(map[string]string{"error": e.Message})
}

// GenericMessage is the message substituted when the backend gives no usable
// error payload. method and path are used verbatim.
func GenericMessage(method Method, path string) string {
	return fmt.Sprintf("Failed to %s %s", method, path)
}

func transportError(method Method, path string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Method:  method,
		Path:    path,
		Message: GenericMessage(method, path),
		Err:     err,
	}
}

// normalizeResponse builds the error for a non-2xx response.
func normalizeResponse(method Method, path string, status int, body []byte) *Error {
	e := &Error{
		Kind:    KindUnclassified,
		Method:  method,
		Path:    path,
		Status:  status,
		Message: GenericMessage(method, path),
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return e
	}
	raw, ok := envelope["error"]
	if !ok || isEmptyJSON(raw) {
		return e
	}

	e.Kind = KindServer
	e.Payload = raw
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		e.Message = text
	} else {
		e.Message = string(raw)
	}
	return e
}

func isEmptyJSON(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", `""`, "false":
		return true
	}
	return false
}

// StatusCode returns the HTTP status carried by a gateway error, or 0.
func StatusCode(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a gateway error for a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the session.
func IsUnauthorized(err error) bool {
	status := StatusCode(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
