package fakebackend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/wolfman30/dental-clinic-client/internal/http/middleware"
)

const maxBodyBytes = 1 << 20

// apiError is a failure with the status the backend answers it with.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func badRequest(msg string) error { return &apiError{status: http.StatusBadRequest, msg: msg} }

func notFound(msg string) error { return &apiError{status: http.StatusNotFound, msg: msg} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// writeErr maps err onto {"error": ...}; unknown errors become 500.
func writeErr(w http.ResponseWriter, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		middleware.WriteError(w, apiErr.status, apiErr.msg)
		return
	}
	middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, badRequest("Invalid request body")
	}
	return body, nil
}

func decode(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest("Invalid request body")
	}
	return nil
}
