package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/randytsao24/experienceintel/internal/features"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, title string, err error) {
	writeJSON(w, status, map[string]any{
		"error":   title,
		"message": err.Error(),
	})
}

// badRequest marks an error caused by the client's input
type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

// isClientError reports whether err should be answered with 400
func isClientError(err error) bool {
	var br *badRequest
	var fe *features.FieldError
	return errors.As(err, &br) || errors.As(err, &fe) || errors.Is(err, features.ErrWidth)
}

// decodeBody reads a JSON object into dst. Every key in required must be
// present and unknown keys are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, required []string) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &badRequest{fmt.Errorf("reading body: %w", err)}
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return &badRequest{fmt.Errorf("body must be a JSON object: %w", err)}
	}
	for _, k := range required {
		if _, ok := keys[k]; !ok {
			return &badRequest{fmt.Errorf("missing field %q", k)}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &badRequest{fmt.Errorf("invalid body: %w", err)}
	}
	return nil
}
