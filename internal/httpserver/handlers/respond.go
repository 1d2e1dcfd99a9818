package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
)

// maxBodyBytes bounds request bodies, imported documents included.
const maxBodyBytes = 2 << 20

type errorResponse struct {
	OK     bool           `json:"ok"`
	Error  string         `json:"error"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCode writes the {"error": code} body of the proxy endpoints.
func writeCode(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeFailure(w http.ResponseWriter, status int, msg string, issues []schema.Issue) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg, Issues: issues})
}

// writeEditError maps a failed mutation to a response. Validation problems
// are the caller's fault; anything unknown is logged as a server error.
func writeEditError(w http.ResponseWriter, d deps.Deps, err error) {
	var verr *schema.ValidationError
	var serr *schema.SyntaxError
	switch {
	case errors.As(err, &verr):
		writeFailure(w, http.StatusBadRequest, verr.Error(), verr.Issues)
	case errors.As(err, &serr):
		writeFailure(w, http.StatusBadRequest, serr.Error(), nil)
	case errors.Is(err, session.ErrNotReady):
		writeFailure(w, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, edit.ErrLinkNotFound),
		errors.Is(err, edit.ErrSectionNotFound),
		errors.Is(err, edit.ErrWidgetNotFound):
		writeFailure(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, edit.ErrSectionExists):
		writeFailure(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, edit.ErrWidgetKind), errors.Is(err, edit.ErrInvalidTimezone):
		writeFailure(w, http.StatusBadRequest, err.Error(), nil)
	default:
		d.Logger.Error("configuration change failed", logger.Error(err))
		writeFailure(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// readBody returns the request body, refusing anything over maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &schema.SyntaxError{Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return data, nil
}

// decodeBody reads the body and decodes it into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &schema.SyntaxError{Err: err}
	}
	return nil
}

// decodeRaw reads the body as an untyped JSON value for the schema parsers.
func decodeRaw(w http.ResponseWriter, r *http.Request) (any, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	return schema.DecodeJSON(data)
}
