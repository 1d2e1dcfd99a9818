package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

// ExportConfig returns the live configuration as indented JSON.
// ?download=1 adds an attachment disposition for the export button.
func ExportConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := d.Session.ExportRaw(r.Context())
		if err != nil {
			writeEditError(w, d, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if r.URL.Query().Get("download") == "1" {
			w.Header().Set("Content-Disposition", `attachment; filename="dawnpage-config.json"`)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

type configResponse struct {
	OK     bool             `json:"ok"`
	Config schema.AppConfig `json:"config"`
}

// ImportConfig replaces the live configuration with the request body.
// Invalid documents are rejected as a whole.
func ImportConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeEditError(w, d, err)
			return
		}

		cfg, err := d.Session.ImportRaw(r.Context(), body)
		if err != nil {
			d.Logger.Info("configuration import rejected", logger.Error(err))
			writeEditError(w, d, err)
			return
		}

		d.Logger.Info("configuration imported",
			logger.Int("links", len(cfg.Links.Items)),
			logger.Int("widgets", len(cfg.Widgets.Items)))
		writeJSON(w, http.StatusOK, configResponse{OK: true, Config: cfg})
	}
}

// ValidateConfig previews an import: same pipeline, nothing committed.
func ValidateConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeEditError(w, d, err)
			return
		}

		cfg, err := d.Session.ValidateRaw(body)
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, configResponse{OK: true, Config: cfg})
	}
}

// ResetConfig restores the default configuration.
func ResetConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Session.Reset(r.Context())
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		d.Logger.Info("configuration reset to defaults")
		writeJSON(w, http.StatusOK, configResponse{OK: true, Config: cfg})
	}
}

type metaResponse struct {
	Ready       bool       `json:"ready"`
	Revision    uint64     `json:"revision"`
	LastSavedAt *time.Time `json:"lastSavedAt,omitempty"`
}

// Meta tells the page whether the configuration is loaded and when it was
// last saved.
func Meta(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := metaResponse{Ready: d.Views.Ready(), Revision: d.Views.Revision()}
		if saved := d.Views.LastSavedAt(); !saved.IsZero() {
			res.LastSavedAt = &saved
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, res)
	}
}
