package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
	Links       *int   `json:"links,omitempty"`
	Revision    uint64 `json:"revision,omitempty"`
	LastSavedAt string `json:"last_saved_at,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of storage, the session and the homepage import.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"storage":  checkStorage(r.Context(), d),
			"session":  sessionStatus(d),
			"homepage": homepageStatus(d),
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       overallMode(components),
			Components: components,
		})
	}
}

// overallMode is "critical" without a live configuration and "degraded"
// when writes may not survive a restart.
func overallMode(components map[string]componentStatus) string {
	if s, ok := components["session"]; ok && !s.OK {
		return "critical"
	}
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded"
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Mode: d.StorageKind, Impact: "changes-not-persisted", Error: "not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: d.StorageKind, Impact: "changes-not-persisted", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: d.StorageKind}
}

func sessionStatus(d deps.Deps) componentStatus {
	cfg, ok := d.Views.Config()
	if !ok {
		return componentStatus{OK: false, Error: "not initialized"}
	}
	links := len(cfg.Links.Items)
	st := componentStatus{OK: true, Links: &links, Revision: d.Views.Revision()}
	if saved := d.Views.LastSavedAt(); !saved.IsZero() {
		st.LastSavedAt = saved.UTC().Format(time.RFC3339)
	}
	return st
}

func homepageStatus(d deps.Deps) componentStatus {
	if !d.HomepageEnabled {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "scheduled"}
}
