package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

// SetWidgetLayout replaces the widget grid layout and returns the layout
// that was kept.
func SetWidgetLayout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeRaw(w, r)
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		layout, err := schema.ParseLayout(raw)
		if err != nil {
			writeEditError(w, d, err)
			return
		}

		cfg, err := d.Session.Update(r.Context(), edit.SetLayout(layout))
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg.Widgets.Layout)
	}
}

// PatchWidget edits the title and type-specific settings of one widget.
func PatchWidget(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var p edit.WidgetPatch
		if err := decodeBody(w, r, &p); err != nil {
			writeEditError(w, d, err)
			return
		}
		if !commit(w, r, d, edit.EditWidget(id, p, "")) {
			return
		}
		wd, _ := d.Views.Widget(id)
		writeJSON(w, http.StatusOK, wd)
	}
}

// PatchSettings applies the settings panel toggles and returns the new
// configuration.
func PatchSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p edit.SettingsPatch
		if err := decodeBody(w, r, &p); err != nil {
			writeEditError(w, d, err)
			return
		}
		cfg, err := d.Session.Update(r.Context(), edit.ApplySettings(p))
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, configResponse{OK: true, Config: cfg})
	}
}
