package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

// ListSections returns the sections in display order.
func ListSections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections := d.Views.Sections()
		if sections == nil {
			sections = []schema.LinkSection{}
		}
		writeJSON(w, http.StatusOK, sections)
	}
}

type sectionRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Sort  *int   `json:"sort"`
}

func CreateSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sectionRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeEditError(w, d, err)
			return
		}
		id := req.ID
		if id == "" {
			id = edit.Slug(req.Title)
		}
		if !commit(w, r, d, edit.AddSection(id, req.Title, req.Sort)) {
			return
		}
		sec, _ := d.Views.Section(id)
		writeJSON(w, http.StatusCreated, sec)
	}
}

// DeleteSection removes a section; its links stay but are no longer shown
// in grouped views.
func DeleteSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !commit(w, r, d, edit.DeleteSection(chi.URLParam(r, "id"))) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
