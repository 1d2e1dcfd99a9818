package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/icons"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/views"
)

// linkView is a link as sent to the page, with its icon already resolved.
type linkView struct {
	schema.LinkItem
	IconURL string `json:"iconUrl,omitempty"`
}

type groupView struct {
	Section schema.LinkSection `json:"section"`
	Items   []linkView         `json:"items"`
}

func toLinkView(it schema.LinkItem) linkView {
	u, _ := icons.ResolveURL(it.Icon, it.URL)
	return linkView{LinkItem: it, IconURL: u}
}

func toLinkViews(items []schema.LinkItem) []linkView {
	out := make([]linkView, 0, len(items))
	for _, it := range items {
		out = append(out, toLinkView(it))
	}
	return out
}

func filterParams(r *http.Request) (query, tag string) {
	q := r.URL.Query()
	return q.Get("q"), q.Get("tag")
}

// ListLinks returns the links matching ?q= and ?tag= in display order.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, tag := filterParams(r)
		writeJSON(w, http.StatusOK, toLinkViews(d.Views.Filtered(query, tag)))
	}
}

// GroupedLinks returns the filtered links per ordered section. Sections
// with no match are omitted unless ?empty=1.
func GroupedLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, tag := filterParams(r)
		groups := d.Views.Grouped(query, tag, r.URL.Query().Get("empty") == "1")

		out := make([]groupView, 0, len(groups))
		for _, g := range groups {
			out = append(out, groupView{Section: g.Section, Items: toLinkViews(g.Items)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		it, ok := d.Views.Link(chi.URLParam(r, "id"))
		if !ok {
			writeFailure(w, http.StatusNotFound, edit.ErrLinkNotFound.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, toLinkView(it))
	}
}

// parseLinkBody validates a link from the request body. A missing id is
// generated and a scheme-less url gets https.
func parseLinkBody(w http.ResponseWriter, r *http.Request, id string) (schema.LinkItem, error) {
	raw, err := decodeRaw(w, r)
	if err != nil {
		return schema.LinkItem{}, err
	}
	if obj, ok := raw.(map[string]any); ok {
		if id != "" {
			obj["id"] = id
		} else if s, _ := obj["id"].(string); strings.TrimSpace(s) == "" {
			obj["id"] = edit.NewLinkID()
		}
		if s, ok := obj["url"].(string); ok {
			obj["url"] = edit.NormalizeURL(s)
		}
	}
	return schema.ParseLinkItem(raw)
}

// CreateLink adds a link after the existing ones of its section.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := parseLinkBody(w, r, "")
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		if !commit(w, r, d, edit.AddLink(item)) {
			return
		}
		saved, _ := d.Views.Link(item.ID)
		writeJSON(w, http.StatusCreated, toLinkView(saved))
	}
}

// UpdateLink replaces the link named in the path.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		item, err := parseLinkBody(w, r, id)
		if err != nil {
			writeEditError(w, d, err)
			return
		}
		if !commit(w, r, d, edit.SaveLink(item)) {
			return
		}
		saved, _ := d.Views.Link(id)
		writeJSON(w, http.StatusOK, toLinkView(saved))
	}
}

func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !commit(w, r, d, edit.DeleteLink(chi.URLParam(r, "id"))) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type reorderRequest struct {
	IDs       []string `json:"ids"`
	SectionID string   `json:"sectionId,omitempty"`
}

// ReorderLinks renumbers the listed links within the optional section scope
// and returns the links of that scope in their new order.
func ReorderLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeEditError(w, d, err)
			return
		}
		if !commit(w, r, d, edit.ReorderLinks(req.IDs, views.Scope{SectionID: req.SectionID})) {
			return
		}

		items := d.Views.Filtered("", "")
		if req.SectionID != "" {
			scoped := make([]schema.LinkItem, 0, len(items))
			for _, it := range items {
				if it.SectionID == req.SectionID {
					scoped = append(scoped, it)
				}
			}
			items = scoped
		}
		writeJSON(w, http.StatusOK, toLinkViews(items))
	}
}

// Tags returns tag counts over all links, most used first.
func Tags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags := d.Views.Tags()
		if tags == nil {
			tags = []views.TagCount{}
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// commit runs fn through the session and writes the error response when it
// fails. It reports whether the change was committed.
func commit(w http.ResponseWriter, r *http.Request, d deps.Deps, fn session.Updater) bool {
	if _, err := d.Session.Update(r.Context(), fn); err != nil {
		writeEditError(w, d, err)
		return false
	}
	return true
}
