package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/mw"
)

func init() { Register("search", registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	h := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	h.Get("/search", handlers.Search(d))
	h.Get("/api/search/bangs", handlers.Bangs(d))
}
