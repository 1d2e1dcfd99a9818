package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/mw"
)

func init() { Register("config", registerConfig) }

func registerConfig(r chi.Router, d deps.Deps) {
	api := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))

	api.Get("/api/meta", handlers.Meta(d))
	api.Get("/api/config", handlers.ExportConfig(d))
	api.Put("/api/config", handlers.ImportConfig(d))
	api.Post("/api/config/validate", handlers.ValidateConfig(d))
	api.Post("/api/config/reset", handlers.ResetConfig(d))
	api.Patch("/api/settings", handlers.PatchSettings(d))

	api.Get("/api/links", handlers.ListLinks(d))
	api.Post("/api/links", handlers.CreateLink(d))
	api.Get("/api/links/grouped", handlers.GroupedLinks(d))
	api.Post("/api/links/reorder", handlers.ReorderLinks(d))
	api.Get("/api/links/{id}", handlers.GetLink(d))
	api.Put("/api/links/{id}", handlers.UpdateLink(d))
	api.Delete("/api/links/{id}", handlers.DeleteLink(d))

	api.Get("/api/tags", handlers.Tags(d))
	api.Get("/api/sections", handlers.ListSections(d))
	api.Post("/api/sections", handlers.CreateSection(d))
	api.Delete("/api/sections/{id}", handlers.DeleteSection(d))

	api.Put("/api/widgets/layout", handlers.SetWidgetLayout(d))
	api.Patch("/api/widgets/{id}", handlers.PatchWidget(d))
}
