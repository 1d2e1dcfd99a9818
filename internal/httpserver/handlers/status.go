package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/probe"
)

// Status probes ?url= and always answers 200 {ok, status, ms} for allowed
// targets, network failures included. Rejected targets get 400 with
// "invalid_url", "invalid_protocol" or "blocked".
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		target := r.URL.Query().Get("url")
		res, err := d.Prober.Check(r.Context(), target)
		if err != nil {
			code := probe.ErrInvalidURL.Error()
			for _, known := range []error{probe.ErrInvalidURL, probe.ErrInvalidProtocol, probe.ErrBlocked} {
				if errors.Is(err, known) {
					code = known.Error()
					break
				}
			}
			d.Logger.Debug("status probe rejected",
				logger.String("url", target),
				logger.String("reason", code))
			writeCode(w, http.StatusBadRequest, code)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
