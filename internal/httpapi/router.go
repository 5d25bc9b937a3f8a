// Package httpapi wires the chi router and HTTP handlers for /trains and
// /works (§6).
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mini-rodalies-3d/delaymap/internal/config"
	"github.com/mini-rodalies-3d/delaymap/internal/delay"
	"github.com/mini-rodalies-3d/delaymap/internal/schedulestore"
	"github.com/mini-rodalies-3d/delaymap/internal/telemetry"
)

// NewRouter builds the full chi router for the service, CORS enabled for
// all origins per §6.
func NewRouter(cfg *config.Config, store *schedulestore.Store, reporter telemetry.Reporter) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	trains := &trainsHandler{
		store:       store,
		delayFetch:  delay.NewFetcher(cfg.TripUpdatesURL, cfg.UpstreamTimeout),
		reporter:    reporter,
		location:    loc,
	}
	worksH := &worksHandler{
		store:        store,
		worksFeedURL: cfg.WorksFeedURL,
		timeout:      cfg.UpstreamTimeout,
		reporter:     reporter,
	}

	r.Get("/trains", trains.ServeHTTP)
	r.Get("/works", worksH.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func languageOf(r *http.Request) string {
	lang := r.URL.Query().Get("language")
	switch lang {
	case "nl", "en", "fr", "de":
		return lang
	default:
		return "en"
	}
}

func worksFeedSuffix(language string) string {
	switch language {
	case "nl":
		return "nny"
	case "fr":
		return "fny"
	case "de":
		return "dny"
	default:
		return "eny"
	}
}
