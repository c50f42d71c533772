package api

import (
	"net/http"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/middleware"
)

// NewRouter builds the full HTTP handler. m and limiter may be nil.
//
// Route table:
//
//	GET /api/v1/entries?lemma=&pos=
//	GET /api/v1/entries/{id}
//	GET /api/v1/entries/{id}/senses
//	GET /api/v1/senses/{id}
//	GET /api/v1/senses/{id}/entry
//	GET /api/v1/senses/{id}/related?rel=
//	GET /api/v1/synsets/{id}
//	GET /api/v1/synsets/{id}/senses
//	GET /api/v1/synsets/{id}/related?rel=
//	GET /api/v1/synsets/{id}/synonyms?exclude=
//	GET /api/v1/random
//	GET /api/v1/lexicons
//	GET /api/v1/define?word=&pos=
//	GET /health/live
//	GET /health/ready
//
// Middleware chain (outermost first):
//
//	RequestID → CORS → Metrics → RateLimit → mux
func NewRouter(h *Handler, checker *health.Checker, m *metrics.Metrics, limiter *middleware.Limiter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	mux.HandleFunc("GET /api/v1/entries", h.LookupEntries)
	mux.HandleFunc("GET /api/v1/entries/{id}", h.GetEntry)
	mux.HandleFunc("GET /api/v1/entries/{id}/senses", h.GetEntrySenses)

	mux.HandleFunc("GET /api/v1/senses/{id}", h.GetSense)
	mux.HandleFunc("GET /api/v1/senses/{id}/entry", h.GetSenseEntry)
	mux.HandleFunc("GET /api/v1/senses/{id}/related", h.GetRelatedSenses)

	mux.HandleFunc("GET /api/v1/synsets/{id}", h.GetSynset)
	mux.HandleFunc("GET /api/v1/synsets/{id}/senses", h.GetSynsetSenses)
	mux.HandleFunc("GET /api/v1/synsets/{id}/related", h.GetRelatedSynsets)
	mux.HandleFunc("GET /api/v1/synsets/{id}/synonyms", h.GetSynonyms)

	mux.HandleFunc("GET /api/v1/random", h.RandomEntry)
	mux.HandleFunc("GET /api/v1/lexicons", h.Lexicons)
	mux.HandleFunc("GET /api/v1/define", h.Define)

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.CORS(middleware.DefaultCORSConfig()),
	}
	if m != nil {
		mws = append(mws, middleware.Metrics(m))
	}
	if limiter != nil {
		mws = append(mws, middleware.RateLimit(limiter))
	}
	return middleware.Chain(mux, mws...)
}
