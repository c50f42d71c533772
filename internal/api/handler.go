// Package api serves the query engine as read-only JSON over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/display"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/resilience"
)

// Handler answers /api/v1 requests against an engine. Each request runs
// under its own deadline.
type Handler struct {
	eng     query.Engine
	timeout time.Duration
	logger  *slog.Logger
}

func NewHandler(eng query.Engine, timeout time.Duration) *Handler {
	return &Handler{
		eng:     eng,
		timeout: timeout,
		logger:  slog.Default().With("component", "api"),
	}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

// serve runs fn under the request deadline and writes its result as JSON.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context) (any, error)) {
	var result any
	err := resilience.WithTimeout(r.Context(), h.timeout, op, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		h.writeErr(w, r, op, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) LookupEntries(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "lookup_entries", func(ctx context.Context) (any, error) {
		lemma := r.URL.Query().Get("lemma")
		if lemma == "" {
			return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "lemma is required")
		}
		pos, err := posParam(r)
		if err != nil {
			return nil, err
		}
		entries, err := h.eng.LookupEntries(ctx, lemma, pos)
		if err != nil {
			return nil, err
		}
		return list(entries), nil
	})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_entry", func(ctx context.Context) (any, error) {
		return h.entry(ctx, r.PathValue("id"))
	})
}

func (h *Handler) entry(ctx context.Context, id string) (lexicon.LexicalEntry, error) {
	entry, ok, err := h.eng.GetEntryByID(ctx, id)
	if err != nil {
		return lexicon.LexicalEntry{}, err
	}
	if !ok {
		return lexicon.LexicalEntry{}, apperrors.NotFoundf("entry %q", id)
	}
	return entry, nil
}

func (h *Handler) GetEntrySenses(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_entry_senses", func(ctx context.Context) (any, error) {
		senses, err := h.eng.GetSensesForEntry(ctx, r.PathValue("id"))
		if err != nil {
			return nil, err
		}
		return list(senses), nil
	})
}

func (h *Handler) GetSense(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_sense", func(ctx context.Context) (any, error) {
		return h.eng.GetSense(ctx, r.PathValue("id"))
	})
}

// GetSenseEntry returns the entry that owns a sense.
func (h *Handler) GetSenseEntry(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_sense_entry", func(ctx context.Context) (any, error) {
		id := r.PathValue("id")
		entryID, ok, err := h.eng.GetEntryIDForSense(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NotFoundf("sense %q", id)
		}
		return h.entry(ctx, entryID)
	})
}

func (h *Handler) GetRelatedSenses(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_related_senses", func(ctx context.Context) (any, error) {
		rel := r.URL.Query().Get("rel")
		kind := lexicon.ParseSenseRelType(rel)
		if rel == "" || (!kind.Known() && rel != string(kind)) {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "unknown sense relation %q", rel)
		}
		senses, err := h.eng.GetRelatedSenses(ctx, r.PathValue("id"), kind)
		if err != nil {
			return nil, err
		}
		return list(senses), nil
	})
}

func (h *Handler) GetSynset(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_synset", func(ctx context.Context) (any, error) {
		return h.eng.GetSynset(ctx, r.PathValue("id"))
	})
}

func (h *Handler) GetSynsetSenses(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_synset_senses", func(ctx context.Context) (any, error) {
		senses, err := h.eng.GetSensesForSynset(ctx, r.PathValue("id"))
		if err != nil {
			return nil, err
		}
		return list(senses), nil
	})
}

func (h *Handler) GetRelatedSynsets(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_related_synsets", func(ctx context.Context) (any, error) {
		rel := r.URL.Query().Get("rel")
		kind := lexicon.ParseSynsetRelType(rel)
		if rel == "" || (!kind.Known() && rel != string(kind)) {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "unknown synset relation %q", rel)
		}
		synsets, err := h.eng.GetRelatedSynsets(ctx, r.PathValue("id"), kind)
		if err != nil {
			return nil, err
		}
		return list(synsets), nil
	})
}

func (h *Handler) GetSynonyms(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_synonyms", func(ctx context.Context) (any, error) {
		lemmas, err := query.Synonyms(ctx, h.eng, r.PathValue("id"), r.URL.Query().Get("exclude"))
		if err != nil {
			return nil, err
		}
		return list(lemmas), nil
	})
}

func (h *Handler) RandomEntry(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "random_entry", func(ctx context.Context) (any, error) {
		return h.eng.GetRandomEntry(ctx)
	})
}

func (h *Handler) Lexicons(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "lexicons", func(ctx context.Context) (any, error) {
		lexicons, err := h.eng.Lexicons(ctx)
		if err != nil {
			return nil, err
		}
		return list(lexicons), nil
	})
}

// Define returns the same views the define command prints.
func (h *Handler) Define(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "define", func(ctx context.Context) (any, error) {
		word := r.URL.Query().Get("word")
		if word == "" {
			return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "word is required")
		}
		pos, err := posParam(r)
		if err != nil {
			return nil, err
		}
		views, err := display.Define(ctx, h.eng, word, pos)
		if err != nil {
			return nil, err
		}
		return list(views), nil
	})
}

func posParam(r *http.Request) (*lexicon.PartOfSpeech, error) {
	raw := r.URL.Query().Get("pos")
	if raw == "" {
		return nil, nil
	}
	pos, err := lexicon.ParsePartOfSpeech(raw)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "unknown part of speech %q", raw)
	}
	return &pos, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// writeErr maps err to a status code. Server-side failures are logged and
// answered with a generic message.
func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := apperrors.HTTPStatusCode(err)
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "component", "api", "operation", op, "error", err)
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}
