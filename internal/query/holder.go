package query

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// Holder is an Engine whose backing engine is installed once loading
// completes. Until then every call fails with ErrState. Readers observe
// either no engine or a fully built one.
type Holder struct {
	engine atomic.Pointer[engineBox]
}

type engineBox struct {
	Engine
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set installs eng and returns the previously installed engine, if any, so
// the caller can close it.
func (h *Holder) Set(eng Engine) Engine {
	prev := h.engine.Swap(&engineBox{eng})
	if prev == nil {
		return nil
	}
	return prev.Engine
}

// Ready reports whether an engine is installed.
func (h *Holder) Ready() bool {
	return h.engine.Load() != nil
}

func (h *Holder) current() (Engine, error) {
	box := h.engine.Load()
	if box == nil {
		return nil, fmt.Errorf("lexicon not loaded: %w", apperrors.ErrState)
	}
	return box.Engine, nil
}

func (h *Holder) LookupEntries(ctx context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.LookupEntries(ctx, lemma, pos)
}

func (h *Holder) GetSynset(ctx context.Context, id string) (lexicon.Synset, error) {
	eng, err := h.current()
	if err != nil {
		return lexicon.Synset{}, err
	}
	return eng.GetSynset(ctx, id)
}

func (h *Holder) GetSense(ctx context.Context, id string) (lexicon.Sense, error) {
	eng, err := h.current()
	if err != nil {
		return lexicon.Sense{}, err
	}
	return eng.GetSense(ctx, id)
}

func (h *Holder) GetSensesForEntry(ctx context.Context, entryID string) ([]lexicon.Sense, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.GetSensesForEntry(ctx, entryID)
}

func (h *Holder) GetSensesForSynset(ctx context.Context, synsetID string) ([]lexicon.Sense, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.GetSensesForSynset(ctx, synsetID)
}

func (h *Holder) GetRelatedSenses(ctx context.Context, senseID string, kind lexicon.SenseRelType) ([]lexicon.Sense, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.GetRelatedSenses(ctx, senseID, kind)
}

func (h *Holder) GetRelatedSynsets(ctx context.Context, synsetID string, kind lexicon.SynsetRelType) ([]lexicon.Synset, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.GetRelatedSynsets(ctx, synsetID, kind)
}

func (h *Holder) GetRandomEntry(ctx context.Context) (lexicon.LexicalEntry, error) {
	eng, err := h.current()
	if err != nil {
		return lexicon.LexicalEntry{}, err
	}
	return eng.GetRandomEntry(ctx)
}

func (h *Holder) AllEntries(ctx context.Context) iter.Seq2[lexicon.LexicalEntry, error] {
	eng, err := h.current()
	if err != nil {
		return func(yield func(lexicon.LexicalEntry, error) bool) {
			yield(lexicon.LexicalEntry{}, err)
		}
	}
	return eng.AllEntries(ctx)
}

func (h *Holder) GetEntryIDForSense(ctx context.Context, senseID string) (string, bool, error) {
	eng, err := h.current()
	if err != nil {
		return "", false, err
	}
	return eng.GetEntryIDForSense(ctx, senseID)
}

func (h *Holder) GetEntryByID(ctx context.Context, entryID string) (lexicon.LexicalEntry, bool, error) {
	eng, err := h.current()
	if err != nil {
		return lexicon.LexicalEntry{}, false, err
	}
	return eng.GetEntryByID(ctx, entryID)
}

func (h *Holder) Lexicons(ctx context.Context) ([]lexicon.Lexicon, error) {
	eng, err := h.current()
	if err != nil {
		return nil, err
	}
	return eng.Lexicons(ctx)
}

// Close closes the installed engine, if any.
func (h *Holder) Close() error {
	box := h.engine.Swap(nil)
	if box == nil {
		return nil
	}
	return box.Engine.Close()
}
