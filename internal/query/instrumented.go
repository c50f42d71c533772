package query

import (
	"context"
	"iter"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Recorder receives one observation per engine call. *metrics.Metrics
// implements it.
type Recorder interface {
	ObserveQuery(operation, backend string, elapsed time.Duration, err error)
}

// Instrumented reports the latency and outcome of every call on an Engine.
type Instrumented struct {
	next     Engine
	backend  string
	recorder Recorder
}

func NewInstrumented(next Engine, backend string, recorder Recorder) *Instrumented {
	return &Instrumented{next: next, backend: backend, recorder: recorder}
}

// track starts a timer for op; call the result with the call's error.
func (e *Instrumented) track(op string) func(error) {
	start := time.Now()
	return func(err error) {
		e.recorder.ObserveQuery(op, e.backend, time.Since(start), err)
	}
}

func (e *Instrumented) LookupEntries(ctx context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	done := e.track("lookup_entries")
	entries, err := e.next.LookupEntries(ctx, lemma, pos)
	done(err)
	return entries, err
}

func (e *Instrumented) GetSynset(ctx context.Context, id string) (lexicon.Synset, error) {
	done := e.track("get_synset")
	synset, err := e.next.GetSynset(ctx, id)
	done(err)
	return synset, err
}

func (e *Instrumented) GetSense(ctx context.Context, id string) (lexicon.Sense, error) {
	done := e.track("get_sense")
	sense, err := e.next.GetSense(ctx, id)
	done(err)
	return sense, err
}

func (e *Instrumented) GetSensesForEntry(ctx context.Context, entryID string) ([]lexicon.Sense, error) {
	done := e.track("get_senses_for_entry")
	senses, err := e.next.GetSensesForEntry(ctx, entryID)
	done(err)
	return senses, err
}

func (e *Instrumented) GetSensesForSynset(ctx context.Context, synsetID string) ([]lexicon.Sense, error) {
	done := e.track("get_senses_for_synset")
	senses, err := e.next.GetSensesForSynset(ctx, synsetID)
	done(err)
	return senses, err
}

func (e *Instrumented) GetRelatedSenses(ctx context.Context, senseID string, kind lexicon.SenseRelType) ([]lexicon.Sense, error) {
	done := e.track("get_related_senses")
	senses, err := e.next.GetRelatedSenses(ctx, senseID, kind)
	done(err)
	return senses, err
}

func (e *Instrumented) GetRelatedSynsets(ctx context.Context, synsetID string, kind lexicon.SynsetRelType) ([]lexicon.Synset, error) {
	done := e.track("get_related_synsets")
	synsets, err := e.next.GetRelatedSynsets(ctx, synsetID, kind)
	done(err)
	return synsets, err
}

func (e *Instrumented) GetRandomEntry(ctx context.Context) (lexicon.LexicalEntry, error) {
	done := e.track("get_random_entry")
	entry, err := e.next.GetRandomEntry(ctx)
	done(err)
	return entry, err
}

// AllEntries is observed once, when the scan finishes or is abandoned.
func (e *Instrumented) AllEntries(ctx context.Context) iter.Seq2[lexicon.LexicalEntry, error] {
	return func(yield func(lexicon.LexicalEntry, error) bool) {
		done := e.track("all_entries")
		var scanErr error
		defer func() { done(scanErr) }()
		for entry, err := range e.next.AllEntries(ctx) {
			if err != nil {
				scanErr = err
			}
			if !yield(entry, err) {
				return
			}
		}
	}
}

func (e *Instrumented) GetEntryIDForSense(ctx context.Context, senseID string) (string, bool, error) {
	done := e.track("get_entry_id_for_sense")
	id, ok, err := e.next.GetEntryIDForSense(ctx, senseID)
	done(err)
	return id, ok, err
}

func (e *Instrumented) GetEntryByID(ctx context.Context, entryID string) (lexicon.LexicalEntry, bool, error) {
	done := e.track("get_entry_by_id")
	entry, ok, err := e.next.GetEntryByID(ctx, entryID)
	done(err)
	return entry, ok, err
}

func (e *Instrumented) Lexicons(ctx context.Context) ([]lexicon.Lexicon, error) {
	done := e.track("lexicons")
	lexicons, err := e.next.Lexicons(ctx)
	done(err)
	return lexicons, err
}

func (e *Instrumented) Close() error {
	return e.next.Close()
}
