// Package query defines the read API shared by every storage backend and
// the helpers layered on top of it.
package query

import (
	"context"
	"iter"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Engine is the read-only query surface over a loaded lexical resource. The
// in-memory and relational backends implement it with identical results.
//
// Lookups that dereference an id return an error wrapping ErrNotFound when
// the record does not exist. Relation traversals from an unknown id return
// an empty result, since a node may have no edges of a given kind.
type Engine interface {
	// LookupEntries matches the case-folded lemma, restricted to pos when it
	// is non-nil. No match is an empty result, not an error.
	LookupEntries(ctx context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error)
	GetSynset(ctx context.Context, id string) (lexicon.Synset, error)
	GetSense(ctx context.Context, id string) (lexicon.Sense, error)
	GetSensesForEntry(ctx context.Context, entryID string) ([]lexicon.Sense, error)
	// GetSensesForSynset returns the derived member senses of a synset.
	GetSensesForSynset(ctx context.Context, synsetID string) ([]lexicon.Sense, error)
	GetRelatedSenses(ctx context.Context, senseID string, kind lexicon.SenseRelType) ([]lexicon.Sense, error)
	GetRelatedSynsets(ctx context.Context, synsetID string, kind lexicon.SynsetRelType) ([]lexicon.Synset, error)
	// GetRandomEntry picks uniformly over all entries and fails only when
	// none are loaded.
	GetRandomEntry(ctx context.Context) (lexicon.LexicalEntry, error)
	// AllEntries scans every entry. It is meant for export and batch jobs,
	// not for hot paths.
	AllEntries(ctx context.Context) iter.Seq2[lexicon.LexicalEntry, error]
	GetEntryIDForSense(ctx context.Context, senseID string) (string, bool, error)
	GetEntryByID(ctx context.Context, entryID string) (lexicon.LexicalEntry, bool, error)
	// Lexicons returns lexicon metadata without entries or synsets.
	Lexicons(ctx context.Context) ([]lexicon.Lexicon, error)
	Close() error
}
