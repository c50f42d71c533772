// Package memory serves queries straight from a resident index.Index. The
// index is immutable, so reads take no locks.
package memory

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// Store implements query.Engine over an index shared by reference. Returned
// records share backing arrays with the index and must not be modified.
type Store struct {
	idx    *index.Index
	logger *slog.Logger
}

func New(idx *index.Index) *Store {
	return &Store{
		idx:    idx,
		logger: slog.Default().With("component", "store", "backend", "memory"),
	}
}

// Index exposes the underlying index, e.g. for writing a snapshot.
func (s *Store) Index() *index.Index {
	return s.idx
}

func (s *Store) LookupEntries(_ context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	ids := s.idx.LookupIDs(lemma, pos)
	entries := make([]lexicon.LexicalEntry, 0, len(ids))
	for _, id := range ids {
		entry, ok := s.idx.Entries[id]
		if !ok {
			return nil, fmt.Errorf("lemma index points at missing entry %q: %w", id, apperrors.ErrState)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) GetSynset(_ context.Context, id string) (lexicon.Synset, error) {
	synset, ok := s.idx.Synsets[id]
	if !ok {
		return lexicon.Synset{}, apperrors.NotFoundf("synset %q", id)
	}
	return synset, nil
}

func (s *Store) GetSense(_ context.Context, id string) (lexicon.Sense, error) {
	sense, ok := s.idx.Sense(id)
	if !ok {
		return lexicon.Sense{}, apperrors.NotFoundf("sense %q", id)
	}
	return sense, nil
}

func (s *Store) GetSensesForEntry(_ context.Context, entryID string) ([]lexicon.Sense, error) {
	ids, ok := s.idx.EntrySenses[entryID]
	if !ok {
		return nil, apperrors.NotFoundf("entry %q", entryID)
	}
	return s.resolveSenses(ids)
}

func (s *Store) GetSensesForSynset(_ context.Context, synsetID string) ([]lexicon.Sense, error) {
	if _, ok := s.idx.Synsets[synsetID]; !ok {
		return nil, apperrors.NotFoundf("synset %q", synsetID)
	}
	return s.resolveSenses(s.idx.SynsetMembers[synsetID])
}

// resolveSenses maps ids taken from the ownership or membership indices; a
// miss there means the index itself is corrupt.
func (s *Store) resolveSenses(ids []string) ([]lexicon.Sense, error) {
	senses := make([]lexicon.Sense, 0, len(ids))
	for _, id := range ids {
		sense, ok := s.idx.Sense(id)
		if !ok {
			return nil, fmt.Errorf("index points at missing sense %q: %w", id, apperrors.ErrState)
		}
		senses = append(senses, sense)
	}
	return senses, nil
}

func (s *Store) GetRelatedSenses(_ context.Context, senseID string, kind lexicon.SenseRelType) ([]lexicon.Sense, error) {
	targets := s.idx.RelatedSenseIDs(senseID, kind)
	senses := make([]lexicon.Sense, 0, len(targets))
	for _, target := range targets {
		sense, ok := s.idx.Sense(target)
		if !ok {
			s.logger.Warn("dropping dangling sense relation",
				"error", apperrors.Inconsistentf("sense %q %s edge to %q", senseID, kind, target))
			continue
		}
		senses = append(senses, sense)
	}
	return senses, nil
}

func (s *Store) GetRelatedSynsets(_ context.Context, synsetID string, kind lexicon.SynsetRelType) ([]lexicon.Synset, error) {
	targets := s.idx.RelatedSynsetIDs(synsetID, kind)
	synsets := make([]lexicon.Synset, 0, len(targets))
	for _, target := range targets {
		synset, ok := s.idx.Synsets[target]
		if !ok {
			s.logger.Warn("dropping dangling synset relation",
				"error", apperrors.Inconsistentf("synset %q %s edge to %q", synsetID, kind, target))
			continue
		}
		synsets = append(synsets, synset)
	}
	return synsets, nil
}

func (s *Store) GetRandomEntry(_ context.Context) (lexicon.LexicalEntry, error) {
	if len(s.idx.EntryIDs) == 0 {
		return lexicon.LexicalEntry{}, apperrors.NotFoundf("random entry: no entries loaded")
	}
	id := s.idx.EntryIDs[rand.IntN(len(s.idx.EntryIDs))]
	entry, ok := s.idx.Entries[id]
	if !ok {
		return lexicon.LexicalEntry{}, fmt.Errorf("entry list points at missing entry %q: %w", id, apperrors.ErrState)
	}
	return entry, nil
}

func (s *Store) AllEntries(ctx context.Context) iter.Seq2[lexicon.LexicalEntry, error] {
	return func(yield func(lexicon.LexicalEntry, error) bool) {
		for _, id := range s.idx.EntryIDs {
			if err := ctx.Err(); err != nil {
				yield(lexicon.LexicalEntry{}, err)
				return
			}
			entry, ok := s.idx.Entries[id]
			if !ok {
				yield(lexicon.LexicalEntry{}, fmt.Errorf("entry list points at missing entry %q: %w", id, apperrors.ErrState))
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func (s *Store) GetEntryIDForSense(_ context.Context, senseID string) (string, bool, error) {
	id, ok := s.idx.SenseEntry[senseID]
	return id, ok, nil
}

func (s *Store) GetEntryByID(_ context.Context, entryID string) (lexicon.LexicalEntry, bool, error) {
	entry, ok := s.idx.Entries[entryID]
	return entry, ok, nil
}

func (s *Store) Lexicons(_ context.Context) ([]lexicon.Lexicon, error) {
	return slices.Clone(s.idx.Lexicons), nil
}

func (s *Store) Close() error {
	return nil
}
