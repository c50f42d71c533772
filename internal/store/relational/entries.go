package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	sq "github.com/Masterminds/squirrel"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

const entryPageSize = 500

// entrySelect joins an entry with every child it owns. One entry therefore
// spans many rows, and child columns are NULL where an outer join found
// nothing.
func (s *Store) entrySelect() sq.SelectBuilder {
	return s.sb.Select(
		"e.id", "e.lemma_written_form", "e.part_of_speech",
		"p.position", "p.variety", "p.notation", "p.phonemic", "p.audio", "p.text",
		"s.id", "s.position", "s.synset_id",
		"r.position", "r.rel_type", "r.raw_type", "r.target_sense_id",
	).
		From("lexical_entries e").
		LeftJoin("pronunciations p ON p.entry_id = e.id").
		LeftJoin("senses s ON s.entry_id = e.id").
		LeftJoin("sense_relations r ON r.source_sense_id = s.id").
		OrderBy("e.position", "s.position", "r.position", "p.position")
}

// entryAggregate folds joined rows back into entries, preserving the order
// in which entry ids first appear.
type entryAggregate struct {
	order   []string
	entries map[string]*entryBuild
}

type entryBuild struct {
	entry   lexicon.LexicalEntry
	prons   map[int64]struct{}
	senses  map[string]int
	relSeen map[string]map[int64]struct{}
}

func newEntryAggregate() *entryAggregate {
	return &entryAggregate{entries: make(map[string]*entryBuild)}
}

func (a *entryAggregate) scan(rows *sql.Rows) error {
	for rows.Next() {
		var (
			id, written, pos               string
			pronPos                        sql.NullInt64
			variety, notation, audio, text sql.NullString
			phonemic                       sql.NullInt64
			senseID, synsetID              sql.NullString
			sensePos                       sql.NullInt64
			relPos                         sql.NullInt64
			relType, rawType, relTarget    sql.NullString
		)
		if err := rows.Scan(
			&id, &written, &pos,
			&pronPos, &variety, &notation, &phonemic, &audio, &text,
			&senseID, &sensePos, &synsetID,
			&relPos, &relType, &rawType, &relTarget,
		); err != nil {
			return fmt.Errorf("scanning entry row: %w", err)
		}

		b, ok := a.entries[id]
		if !ok {
			b = &entryBuild{
				entry: lexicon.LexicalEntry{
					ID:    id,
					Lemma: lexicon.Lemma{WrittenForm: written, PartOfSpeech: lexicon.PartOfSpeech(pos)},
				},
				prons:   make(map[int64]struct{}),
				senses:  make(map[string]int),
				relSeen: make(map[string]map[int64]struct{}),
			}
			a.entries[id] = b
			a.order = append(a.order, id)
		}

		if pronPos.Valid {
			if _, seen := b.prons[pronPos.Int64]; !seen {
				b.prons[pronPos.Int64] = struct{}{}
				b.entry.Pronunciations = append(b.entry.Pronunciations, lexicon.Pronunciation{
					Variety:  variety.String,
					Notation: notation.String,
					Phonemic: phonemic.Int64 != 0,
					Audio:    audio.String,
					Text:     text.String,
				})
			}
		}

		if !senseID.Valid {
			continue
		}
		i, seen := b.senses[senseID.String]
		if !seen {
			i = len(b.entry.Senses)
			b.senses[senseID.String] = i
			b.relSeen[senseID.String] = make(map[int64]struct{})
			b.entry.Senses = append(b.entry.Senses, lexicon.Sense{ID: senseID.String, Synset: synsetID.String})
		}
		if relPos.Valid {
			if _, dup := b.relSeen[senseID.String][relPos.Int64]; !dup {
				b.relSeen[senseID.String][relPos.Int64] = struct{}{}
				b.entry.Senses[i].Relations = append(b.entry.Senses[i].Relations,
					lexicon.NewSenseRelation(relCode(relType, rawType), relTarget.String))
			}
		}
	}
	return rows.Err()
}

func (a *entryAggregate) result() []lexicon.LexicalEntry {
	out := make([]lexicon.LexicalEntry, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.entries[id].entry)
	}
	return out
}

// relCode recovers the document code of a stored relation.
func relCode(relType, rawType sql.NullString) string {
	if rawType.Valid && rawType.String != "" {
		return rawType.String
	}
	return relType.String
}

func (s *Store) loadEntries(ctx context.Context, where sq.Sqlizer) ([]lexicon.LexicalEntry, error) {
	rows, err := s.queryRows(ctx, s.entrySelect().Where(where))
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	defer rows.Close()
	agg := newEntryAggregate()
	if err := agg.scan(rows); err != nil {
		return nil, err
	}
	return agg.result(), nil
}

func (s *Store) LookupEntries(ctx context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	where := sq.Eq{"e.lemma_written_form_lower": index.Fold(lemma)}
	if pos != nil {
		where["e.part_of_speech"] = string(*pos)
	}
	unlock := s.acquire()
	defer unlock()
	return s.loadEntries(ctx, where)
}

func (s *Store) GetEntryByID(ctx context.Context, entryID string) (lexicon.LexicalEntry, bool, error) {
	unlock := s.acquire()
	defer unlock()
	entries, err := s.loadEntries(ctx, sq.Eq{"e.id": entryID})
	if err != nil || len(entries) == 0 {
		return lexicon.LexicalEntry{}, false, err
	}
	return entries[0], true, nil
}

func (s *Store) GetEntryIDForSense(ctx context.Context, senseID string) (string, bool, error) {
	unlock := s.acquire()
	defer unlock()

	query, args, err := s.sb.Select("entry_id").From("senses").Where(sq.Eq{"id": senseID}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("building owner query: %w", err)
	}
	var entryID string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&entryID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving owner of sense %q: %w", senseID, err)
	}
	return entryID, true, nil
}

func (s *Store) GetRandomEntry(ctx context.Context) (lexicon.LexicalEntry, error) {
	unlock := s.acquire()
	defer unlock()

	query, args, err := s.sb.Select("COUNT(*)").From("lexical_entries").ToSql()
	if err != nil {
		return lexicon.LexicalEntry{}, fmt.Errorf("building entry count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return lexicon.LexicalEntry{}, fmt.Errorf("counting entries: %w", err)
	}
	if n == 0 {
		return lexicon.LexicalEntry{}, apperrors.NotFoundf("random entry: no entries loaded")
	}
	pick := rand.IntN(n)
	entries, err := s.loadEntries(ctx, sq.Eq{"e.position": pick})
	if err != nil {
		return lexicon.LexicalEntry{}, err
	}
	if len(entries) == 0 {
		return lexicon.LexicalEntry{}, fmt.Errorf("no entry at position %d of %d: %w", pick, n, apperrors.ErrState)
	}
	return entries[0], nil
}

// AllEntries pages through entries by position. The lock is released
// between pages so a slow consumer does not starve other queries.
func (s *Store) AllEntries(ctx context.Context) iter.Seq2[lexicon.LexicalEntry, error] {
	return func(yield func(lexicon.LexicalEntry, error) bool) {
		for lo := 0; ; lo += entryPageSize {
			page, err := s.entryPage(ctx, lo, lo+entryPageSize)
			if err != nil {
				yield(lexicon.LexicalEntry{}, err)
				return
			}
			if len(page) == 0 {
				return
			}
			for _, entry := range page {
				if !yield(entry, nil) {
					return
				}
			}
		}
	}
}

func (s *Store) entryPage(ctx context.Context, lo, hi int) ([]lexicon.LexicalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := s.acquire()
	defer unlock()
	return s.loadEntries(ctx, sq.And{sq.GtOrEq{"e.position": lo}, sq.Lt{"e.position": hi}})
}
