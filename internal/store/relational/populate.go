package relational

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
)

// ProgressFunc receives the stage being written and the rows written so far
// out of total for that stage.
type ProgressFunc func(stage string, done, total int)

// Populate replaces the stored data with idx inside a single transaction,
// so concurrent readers on other connections see either the old or the new
// contents.
func (s *Store) Populate(ctx context.Context, idx *index.Index, progress ProgressFunc) error {
	if progress == nil {
		progress = func(string, int, int) {}
	}
	unlock := s.acquire()
	defer unlock()

	start := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning populate transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range dataTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	w := &batchWriter{s: s, tx: tx, progress: progress}
	stages := []func(context.Context, *batchWriter, *index.Index) error{
		insertLexicons,
		insertEntries,
		insertPronunciations,
		insertSynsets,
		insertSenses,
		insertSynsetMembers,
		insertDefinitions,
		insertILIDefinitions,
		insertExamples,
		insertSenseRelations,
		insertSynsetRelations,
	}
	for _, stage := range stages {
		if err := stage(ctx, w, idx); err != nil {
			return err
		}
	}
	if err := s.writeSchemaVersion(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing populate transaction: %w", err)
	}
	s.logger.Info("relational store populated",
		"entries", len(idx.EntryIDs),
		"synsets", len(idx.SynsetIDs),
		"duration", time.Since(start),
	)
	return nil
}

// batchWriter accumulates rows for one table and flushes them as multi-row
// INSERT statements.
type batchWriter struct {
	s        *Store
	tx       *sql.Tx
	progress ProgressFunc
}

func (w *batchWriter) write(ctx context.Context, table string, columns []string, rows [][]any) error {
	total := len(rows)
	for lo := 0; lo < total; lo += w.s.batchRows {
		hi := min(lo+w.s.batchRows, total)
		b := w.s.sb.Insert(table).Columns(columns...).Suffix("ON CONFLICT DO NOTHING")
		for _, row := range rows[lo:hi] {
			b = b.Values(row...)
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("building insert into %s: %w", table, err)
		}
		if _, err := w.tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
		w.progress(table, hi, total)
	}
	if total == 0 {
		w.progress(table, 0, 0)
	}
	return nil
}

func insertLexicons(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var lexicons, requires [][]any
	for i, lex := range idx.Lexicons {
		var score sql.NullFloat64
		if lex.ConfidenceScore != nil {
			score = sql.NullFloat64{Float64: *lex.ConfidenceScore, Valid: true}
		}
		lexicons = append(lexicons, []any{
			lex.ID, i, lex.Label, lex.Language, lex.Email, lex.License, lex.Version,
			lex.URL, lex.Citation, lex.Logo, lex.Status, score, lex.Publisher, lex.Contributor,
		})
		for j, req := range lex.Requires {
			requires = append(requires, []any{lex.ID, j, req.ID, req.Version})
		}
	}
	if err := w.write(ctx, "lexicons", []string{
		"id", "position", "label", "language", "email", "license", "version",
		"url", "citation", "logo", "status", "confidence_score", "publisher", "contributor",
	}, lexicons); err != nil {
		return err
	}
	return w.write(ctx, "lexicon_requires", []string{"lexicon_id", "position", "required_id", "required_version"}, requires)
}

func insertEntries(ctx context.Context, w *batchWriter, idx *index.Index) error {
	rows := make([][]any, 0, len(idx.EntryIDs))
	for i, id := range idx.EntryIDs {
		entry := idx.Entries[id]
		rows = append(rows, []any{
			id, idx.EntryLexicon[id], i,
			entry.Lemma.WrittenForm, index.Fold(entry.Lemma.WrittenForm), string(entry.Lemma.PartOfSpeech),
		})
	}
	return w.write(ctx, "lexical_entries", []string{
		"id", "lexicon_id", "position", "lemma_written_form", "lemma_written_form_lower", "part_of_speech",
	}, rows)
}

func insertPronunciations(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.EntryIDs {
		for i, p := range idx.Entries[id].Pronunciations {
			phonemic := 0
			if p.Phonemic {
				phonemic = 1
			}
			rows = append(rows, []any{id, i, p.Variety, p.Notation, phonemic, p.Audio, p.Text})
		}
	}
	return w.write(ctx, "pronunciations", []string{
		"entry_id", "position", "variety", "notation", "phonemic", "audio", "text",
	}, rows)
}

func insertSynsets(ctx context.Context, w *batchWriter, idx *index.Index) error {
	rows := make([][]any, 0, len(idx.SynsetIDs))
	for i, id := range idx.SynsetIDs {
		synset := idx.Synsets[id]
		rows = append(rows, []any{
			id, idx.SynsetLexicon[id], i, synset.ILI, string(synset.PartOfSpeech), synset.Members,
		})
	}
	return w.write(ctx, "synsets", []string{
		"id", "lexicon_id", "position", "ili", "part_of_speech", "members",
	}, rows)
}

func insertSenses(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.EntryIDs {
		for i, sense := range idx.Entries[id].Senses {
			rows = append(rows, []any{sense.ID, id, i, sense.Synset})
		}
	}
	return w.write(ctx, "senses", []string{"id", "entry_id", "position", "synset_id"}, rows)
}

func insertSynsetMembers(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.SynsetIDs {
		for i, senseID := range idx.SynsetMembers[id] {
			rows = append(rows, []any{id, i, senseID})
		}
	}
	return w.write(ctx, "synset_members", []string{"synset_id", "position", "sense_id"}, rows)
}

func insertDefinitions(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.SynsetIDs {
		for i, def := range idx.Synsets[id].Definitions {
			rows = append(rows, []any{id, i, def.Source, def.Text})
		}
	}
	return w.write(ctx, "definitions", []string{"synset_id", "position", "source", "text"}, rows)
}

func insertILIDefinitions(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.SynsetIDs {
		if def := idx.Synsets[id].ILIDefinition; def != nil {
			rows = append(rows, []any{id, def.Source, def.Text})
		}
	}
	return w.write(ctx, "ili_definitions", []string{"synset_id", "source", "text"}, rows)
}

func insertExamples(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.SynsetIDs {
		for i, ex := range idx.Synsets[id].Examples {
			rows = append(rows, []any{id, i, ex.Source, ex.Text})
		}
	}
	return w.write(ctx, "examples", []string{"synset_id", "position", "source", "text"}, rows)
}

func insertSenseRelations(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.EntryIDs {
		for _, sense := range idx.Entries[id].Senses {
			for i, rel := range sense.Relations {
				rows = append(rows, []any{sense.ID, rel.Target, string(rel.Kind), rel.Raw, i})
			}
		}
	}
	return w.write(ctx, "sense_relations", []string{
		"source_sense_id", "target_sense_id", "rel_type", "raw_type", "position",
	}, rows)
}

func insertSynsetRelations(ctx context.Context, w *batchWriter, idx *index.Index) error {
	var rows [][]any
	for _, id := range idx.SynsetIDs {
		for i, rel := range idx.Synsets[id].Relations {
			rows = append(rows, []any{id, rel.Target, string(rel.Kind), rel.Raw, i})
		}
	}
	return w.write(ctx, "synset_relations", []string{
		"source_synset_id", "target_synset_id", "rel_type", "raw_type", "position",
	}, rows)
}
