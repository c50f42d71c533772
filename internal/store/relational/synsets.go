package relational

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// synsetBatch bounds the ids bound into one IN clause.
const synsetBatch = 200

// loadSynsets materializes the synsets named by ids, one query per child
// table. Missing ids are absent from the result.
func (s *Store) loadSynsets(ctx context.Context, ids []string) (map[string]*lexicon.Synset, error) {
	out := make(map[string]*lexicon.Synset, len(ids))
	for lo := 0; lo < len(ids); lo += synsetBatch {
		batch := ids[lo:min(lo+synsetBatch, len(ids))]
		if err := s.loadSynsetBatch(ctx, batch, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadSynsetBatch(ctx context.Context, ids []string, out map[string]*lexicon.Synset) error {
	err := s.scanEach(ctx, s.sb.Select("id", "ili", "part_of_speech", "members").
		From("synsets").
		Where(sq.Eq{"id": ids}),
		func(rows *sql.Rows) error {
			var synset lexicon.Synset
			var pos string
			if err := rows.Scan(&synset.ID, &synset.ILI, &pos, &synset.Members); err != nil {
				return err
			}
			synset.PartOfSpeech = lexicon.PartOfSpeech(pos)
			out[synset.ID] = &synset
			return nil
		})
	if err != nil {
		return fmt.Errorf("loading synsets: %w", err)
	}

	err = s.scanEach(ctx, s.sb.Select("synset_id", "source", "text").
		From("definitions").
		Where(sq.Eq{"synset_id": ids}).
		OrderBy("synset_id", "position"),
		func(rows *sql.Rows) error {
			var id string
			var def lexicon.Definition
			if err := rows.Scan(&id, &def.Source, &def.Text); err != nil {
				return err
			}
			if synset, ok := out[id]; ok {
				synset.Definitions = append(synset.Definitions, def)
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}

	err = s.scanEach(ctx, s.sb.Select("synset_id", "source", "text").
		From("ili_definitions").
		Where(sq.Eq{"synset_id": ids}),
		func(rows *sql.Rows) error {
			var id string
			var def lexicon.ILIDefinition
			if err := rows.Scan(&id, &def.Source, &def.Text); err != nil {
				return err
			}
			if synset, ok := out[id]; ok {
				synset.ILIDefinition = &def
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("loading ili definitions: %w", err)
	}

	err = s.scanEach(ctx, s.sb.Select("synset_id", "source", "text").
		From("examples").
		Where(sq.Eq{"synset_id": ids}).
		OrderBy("synset_id", "position"),
		func(rows *sql.Rows) error {
			var id string
			var ex lexicon.Example
			if err := rows.Scan(&id, &ex.Source, &ex.Text); err != nil {
				return err
			}
			if synset, ok := out[id]; ok {
				synset.Examples = append(synset.Examples, ex)
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("loading examples: %w", err)
	}

	err = s.scanEach(ctx, s.sb.Select("source_synset_id", "target_synset_id", "rel_type", "raw_type").
		From("synset_relations").
		Where(sq.Eq{"source_synset_id": ids}).
		OrderBy("source_synset_id", "position"),
		func(rows *sql.Rows) error {
			var id, target string
			var relType, rawType sql.NullString
			if err := rows.Scan(&id, &target, &relType, &rawType); err != nil {
				return err
			}
			if synset, ok := out[id]; ok {
				synset.Relations = append(synset.Relations, lexicon.NewSynsetRelation(relCode(relType, rawType), target))
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("loading synset relations: %w", err)
	}
	return nil
}

// scanEach runs b and calls fn once per row.
func (s *Store) scanEach(ctx context.Context, b sq.SelectBuilder, fn func(*sql.Rows) error) error {
	rows, err := s.queryRows(ctx, b)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
	}
	return rows.Err()
}

func (s *Store) GetSynset(ctx context.Context, id string) (lexicon.Synset, error) {
	unlock := s.acquire()
	defer unlock()

	synsets, err := s.loadSynsets(ctx, []string{id})
	if err != nil {
		return lexicon.Synset{}, err
	}
	synset, ok := synsets[id]
	if !ok {
		return lexicon.Synset{}, apperrors.NotFoundf("synset %q", id)
	}
	return *synset, nil
}

// GetRelatedSynsets follows kind edges from synsetID in document order,
// returning each target once. Edges to synsets that were never defined are
// logged and skipped.
func (s *Store) GetRelatedSynsets(ctx context.Context, synsetID string, kind lexicon.SynsetRelType) ([]lexicon.Synset, error) {
	unlock := s.acquire()
	defer unlock()

	var targets []string
	seen := make(map[string]struct{})
	err := s.scanEach(ctx, s.sb.Select("e.target_synset_id", "t.id").
		From("synset_relations e").
		LeftJoin("synsets t ON t.id = e.target_synset_id").
		Where(sq.Eq{"e.source_synset_id": synsetID, "e.rel_type": string(kind)}).
		OrderBy("e.position"),
		func(rows *sql.Rows) error {
			var target string
			var found sql.NullString
			if err := rows.Scan(&target, &found); err != nil {
				return err
			}
			if !found.Valid {
				s.logger.Warn("dropping dangling synset relation",
					"error", apperrors.Inconsistentf("synset %q %s edge to %q", synsetID, kind, target))
				return nil
			}
			// Distinct unrecognised codes share the catch-all kind.
			if _, dup := seen[target]; dup {
				return nil
			}
			seen[target] = struct{}{}
			targets = append(targets, target)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading %s relations of %q: %w", kind, synsetID, err)
	}

	loaded, err := s.loadSynsets(ctx, targets)
	if err != nil {
		return nil, err
	}
	synsets := make([]lexicon.Synset, 0, len(targets))
	for _, id := range targets {
		synset, ok := loaded[id]
		if !ok {
			return nil, fmt.Errorf("related synset %q vanished during lookup: %w", id, apperrors.ErrState)
		}
		synsets = append(synsets, *synset)
	}
	return synsets, nil
}

func (s *Store) Lexicons(ctx context.Context) ([]lexicon.Lexicon, error) {
	unlock := s.acquire()
	defer unlock()

	var lexicons []lexicon.Lexicon
	pos := make(map[string]int)
	err := s.scanEach(ctx, s.sb.Select(
		"id", "label", "language", "email", "license", "version", "url",
		"citation", "logo", "status", "confidence_score", "publisher", "contributor",
	).From("lexicons").OrderBy("position"),
		func(rows *sql.Rows) error {
			var lex lexicon.Lexicon
			var score sql.NullFloat64
			if err := rows.Scan(
				&lex.ID, &lex.Label, &lex.Language, &lex.Email, &lex.License, &lex.Version, &lex.URL,
				&lex.Citation, &lex.Logo, &lex.Status, &score, &lex.Publisher, &lex.Contributor,
			); err != nil {
				return err
			}
			if score.Valid {
				lex.ConfidenceScore = &score.Float64
			}
			pos[lex.ID] = len(lexicons)
			lexicons = append(lexicons, lex)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading lexicons: %w", err)
	}

	err = s.scanEach(ctx, s.sb.Select("lexicon_id", "required_id", "required_version").
		From("lexicon_requires").
		OrderBy("lexicon_id", "position"),
		func(rows *sql.Rows) error {
			var lexID string
			var req lexicon.Requirement
			if err := rows.Scan(&lexID, &req.ID, &req.Version); err != nil {
				return err
			}
			if i, ok := pos[lexID]; ok {
				lexicons[i].Requires = append(lexicons[i].Requires, req)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading lexicon requirements: %w", err)
	}
	return lexicons, nil
}
