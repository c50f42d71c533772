package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// senseAggregate folds sense rows joined with their outgoing relations.
type senseAggregate struct {
	order  []string
	senses map[string]*lexicon.Sense
	seen   map[string]map[int64]struct{}
}

func newSenseAggregate() *senseAggregate {
	return &senseAggregate{
		senses: make(map[string]*lexicon.Sense),
		seen:   make(map[string]map[int64]struct{}),
	}
}

func (a *senseAggregate) add(id, synset string, relPos sql.NullInt64, relType, rawType, target sql.NullString) {
	sense, ok := a.senses[id]
	if !ok {
		sense = &lexicon.Sense{ID: id, Synset: synset}
		a.senses[id] = sense
		a.seen[id] = make(map[int64]struct{})
		a.order = append(a.order, id)
	}
	if !relPos.Valid {
		return
	}
	if _, dup := a.seen[id][relPos.Int64]; dup {
		return
	}
	a.seen[id][relPos.Int64] = struct{}{}
	sense.Relations = append(sense.Relations, lexicon.NewSenseRelation(relCode(relType, rawType), target.String))
}

func (a *senseAggregate) result() []lexicon.Sense {
	out := make([]lexicon.Sense, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.senses[id])
	}
	return out
}

var senseColumns = []string{"s.id", "s.synset_id", "r.position", "r.rel_type", "r.raw_type", "r.target_sense_id"}

func (s *Store) loadSenses(ctx context.Context, b sq.SelectBuilder) ([]lexicon.Sense, error) {
	rows, err := s.queryRows(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("loading senses: %w", err)
	}
	defer rows.Close()

	agg := newSenseAggregate()
	for rows.Next() {
		var (
			id, synset               sql.NullString
			relPos                   sql.NullInt64
			relType, rawType, target sql.NullString
		)
		if err := rows.Scan(&id, &synset, &relPos, &relType, &rawType, &target); err != nil {
			return nil, fmt.Errorf("scanning sense row: %w", err)
		}
		if !id.Valid {
			continue
		}
		agg.add(id.String, synset.String, relPos, relType, rawType, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sense rows: %w", err)
	}
	return agg.result(), nil
}

func (s *Store) GetSense(ctx context.Context, id string) (lexicon.Sense, error) {
	unlock := s.acquire()
	defer unlock()

	senses, err := s.loadSenses(ctx, s.sb.Select(senseColumns...).
		From("senses s").
		LeftJoin("sense_relations r ON r.source_sense_id = s.id").
		Where(sq.Eq{"s.id": id}).
		OrderBy("r.position"))
	if err != nil {
		return lexicon.Sense{}, err
	}
	if len(senses) == 0 {
		return lexicon.Sense{}, apperrors.NotFoundf("sense %q", id)
	}
	return senses[0], nil
}

func (s *Store) GetSensesForEntry(ctx context.Context, entryID string) ([]lexicon.Sense, error) {
	unlock := s.acquire()
	defer unlock()

	if err := s.requireRow(ctx, "lexical_entries", entryID, "entry"); err != nil {
		return nil, err
	}
	return s.loadSenses(ctx, s.sb.Select(senseColumns...).
		From("senses s").
		LeftJoin("sense_relations r ON r.source_sense_id = s.id").
		Where(sq.Eq{"s.entry_id": entryID}).
		OrderBy("s.position", "r.position"))
}

func (s *Store) GetSensesForSynset(ctx context.Context, synsetID string) ([]lexicon.Sense, error) {
	unlock := s.acquire()
	defer unlock()

	if err := s.requireRow(ctx, "synsets", synsetID, "synset"); err != nil {
		return nil, err
	}
	return s.loadSenses(ctx, s.sb.Select(senseColumns...).
		From("synset_members m").
		Join("senses s ON s.id = m.sense_id").
		LeftJoin("sense_relations r ON r.source_sense_id = s.id").
		Where(sq.Eq{"m.synset_id": synsetID}).
		OrderBy("m.position", "r.position"))
}

// GetRelatedSenses returns the targets of kind edges leaving senseID. The
// outer join to senses exposes edges whose target was never defined; those
// are logged and skipped.
func (s *Store) GetRelatedSenses(ctx context.Context, senseID string, kind lexicon.SenseRelType) ([]lexicon.Sense, error) {
	unlock := s.acquire()
	defer unlock()

	rows, err := s.queryRows(ctx, s.sb.Select(
		"e.target_sense_id", "s.id", "s.synset_id",
		"r.position", "r.rel_type", "r.raw_type", "r.target_sense_id",
	).
		From("sense_relations e").
		LeftJoin("senses s ON s.id = e.target_sense_id").
		LeftJoin("sense_relations r ON r.source_sense_id = s.id").
		Where(sq.Eq{"e.source_sense_id": senseID, "e.rel_type": string(kind)}).
		OrderBy("e.position", "r.position"))
	if err != nil {
		return nil, fmt.Errorf("loading %s relations of %q: %w", kind, senseID, err)
	}
	defer rows.Close()

	agg := newSenseAggregate()
	dangling := make(map[string]struct{})
	for rows.Next() {
		var (
			edgeTarget               string
			id, synset               sql.NullString
			relPos                   sql.NullInt64
			relType, rawType, target sql.NullString
		)
		if err := rows.Scan(&edgeTarget, &id, &synset, &relPos, &relType, &rawType, &target); err != nil {
			return nil, fmt.Errorf("scanning related sense row: %w", err)
		}
		if !id.Valid {
			if _, logged := dangling[edgeTarget]; !logged {
				dangling[edgeTarget] = struct{}{}
				s.logger.Warn("dropping dangling sense relation",
					"error", apperrors.Inconsistentf("sense %q %s edge to %q", senseID, kind, edgeTarget))
			}
			continue
		}
		agg.add(id.String, synset.String, relPos, relType, rawType, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating related sense rows: %w", err)
	}
	return agg.result(), nil
}

// requireRow fails with ErrNotFound when table has no row with id.
func (s *Store) requireRow(ctx context.Context, table, id, what string) error {
	query, args, err := s.sb.Select("1").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building %s existence query: %w", what, err)
	}
	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFoundf("%s %q", what, id)
	}
	if err != nil {
		return fmt.Errorf("checking %s %q: %w", what, id, err)
	}
	return nil
}
