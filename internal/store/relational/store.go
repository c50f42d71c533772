// Package relational serves queries from SQLite or PostgreSQL tables that
// mirror the in-memory index. Results are identical to the memory backend.
package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	sq "github.com/Masterminds/squirrel"
)

// Dialect selects placeholder syntax and connection discipline.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// Options tunes a Store. The zero value is usable.
type Options struct {
	// BatchRows caps the rows per multi-row INSERT during Populate.
	BatchRows int
	Logger    *slog.Logger
}

// SchemaStatus describes the schema version found by Open.
type SchemaStatus struct {
	Stored   string
	Expected string
	// Present is false when the database carried no version row.
	Present bool
	// Drift is true when a version row exists and differs from Expected.
	Drift bool
}

// Store implements query.Engine. With DialectSQLite the handle has one
// connection, and every statement sequence runs under mu.
type Store struct {
	db        *sql.DB
	dialect   Dialect
	sb        sq.StatementBuilderType
	exclusive bool
	mu        sync.Mutex
	batchRows int
	logger    *slog.Logger
}

// Open takes ownership of db and checks the stored schema version before
// touching any data table. A missing version is written after the tables are
// created. A different one is logged and reported through
// SchemaStatus.Drift; the tables are then left as found for the caller to
// resolve with Reset.
func Open(ctx context.Context, db *sql.DB, dialect Dialect, opts Options) (*Store, SchemaStatus, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, SchemaStatus{}, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchRows := opts.BatchRows
	if batchRows <= 0 {
		batchRows = 500
	}
	s := &Store{
		db:        db,
		dialect:   dialect,
		sb:        sq.StatementBuilder.PlaceholderFormat(dialect.placeholder()),
		exclusive: dialect == DialectSQLite,
		batchRows: batchRows,
		logger:    logger.With("component", "store", "backend", string(dialect)),
	}

	unlock := s.acquire()
	defer unlock()

	if _, err := s.db.ExecContext(ctx, createMetadata); err != nil {
		return nil, SchemaStatus{}, fmt.Errorf("creating metadata table: %w", err)
	}
	status, err := s.schemaStatus(ctx)
	if err != nil {
		return nil, SchemaStatus{}, err
	}
	if status.Drift {
		s.logger.Warn("schema version drift, tables must be rebuilt",
			"stored", status.Stored,
			"expected", status.Expected,
		)
		return s, status, nil
	}
	if err := s.createSchema(ctx); err != nil {
		return nil, SchemaStatus{}, err
	}
	if !status.Present {
		if err := s.writeSchemaVersion(ctx, s.db); err != nil {
			return nil, SchemaStatus{}, err
		}
	}
	return s, status, nil
}

// acquire serializes access when the store runs over a single connection.
func (s *Store) acquire() func() {
	if !s.exclusive {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) createSchema(ctx context.Context) error {
	for _, stmt := range append([]string{createMetadata}, createStatements...) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func (s *Store) schemaStatus(ctx context.Context) (SchemaStatus, error) {
	status := SchemaStatus{Expected: SchemaVersion}
	query, args, err := s.sb.Select("value").From("metadata").Where(sq.Eq{"key": schemaVersionKey}).ToSql()
	if err != nil {
		return status, fmt.Errorf("building schema version query: %w", err)
	}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&status.Stored)
	if errors.Is(err, sql.ErrNoRows) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("reading schema version: %w", err)
	}
	status.Present = true
	status.Drift = status.Stored != SchemaVersion
	return status, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) writeSchemaVersion(ctx context.Context, ex execer) error {
	query, args, err := s.sb.Insert("metadata").
		Columns("key", "value").
		Values(schemaVersionKey, SchemaVersion).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("building schema version upsert: %w", err)
	}
	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}

// Populated reports whether any lexicon has been stored.
func (s *Store) Populated(ctx context.Context) (bool, error) {
	unlock := s.acquire()
	defer unlock()

	query, args, err := s.sb.Select("COUNT(*)").From("lexicons").ToSql()
	if err != nil {
		return false, fmt.Errorf("building lexicon count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("counting lexicons: %w", err)
	}
	return n > 0, nil
}

// Drop removes every table, metadata included.
func (s *Store) Drop(ctx context.Context) error {
	unlock := s.acquire()
	defer unlock()
	return s.drop(ctx)
}

func (s *Store) drop(ctx context.Context) error {
	for _, table := range append(dataTables, "metadata") {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("dropping %s: %w", table, err)
		}
	}
	return nil
}

// Reset drops and recreates the schema, leaving empty tables stamped with
// the current version.
func (s *Store) Reset(ctx context.Context) error {
	unlock := s.acquire()
	defer unlock()

	if err := s.drop(ctx); err != nil {
		return err
	}
	if err := s.createSchema(ctx); err != nil {
		return err
	}
	if err := s.writeSchemaVersion(ctx, s.db); err != nil {
		return err
	}
	s.logger.Info("schema reset", "version", SchemaVersion)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// queryRows renders b and runs it. The caller must hold the lock until rows
// is closed.
func (s *Store) queryRows(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	return rows, nil
}
