// Package loader turns configuration and a document provider into a ready
// query.Engine, reusing persisted data when it is valid and rebuilding it
// from the provider when it is not.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/events"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/memory"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/relational"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/snapshot"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/sqlite"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/tracing"
)

// Load paths reported to the Recorder.
const (
	PathSnapshot = "snapshot"
	PathDatabase = "database"
	PathRebuild  = "rebuild"
)

// Notifier is told when a backend has been rebuilt. *events.Publisher
// implements it.
type Notifier interface {
	Notify(ctx context.Context, ev events.LexiconIndexed) error
}

// Recorder receives load and build measurements. *metrics.Metrics
// implements it.
type Recorder interface {
	RecordLoad(backend, path string)
	RecordBuild(elapsed time.Duration, lexicons, entries, senses, synsets, droppedMembers int)
	RecordPopulate(backend string, elapsed time.Duration)
}

type Options struct {
	Backend      string
	ForceRebuild bool
	SnapshotPath string
	SQLite       config.SQLiteConfig
	Postgres     config.PostgresConfig

	Notifier Notifier
	Recorder Recorder
	Progress relational.ProgressFunc
	Logger   *slog.Logger
}

// OptionsFromConfig copies the storage settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Backend:      cfg.Store.Backend,
		ForceRebuild: cfg.Store.ForceRebuild,
		SnapshotPath: cfg.Snapshot.Path,
		SQLite:       cfg.SQLite,
		Postgres:     cfg.Postgres,
	}
}

type loader struct {
	opts     Options
	provider lexicon.Provider
	logger   *slog.Logger
}

// Load returns an engine for opts.Backend. The provider is consulted only
// when persisted data is missing or unusable, or when ForceRebuild is set.
// Stage timings are logged at debug level as a span tree once Load returns.
func Load(ctx context.Context, opts Options, provider lexicon.Provider) (query.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &loader{
		opts:     opts,
		provider: provider,
		logger:   logger.With("component", "loader", "backend", opts.Backend),
	}
	ctx, span := tracing.Start(ctx, "load")
	span.SetAttr("backend", opts.Backend)
	defer func() {
		span.End()
		span.Log(l.logger)
	}()

	switch opts.Backend {
	case config.BackendMemory:
		return l.loadMemory(ctx)
	case config.BackendSQLite, config.BackendPostgres:
		return l.loadRelational(ctx)
	default:
		return nil, fmt.Errorf("unknown backend %q: %w", opts.Backend, apperrors.ErrInvalidInput)
	}
}

func (l *loader) loadMemory(ctx context.Context) (query.Engine, error) {
	path := l.opts.SnapshotPath
	if l.opts.ForceRebuild {
		if err := snapshot.Remove(path); err != nil {
			l.logger.Warn("could not remove snapshot before rebuild", "path", path, "error", err)
		}
	} else {
		_, readSpan := tracing.Start(ctx, "snapshot.read")
		idx, err := snapshot.Read(path)
		readSpan.End()
		switch {
		case err == nil:
			l.logger.Info("serving from snapshot", "path", path, "entries", len(idx.EntryIDs))
			l.recordLoad(PathSnapshot)
			return memory.New(idx), nil
		case errors.Is(err, fs.ErrNotExist):
			l.logger.Info("no snapshot found, building index", "path", path)
		case errors.Is(err, apperrors.ErrFormat):
			l.logger.Warn("snapshot unusable, rebuilding", "path", path, "error", err)
		default:
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
	}

	idx, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	_, writeSpan := tracing.Start(ctx, "snapshot.write")
	err = snapshot.Write(path, idx)
	writeSpan.End()
	if err != nil {
		l.logger.Warn("snapshot write failed, next start will rebuild", "path", path, "error", err)
	} else {
		l.logger.Info("snapshot written", "path", path)
	}
	l.notify(ctx, idx)
	l.recordLoad(PathRebuild)
	return memory.New(idx), nil
}

func (l *loader) loadRelational(ctx context.Context) (query.Engine, error) {
	_, openSpan := tracing.Start(ctx, "open")
	store, status, err := l.openRelational(ctx)
	openSpan.End()
	if err != nil {
		return nil, err
	}

	rebuild := l.opts.ForceRebuild
	if status.Drift {
		l.logger.Warn("schema changed, discarding stored data", "stored", status.Stored, "expected", status.Expected)
		if err := store.Reset(ctx); err != nil {
			store.Close()
			return nil, err
		}
		rebuild = true
	}
	if !rebuild {
		populated, err := store.Populated(ctx)
		if err != nil {
			store.Close()
			return nil, err
		}
		rebuild = !populated
	}
	if !rebuild {
		l.logger.Info("serving from database")
		l.recordLoad(PathDatabase)
		return store, nil
	}

	idx, err := l.build(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	popCtx, popSpan := tracing.Start(ctx, "populate")
	err = store.Populate(popCtx, idx, l.opts.Progress)
	popSpan.End()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("populating %s: %w", l.opts.Backend, err)
	}
	if l.opts.Recorder != nil {
		l.opts.Recorder.RecordPopulate(l.opts.Backend, popSpan.Duration)
	}
	l.notify(ctx, idx)
	l.recordLoad(PathRebuild)
	return store, nil
}

func (l *loader) openRelational(ctx context.Context) (*relational.Store, relational.SchemaStatus, error) {
	ropts := relational.Options{Logger: l.logger}
	switch l.opts.Backend {
	case config.BackendSQLite:
		client, err := sqlite.Open(ctx, l.opts.SQLite)
		if err != nil {
			return nil, relational.SchemaStatus{}, err
		}
		store, status, err := relational.Open(ctx, client.DB, relational.DialectSQLite, ropts)
		if err != nil {
			client.Close()
			return nil, relational.SchemaStatus{}, err
		}
		return store, status, nil
	default:
		client, err := postgres.New(ctx, l.opts.Postgres)
		if err != nil {
			return nil, relational.SchemaStatus{}, err
		}
		store, status, err := relational.Open(ctx, client.DB, relational.DialectPostgres, ropts)
		if err != nil {
			client.Close()
			return nil, relational.SchemaStatus{}, err
		}
		return store, status, nil
	}
}

// build parses the document and indexes it.
func (l *loader) build(ctx context.Context) (*index.Index, error) {
	ctx, span := tracing.Start(ctx, "build")
	defer span.End()

	start := time.Now()
	provideCtx, provideSpan := tracing.Start(ctx, "provide")
	res, err := l.provider.Provide(provideCtx)
	provideSpan.End()
	if err != nil {
		return nil, fmt.Errorf("providing lexical resource: %w", err)
	}
	_, indexSpan := tracing.Start(ctx, "index")
	idx, stats := index.NewBuilder(l.logger).Build(res)
	indexSpan.SetAttr("entries", stats.Entries)
	indexSpan.SetAttr("synsets", stats.Synsets)
	indexSpan.End()
	if l.opts.Recorder != nil {
		l.opts.Recorder.RecordBuild(time.Since(start), stats.Lexicons, stats.Entries, stats.Senses, stats.Synsets, stats.DroppedMembers)
	}
	return idx, nil
}

// notify is best effort: a rebuilt index is served even when nobody could
// be told about it.
func (l *loader) notify(ctx context.Context, idx *index.Index) {
	if l.opts.Notifier == nil {
		return
	}
	ids := make([]string, 0, len(idx.Lexicons))
	for _, lex := range idx.Lexicons {
		ids = append(ids, lex.ID)
	}
	ev := events.LexiconIndexed{
		Backend:  l.opts.Backend,
		Lexicons: ids,
		Entries:  len(idx.EntryIDs),
		Synsets:  len(idx.SynsetIDs),
		BuiltAt:  time.Now().UTC(),
	}
	if err := l.opts.Notifier.Notify(ctx, ev); err != nil {
		l.logger.Warn("index rebuilt but notification failed", "error", err)
	}
}

func (l *loader) recordLoad(path string) {
	if l.opts.Recorder != nil {
		l.opts.Recorder.RecordLoad(l.opts.Backend, path)
	}
}
