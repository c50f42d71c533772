package loader_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/events"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon/lexicontest"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/sqlite"
)

type recorder struct {
	loads     []string
	builds    int
	populates int
}

func (r *recorder) RecordLoad(backend, path string) { r.loads = append(r.loads, backend+"/"+path) }
func (r *recorder) RecordBuild(time.Duration, int, int, int, int, int) { r.builds++ }
func (r *recorder) RecordPopulate(string, time.Duration) { r.populates++ }

type notifier struct {
	events []events.LexiconIndexed
	err    error
}

func (n *notifier) Notify(_ context.Context, ev events.LexiconIndexed) error {
	n.events = append(n.events, ev)
	return n.err
}

func load(t *testing.T, opts loader.Options, calls *int) query.Engine {
	t.Helper()
	eng, err := loader.Load(context.Background(), opts, lexicontest.Provider(calls))
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })
	return eng
}

func assertServesCorpus(t *testing.T, eng query.Engine) {
	t.Helper()
	entries, err := eng.LookupEntries(context.Background(), "cat", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryBackendReusesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap", "wordnet.snapshot")
	rec := &recorder{}
	opts := loader.Options{Backend: config.BackendMemory, SnapshotPath: path, Recorder: rec}

	var calls int
	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 1, calls)
	assert.FileExists(t, path)

	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 1, calls, "second load should come from the snapshot")
	assert.Equal(t, []string{"memory/rebuild", "memory/snapshot"}, rec.loads)
	assert.Equal(t, 1, rec.builds)
}

func TestMemoryBackendForceRebuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordnet.snapshot")
	opts := loader.Options{Backend: config.BackendMemory, SnapshotPath: path}

	var calls int
	load(t, opts, &calls)
	opts.ForceRebuild = true
	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 2, calls)
	assert.FileExists(t, path)
}

func TestMemoryBackendRebuildsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordnet.snapshot")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o644))

	var calls int
	assertServesCorpus(t, load(t, loader.Options{Backend: config.BackendMemory, SnapshotPath: path}, &calls))
	assert.Equal(t, 1, calls)

	// The rebuilt snapshot replaced the corrupt one.
	load(t, loader.Options{Backend: config.BackendMemory, SnapshotPath: path}, &calls)
	assert.Equal(t, 1, calls)
}

func TestSQLiteBackendReusesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordnet.db")
	rec := &recorder{}
	opts := loader.Options{Backend: config.BackendSQLite, SQLite: config.SQLiteConfig{Path: path}, Recorder: rec}

	var calls int
	eng := load(t, opts, &calls)
	assertServesCorpus(t, eng)
	require.NoError(t, eng.Close())

	eng = load(t, opts, &calls)
	assertServesCorpus(t, eng)
	require.NoError(t, eng.Close())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, rec.populates)
	assert.Equal(t, []string{"sqlite/rebuild", "sqlite/database"}, rec.loads)

	opts.ForceRebuild = true
	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 2, calls)
}

func TestSQLiteBackendRepopulatesAfterSchemaDrift(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wordnet.db")
	opts := loader.Options{Backend: config.BackendSQLite, SQLite: config.SQLiteConfig{Path: path}}

	var calls int
	require.NoError(t, load(t, opts, &calls).Close())

	client, err := sqlite.Open(ctx, config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	_, err = client.DB.ExecContext(ctx, `UPDATE metadata SET value = '0' WHERE key = 'schema_version'`)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 2, calls)
}

func TestSQLiteBackendRepopulatesOldTableShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wordnet.db")

	client, err := sqlite.Open(ctx, config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`INSERT INTO metadata (key, value) VALUES ('schema_version', '0')`,
		`CREATE TABLE lexical_entries (id TEXT PRIMARY KEY, lemma TEXT)`,
	} {
		_, err = client.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, client.Close())

	var calls int
	opts := loader.Options{Backend: config.BackendSQLite, SQLite: config.SQLiteConfig{Path: path}}
	assertServesCorpus(t, load(t, opts, &calls))
	assert.Equal(t, 1, calls)
}

func TestProgressReported(t *testing.T) {
	stages := make(map[string]int)
	opts := loader.Options{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "wordnet.db")},
		Progress: func(stage string, done, total int) {
			stages[stage] = total
		},
	}
	load(t, opts, nil)
	assert.Equal(t, 8, stages["lexical_entries"])
	assert.Equal(t, 7, stages["synsets"])
}

func TestRebuildNotifies(t *testing.T) {
	n := &notifier{}
	path := filepath.Join(t.TempDir(), "wordnet.snapshot")
	opts := loader.Options{Backend: config.BackendMemory, SnapshotPath: path, Notifier: n}

	load(t, opts, nil)
	require.Len(t, n.events, 1)
	ev := n.events[0]
	assert.Equal(t, config.BackendMemory, ev.Backend)
	assert.Equal(t, []string{"test-en"}, ev.Lexicons)
	assert.Equal(t, 8, ev.Entries)
	assert.Equal(t, 7, ev.Synsets)
	assert.False(t, ev.BuiltAt.IsZero())

	load(t, opts, nil)
	assert.Len(t, n.events, 1, "snapshot loads are not announced")
}

func TestNotifyFailureIsNotFatal(t *testing.T) {
	n := &notifier{err: errors.New("broker down")}
	opts := loader.Options{
		Backend:      config.BackendMemory,
		SnapshotPath: filepath.Join(t.TempDir(), "wordnet.snapshot"),
		Notifier:     n,
	}
	assertServesCorpus(t, load(t, opts, nil))
	assert.Len(t, n.events, 1)
}

func TestProviderFailure(t *testing.T) {
	boom := errors.New("unreadable document")
	provider := lexicon.ProviderFunc(func(context.Context) (*lexicon.Resource, error) { return nil, boom })
	opts := loader.Options{Backend: config.BackendMemory, SnapshotPath: filepath.Join(t.TempDir(), "s")}

	_, err := loader.Load(context.Background(), opts, provider)
	require.ErrorIs(t, err, boom)
}

func TestUnknownBackend(t *testing.T) {
	_, err := loader.Load(context.Background(), loader.Options{Backend: "cassandra"}, lexicontest.Provider(nil))
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Store:    config.StoreConfig{Backend: config.BackendSQLite, ForceRebuild: true},
		Snapshot: config.SnapshotConfig{Path: "/tmp/s"},
		SQLite:   config.SQLiteConfig{Path: "/tmp/db"},
	}
	opts := loader.OptionsFromConfig(cfg)
	assert.Equal(t, config.BackendSQLite, opts.Backend)
	assert.True(t, opts.ForceRebuild)
	assert.Equal(t, "/tmp/s", opts.SnapshotPath)
	assert.Equal(t, "/tmp/db", opts.SQLite.Path)
}

func TestLoadLogsStageSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts := loader.Options{
		Backend:      config.BackendMemory,
		SnapshotPath: filepath.Join(t.TempDir(), "wordnet.snapshot"),
		Logger:       logger,
	}

	var calls int
	load(t, opts, &calls)

	var spans []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.Contains(line, "msg=span") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if name, ok := strings.CutPrefix(field, "span="); ok {
				spans = append(spans, name)
			}
		}
	}
	assert.Equal(t, []string{"load", "snapshot.read", "build", "provide", "index", "snapshot.write"}, spans)
}
