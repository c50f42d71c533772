package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `<?xml version="1.0" encoding="UTF-8"?>
<LexicalResource xmlns:dc="https://globalwordnet.github.io/schemas/dc/">
  <Lexicon id="cli-en" label="CLI test lexicon" language="en" email="cli@example.com"
           license="https://creativecommons.org/licenses/by/4.0/" version="1">
    <LexicalEntry id="cat-n">
      <Lemma writtenForm="cat" partOfSpeech="n"/>
      <Sense id="cat-n-1" synset="cli-1-n"/>
    </LexicalEntry>
    <LexicalEntry id="animal-n">
      <Lemma writtenForm="animal" partOfSpeech="n"/>
      <Sense id="animal-n-1" synset="cli-2-n"/>
    </LexicalEntry>
    <Synset id="cli-1-n" partOfSpeech="n" members="cat-n">
      <Definition>a small domesticated carnivorous mammal</Definition>
      <SynsetRelation relType="hypernym" target="cli-2-n"/>
    </Synset>
    <Synset id="cli-2-n" partOfSpeech="n" members="animal-n">
      <Definition>a living organism</Definition>
      <SynsetRelation relType="hyponym" target="cli-1-n"/>
    </Synset>
  </Lexicon>
</LexicalResource>`

// setup points every data path at a temporary directory and writes the
// source document there.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	for _, key := range []string{"LG_STORE_BACKEND", "LG_SNAPSHOT_PATH", "LG_SQLITE_PATH", "LG_SOURCE_PATH"} {
		t.Setenv(key, "")
	}
	source := filepath.Join(dir, "wn.xml")
	require.NoError(t, os.WriteFile(source, []byte(testDoc), 0o644))
	return source
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDefine(t *testing.T) {
	source := setup(t)
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			out, err := run(t, "define", "Cat", "--source", source, "--backend", backend)
			require.NoError(t, err)
			want := "\ncat ~ noun\n" +
				"  1: a small domesticated carnivorous mammal\n" +
				"        Hypernyms: animal\n" +
				"\n"
			assert.Equal(t, want, out)
		})
	}
}

func TestDefineNoMatchAndPOSFilter(t *testing.T) {
	source := setup(t)

	out, err := run(t, "define", "cat", "--pos", "verb", "--source", source)
	require.NoError(t, err)
	assert.Equal(t, "No definitions found for 'cat'.\n", out)

	_, err = run(t, "define", "cat", "--pos", "gerund", "--source", source)
	require.Error(t, err)
}

func TestRandom(t *testing.T) {
	source := setup(t)
	out, err := run(t, "random", "--source", source)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Random word: "), out)
	assert.Contains(t, out, "(noun)")
}

func TestExport(t *testing.T) {
	source := setup(t)
	out, err := run(t, "export", "--source", source, "--backend", "sqlite")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"cat-n"`)
	assert.Contains(t, lines[1], `"id":"animal-n"`)
}

func TestClearDB(t *testing.T) {
	source := setup(t)
	dataDir := filepath.Join(os.Getenv("XDG_DATA_HOME"), "lexigraph")

	_, err := run(t, "random", "--source", source)
	require.NoError(t, err)
	_, err = run(t, "random", "--source", source, "--backend", "sqlite")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dataDir, "wordnet.snap"))
	assert.FileExists(t, filepath.Join(dataDir, "wordnet.db"))

	out, err := run(t, "clear-db")
	require.NoError(t, err)
	assert.Equal(t, "Database cleared successfully.\n", out)
	assert.NoFileExists(t, filepath.Join(dataDir, "wordnet.snap"))
	assert.NoFileExists(t, filepath.Join(dataDir, "wordnet.db"))
}

func TestMissingSourceFails(t *testing.T) {
	setup(t)
	_, err := run(t, "define", "cat", "--source", filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)
}

func TestUnknownBackendRejected(t *testing.T) {
	source := setup(t)
	_, err := run(t, "random", "--source", source, "--backend", "cassandra")
	require.Error(t, err)
}

func TestLoadTest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/define" || r.URL.Query().Get("word") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out, err := run(t, "loadtest", "--url", srv.URL, "--duration", "100ms", "--concurrency", "2", "--words", "cat,dog")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Results ===")
	assert.Contains(t, out, "  200: ")
	assert.NotContains(t, out, "  400: ")
	assert.Positive(t, hits.Load())
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(5), percentile(sorted, 50))
	assert.Equal(t, time.Duration(10), percentile(sorted, 99))
	assert.Equal(t, time.Duration(1), percentile(sorted, 0))
	assert.Zero(t, percentile(nil, 50))
}
