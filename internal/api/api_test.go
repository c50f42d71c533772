package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/api"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon/lexicontest"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/memory"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/middleware"
)

func newServer(t *testing.T, eng query.Engine, m *metrics.Metrics) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(eng, time.Second), health.NewChecker(), m, nil))
	t.Cleanup(srv.Close)
	return srv
}

func corpusEngine() query.Engine {
	idx, _ := index.Build(lexicontest.Corpus())
	return memory.New(idx)
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type list[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

type errorBody struct {
	Error string `json:"error"`
}

func TestLookupEntries(t *testing.T) {
	srv := newServer(t, corpusEngine(), nil)

	var all list[lexicon.LexicalEntry]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/entries?lemma=CAT", &all))
	assert.Equal(t, 2, all.Count)

	var verbs list[lexicon.LexicalEntry]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/entries?lemma=cat&pos=verb", &verbs))
	require.Len(t, verbs.Items, 1)
	assert.Equal(t, "e-cat-v", verbs.Items[0].ID)

	var none list[lexicon.LexicalEntry]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/entries?lemma=unicorn", &none))
	assert.NotNil(t, none.Items)
	assert.Zero(t, none.Count)
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t, corpusEngine(), nil)
	tests := map[string]string{
		"/api/v1/entries":                             "lemma is required",
		"/api/v1/entries?lemma=cat&pos=noun-ish":      `unknown part of speech "noun-ish"`,
		"/api/v1/senses/hot-a-1/related":              `unknown sense relation ""`,
		"/api/v1/senses/hot-a-1/related?rel=opposite": `unknown sense relation "opposite"`,
		"/api/v1/synsets/syn-feline/related?rel=up":   `unknown synset relation "up"`,
		"/api/v1/define":                              "word is required",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, http.StatusBadRequest, get(t, srv, path, &body))
			assert.Equal(t, want, body.Error)
		})
	}
}

func TestNotFound(t *testing.T) {
	srv := newServer(t, corpusEngine(), nil)
	for _, path := range []string{
		"/api/v1/entries/nope",
		"/api/v1/entries/nope/senses",
		"/api/v1/senses/nope",
		"/api/v1/senses/nope/entry",
		"/api/v1/synsets/nope",
		"/api/v1/synsets/nope/senses",
		"/api/v1/synsets/nope/synonyms",
	} {
		t.Run(path, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, http.StatusNotFound, get(t, srv, path, &body))
			assert.Contains(t, body.Error, "nope")
		})
	}
}

func TestRecordRoutes(t *testing.T) {
	srv := newServer(t, corpusEngine(), nil)

	var entry lexicon.LexicalEntry
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/senses/cat-n-2/entry", &entry))
	assert.Equal(t, "e-cat-n", entry.ID)

	var senses list[lexicon.Sense]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/entries/e-cat-n/senses", &senses))
	assert.Equal(t, 2, senses.Count)

	var synset lexicon.Synset
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/synsets/syn-feline", &synset))
	assert.Equal(t, "i46360", synset.ILI)

	var members list[lexicon.Sense]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/synsets/syn-cold/senses", &members))
	require.Len(t, members.Items, 1)
	assert.Equal(t, "cold-a-1", members.Items[0].ID)

	var antonyms list[lexicon.Sense]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/senses/cold-a-1/related?rel=antonym", &antonyms))
	require.Len(t, antonyms.Items, 1)
	assert.Equal(t, "hot-a-1", antonyms.Items[0].ID)

	var hyponyms list[lexicon.Synset]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/synsets/syn-mammal/related?rel=hyponym", &hyponyms))
	assert.Equal(t, 2, hyponyms.Count)

	var unknown list[lexicon.Synset]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/synsets/syn-mammal/related?rel=unknown", &unknown))
	require.Len(t, unknown.Items, 1)
	assert.Equal(t, "syn-dog", unknown.Items[0].ID)

	var synonyms list[string]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/synsets/syn-feline/synonyms?exclude=Cat", &synonyms))
	assert.Equal(t, []string{"feline"}, synonyms.Items)

	var lexicons list[lexicon.Lexicon]
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/lexicons", &lexicons))
	require.Len(t, lexicons.Items, 1)
	assert.Equal(t, "test-en", lexicons.Items[0].ID)

	var random lexicon.LexicalEntry
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/random", &random))
	assert.NotEmpty(t, random.ID)
}

func TestDefine(t *testing.T) {
	srv := newServer(t, corpusEngine(), nil)
	var views struct {
		Items []struct {
			Lemma  string `json:"lemma"`
			Senses []struct {
				Antonyms []string `json:"antonyms"`
			} `json:"senses"`
		} `json:"items"`
	}
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/define?word=hot&pos=a", &views))
	require.Len(t, views.Items, 1)
	require.Len(t, views.Items[0].Senses, 1)
	assert.Equal(t, []string{"cold"}, views.Items[0].Senses[0].Antonyms)
}

func TestNotLoadedYet(t *testing.T) {
	holder := query.NewHolder()
	srv := newServer(t, holder, nil)

	var body errorBody
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/api/v1/random", &body))
	assert.Contains(t, body.Error, "not loaded")

	holder.Set(corpusEngine())
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/v1/random", nil))
}

// slowEngine answers lookups long after any test deadline.
type slowEngine struct {
	query.Engine
}

func (slowEngine) LookupEntries(context.Context, string, *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	time.Sleep(200 * time.Millisecond)
	return nil, nil
}

func TestRequestTimeout(t *testing.T) {
	h := api.NewHandler(slowEngine{corpusEngine()}, 20*time.Millisecond)
	srv := httptest.NewServer(api.NewRouter(h, health.NewChecker(), nil, nil))
	t.Cleanup(srv.Close)

	var body errorBody
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/api/v1/entries?lemma=cat", &body))
	assert.Contains(t, body.Error, "timed out")
}

func TestHealthAndMetrics(t *testing.T) {
	m := metrics.New(nil)
	srv := newServer(t, corpusEngine(), m)

	assert.Equal(t, http.StatusOK, get(t, srv, "/health/live", nil))
	assert.Equal(t, http.StatusOK, get(t, srv, "/health/ready", nil))

	get(t, srv, "/api/v1/entries/e-dog", nil)
	get(t, srv, "/api/v1/entries/e-cat-n", nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/entries/{id}", "200")))

	resp, err := http.Get(srv.URL + "/api/v1/random")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	limiter := middleware.NewLimiter(2, time.Minute)
	t.Cleanup(limiter.Close)
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(corpusEngine(), time.Second), health.NewChecker(), nil, limiter))
	t.Cleanup(srv.Close)

	assert.Equal(t, http.StatusOK, get(t, srv, "/api/v1/lexicons", nil))
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/v1/lexicons", nil))

	var body errorBody
	assert.Equal(t, http.StatusTooManyRequests, get(t, srv, "/api/v1/lexicons", &body))
	assert.Equal(t, "rate limit exceeded", body.Error)
	assert.Equal(t, http.StatusOK, get(t, srv, "/health/ready", nil))
}
