package query_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon/lexicontest"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/memory"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

func corpusEngine(t *testing.T) query.Engine {
	t.Helper()
	idx, _ := index.Build(lexicontest.Corpus())
	return memory.New(idx)
}

func TestSynonymsExcludeCurrentForm(t *testing.T) {
	eng := corpusEngine(t)
	ctx := context.Background()

	got, err := query.Synonyms(ctx, eng, "syn-feline", "CAT")
	require.NoError(t, err)
	assert.Equal(t, []string{"feline"}, got)

	got, err = query.Synonyms(ctx, eng, "syn-guy", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "guy"}, got)

	_, err = query.Synonyms(ctx, eng, "nope", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRelatedSenseLemmas(t *testing.T) {
	eng := corpusEngine(t)
	ctx := context.Background()

	got, err := query.RelatedSenseLemmas(ctx, eng, "syn-hot", lexicon.SenseRelAntonym)
	require.NoError(t, err)
	assert.Equal(t, []string{"cold"}, got)

	got, err = query.RelatedSenseLemmas(ctx, eng, "syn-cold", lexicon.SenseRelAlso)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRelatedSenseLemmasSkipSameSynset(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "big", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "s1", Synset: "y1", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", "s2"),
					lexicon.NewSenseRelation("antonym", "s3"),
				}}}},
			{ID: "w2", Lemma: lexicon.Lemma{WrittenForm: "large", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "s2", Synset: "y1", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", "s4"),
				}}}},
			{ID: "w3", Lemma: lexicon.Lemma{WrittenForm: "small", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "s3", Synset: "y2"}}},
			{ID: "w4", Lemma: lexicon.Lemma{WrittenForm: "little", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "s4", Synset: "y2"}}},
		},
		Synsets: []lexicon.Synset{
			{ID: "y1", Members: "w1 w2"},
			{ID: "y2", Members: "w3 w4"},
		},
	}}}
	idx, _ := index.Build(res)
	eng := memory.New(idx)

	got, err := query.RelatedSenseLemmas(context.Background(), eng, "y1", lexicon.SenseRelAntonym)
	require.NoError(t, err)
	// s1 -> s2 stays inside y1; antonyms are unioned over big and large.
	assert.Equal(t, []string{"little", "small"}, got)
}

func TestRelatedSynsetLemmas(t *testing.T) {
	eng := corpusEngine(t)
	ctx := context.Background()

	got, err := query.RelatedSynsetLemmas(ctx, eng, "syn-mammal", lexicon.SynsetRelHyponym)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "feline"}, got)

	got, err = query.RelatedSynsetLemmas(ctx, eng, "syn-feline", lexicon.SynsetRelHypernym)
	require.NoError(t, err)
	assert.Equal(t, []string{"mammal"}, got)

	got, err = query.RelatedSynsetLemmas(ctx, eng, "syn-dog", lexicon.SynsetRelHyponym)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHolderBeforeAndAfterLoad(t *testing.T) {
	h := query.NewHolder()
	ctx := context.Background()
	assert.False(t, h.Ready())

	_, err := h.LookupEntries(ctx, "cat", nil)
	assert.ErrorIs(t, err, apperrors.ErrState)
	_, err = h.GetRandomEntry(ctx)
	assert.ErrorIs(t, err, apperrors.ErrState)
	for _, err := range h.AllEntries(ctx) {
		assert.ErrorIs(t, err, apperrors.ErrState)
	}

	assert.Nil(t, h.Set(corpusEngine(t)))
	assert.True(t, h.Ready())

	entries, err := h.LookupEntries(ctx, "cat", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	prev := h.Set(corpusEngine(t))
	assert.NotNil(t, prev)
	require.NoError(t, h.Close())
	assert.False(t, h.Ready())
}

func TestHolderConcurrentSwap(t *testing.T) {
	h := query.NewHolder()
	h.Set(corpusEngine(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				members, err := h.GetSensesForSynset(ctx, "syn-feline")
				assert.NoError(t, err)
				assert.Len(t, members, 2)
			}
		}()
	}
	for range 10 {
		h.Set(corpusEngine(t))
	}
	wg.Wait()
}

type observation struct {
	op, backend string
	err         error
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (r *fakeRecorder) ObserveQuery(op, backend string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{op, backend, err})
}

func TestInstrumentedRecordsEachCall(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	eng := query.NewInstrumented(corpusEngine(t), "memory", rec)

	_, err := eng.LookupEntries(ctx, "cat", nil)
	require.NoError(t, err)
	_, err = eng.GetSynset(ctx, "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	for range eng.AllEntries(ctx) {
		break
	}

	require.Len(t, rec.obs, 3)
	assert.Equal(t, observation{"lookup_entries", "memory", nil}, rec.obs[0])
	assert.Equal(t, "get_synset", rec.obs[1].op)
	assert.ErrorIs(t, rec.obs[1].err, apperrors.ErrNotFound)
	assert.Equal(t, "all_entries", rec.obs[2].op)
	assert.NoError(t, rec.obs[2].err)
}
