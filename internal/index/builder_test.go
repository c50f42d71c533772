package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon/lexicontest"
)

func TestBuildCorpusStats(t *testing.T) {
	_, stats := Build(lexicontest.Corpus())

	assert.Equal(t, 1, stats.Lexicons)
	assert.Equal(t, 8, stats.Entries)
	assert.Equal(t, 9, stats.Senses)
	assert.Equal(t, 7, stats.Synsets)
	assert.Equal(t, 5, stats.SenseRelations)
	assert.Equal(t, 6, stats.SynsetRelations)
	assert.Equal(t, 1, stats.UnknownSenseRelations)
	assert.Equal(t, 1, stats.UnknownSynsetRelations)
	assert.Equal(t, 1, stats.DroppedMembers)
	assert.Zero(t, stats.Duplicates)
	assert.Zero(t, stats.DanglingSynsetRefs)
}

func TestBuildLemmaIndices(t *testing.T) {
	idx, _ := Build(lexicontest.Corpus())

	assert.Equal(t, []string{"e-cat-n", "e-cat-v"}, idx.LookupIDs("CAT", nil))
	noun := lexicon.Noun
	assert.Equal(t, []string{"e-cat-n"}, idx.LookupIDs("cat", &noun))
	verb := lexicon.Verb
	assert.Equal(t, []string{"e-cat-v"}, idx.LookupIDs("Cat", &verb))
	adj := lexicon.Adjective
	assert.Empty(t, idx.LookupIDs("cat", &adj))
	assert.Empty(t, idx.LookupIDs("zebra", nil))
}

func TestBuildEveryEntryReachableByLemma(t *testing.T) {
	idx, _ := Build(lexicontest.Corpus())

	for _, id := range idx.EntryIDs {
		entry := idx.Entries[id]
		pos := entry.Lemma.PartOfSpeech
		assert.Contains(t, idx.LookupIDs(entry.Lemma.WrittenForm, &pos), id)
		assert.Contains(t, idx.LookupIDs(entry.Lemma.WrittenForm, nil), id)
	}
}

func TestBuildSenseOwnership(t *testing.T) {
	idx, _ := Build(lexicontest.Corpus())

	for senseID, entryID := range idx.SenseEntry {
		assert.Contains(t, idx.EntrySenses[entryID], senseID)
		sense, ok := idx.Sense(senseID)
		require.True(t, ok, senseID)
		assert.Equal(t, senseID, sense.ID)
		assert.Equal(t, idx.SenseSynset[senseID], sense.Synset)
	}
	assert.Equal(t, []string{"cat-n-1", "cat-n-2"}, idx.EntrySenses["e-cat-n"])
	_, ok := idx.Sense("nope")
	assert.False(t, ok)
}

func TestBuildMembershipKeepsOnlySensesTargetingSynset(t *testing.T) {
	idx, _ := Build(lexicontest.Corpus())

	// e-cat-n has senses in syn-feline and syn-guy; each synset gets only its own.
	assert.Equal(t, []string{"cat-n-1", "feline-n-1"}, idx.SynsetMembers["syn-feline"])
	assert.Equal(t, []string{"cat-n-2", "guy-n-1"}, idx.SynsetMembers["syn-guy"])
	// e-dog is listed in syn-cold but its only sense targets syn-dog.
	assert.Equal(t, []string{"cold-a-1"}, idx.SynsetMembers["syn-cold"])
}

func TestBuildMembershipDropsForeignSense(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "one", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "w1-s", Synset: "y1"}}},
			{ID: "w2", Lemma: lexicon.Lemma{WrittenForm: "two", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "w2-s", Synset: "y2"}}},
		},
		Synsets: []lexicon.Synset{
			{ID: "y1", PartOfSpeech: lexicon.Noun, Members: "w1 w2"},
			{ID: "y2", PartOfSpeech: lexicon.Noun, Members: "w2 ghost w2"},
		},
	}}}

	idx, stats := Build(res)

	assert.Equal(t, []string{"w1-s"}, idx.SynsetMembers["y1"])
	assert.Equal(t, []string{"w2-s"}, idx.SynsetMembers["y2"])
	// w2 in y1 and ghost in y2; the repeated w2 is not counted twice.
	assert.Equal(t, 2, stats.DroppedMembers)
}

func TestBuildRelationIndices(t *testing.T) {
	idx, _ := Build(lexicontest.Corpus())

	assert.Equal(t, []string{"syn-mammal"}, idx.RelatedSynsetIDs("syn-feline", lexicon.SynsetRelHypernym))
	assert.Equal(t, []string{"syn-feline", "syn-dog"}, idx.RelatedSynsetIDs("syn-mammal", lexicon.SynsetRelHyponym))
	assert.Equal(t, []string{"syn-dog"}, idx.RelatedSynsetIDs("syn-mammal", lexicon.SynsetRelUnknown))
	assert.Empty(t, idx.RelatedSynsetIDs("syn-dog", lexicon.SynsetRelHyponym))
	assert.Empty(t, idx.RelatedSynsetIDs("nope", lexicon.SynsetRelHypernym))

	assert.Equal(t, []string{"cold-a-1"}, idx.RelatedSenseIDs("hot-a-1", lexicon.SenseRelAntonym))
	assert.Equal(t, []string{"cold-a-1"}, idx.RelatedSenseIDs("hot-a-1", lexicon.SenseRelOther))
	assert.Equal(t, []string{"missing-sense"}, idx.RelatedSenseIDs("cold-a-1", lexicon.SenseRelAlso))
}

func TestBuildDeduplicates(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "one", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "s1", Synset: "y1", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", "s2"),
					lexicon.NewSenseRelation("antonym", "s2"),
				}}}},
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "uno", PartOfSpeech: lexicon.Noun}},
			{ID: "w2", Lemma: lexicon.Lemma{WrittenForm: "two", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "s1", Synset: "y1"}, {ID: "s2", Synset: "y1"}}},
		},
		Synsets: []lexicon.Synset{
			{ID: "y1", Members: "w1 w2"},
			{ID: "y1", Members: "w2"},
		},
	}}}

	idx, stats := Build(res)

	assert.Equal(t, 4, stats.Duplicates)
	assert.Equal(t, "one", idx.Entries["w1"].Lemma.WrittenForm)
	assert.Empty(t, idx.LookupIDs("uno", nil))
	assert.Equal(t, "w1", idx.SenseEntry["s1"])
	assert.Equal(t, []string{"s2"}, idx.EntrySenses["w2"])
	assert.Len(t, idx.Entries["w1"].Senses[0].Relations, 1)
	assert.Equal(t, []string{"s1", "s2"}, idx.SynsetMembers["y1"])
}

func TestBuildKeepsDistinctUnknownCodes(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "one", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "s1", Synset: "a", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("foo_rel", "s2"),
					lexicon.NewSenseRelation("bar_rel", "s2"),
				}}}},
			{ID: "w2", Lemma: lexicon.Lemma{WrittenForm: "two", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "s2", Synset: "b"}}},
		},
		Synsets: []lexicon.Synset{
			{ID: "a", Members: "w1", Relations: []lexicon.SynsetRelation{
				lexicon.NewSynsetRelation("foo_rel", "b"),
				lexicon.NewSynsetRelation("bar_rel", "b"),
			}},
			{ID: "b", Members: "w2"},
		},
	}}}

	idx, stats := Build(res)

	assert.Zero(t, stats.Duplicates)
	synRels := idx.Synsets["a"].Relations
	require.Len(t, synRels, 2)
	assert.Equal(t, "foo_rel", synRels[0].Code())
	assert.Equal(t, "bar_rel", synRels[1].Code())
	assert.Equal(t, []string{"b"}, idx.RelatedSynsetIDs("a", lexicon.SynsetRelUnknown))

	sense, ok := idx.Sense("s1")
	require.True(t, ok)
	require.Len(t, sense.Relations, 2)
	assert.Equal(t, "foo_rel", sense.Relations[0].Raw)
	assert.Equal(t, "bar_rel", sense.Relations[1].Raw)
	assert.Equal(t, []string{"s2"}, idx.RelatedSenseIDs("s1", lexicon.SenseRelOther))
}

func TestBuildCountsDanglingSynsetReferences(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "w1", Lemma: lexicon.Lemma{WrittenForm: "one", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "s1", Synset: "never-defined"}}},
		},
	}}}

	idx, stats := Build(res)

	assert.Equal(t, 1, stats.DanglingSynsetRefs)
	assert.Equal(t, "never-defined", idx.SenseSynset["s1"])
}

func TestBuildCatDogScenario(t *testing.T) {
	res := &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID: "test-en",
		Entries: []lexicon.LexicalEntry{
			{ID: "cat", Lemma: lexicon.Lemma{WrittenForm: "cat", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "cat-1", Synset: "syn1"}}},
			{ID: "dog", Lemma: lexicon.Lemma{WrittenForm: "dog", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "dog-1", Synset: "syn2"}}},
		},
		Synsets: []lexicon.Synset{
			{ID: "syn1", PartOfSpeech: lexicon.Noun, Members: "cat",
				Definitions: []lexicon.Definition{{Text: "a small domesticated carnivorous mammal"}}},
			{ID: "syn2", PartOfSpeech: lexicon.Noun, Members: "dog"},
		},
	}}}

	idx, _ := Build(res)
	assert.Equal(t, []string{"cat"}, idx.LookupIDs("CAT", nil))
	assert.Equal(t, []string{"cat-1"}, idx.SynsetMembers["syn1"])
	assert.Empty(t, idx.RelatedSynsetIDs("syn1", lexicon.SynsetRelHypernym))

	res.Lexicons[0].Synsets[0].Relations = []lexicon.SynsetRelation{lexicon.NewSynsetRelation("hypernym", "syn2")}
	idx, _ = Build(res)
	assert.Equal(t, []string{"syn2"}, idx.RelatedSynsetIDs("syn1", lexicon.SynsetRelHypernym))
}

func TestBuildSyntheticCorpus(t *testing.T) {
	idx, stats := Build(lexicontest.Synthetic(50))

	assert.Equal(t, 50, stats.Entries)
	assert.Equal(t, 50, stats.Synsets)
	assert.Zero(t, stats.DroppedMembers)
	assert.Equal(t, []string{"syn-12"}, idx.RelatedSynsetIDs("syn-25", lexicon.SynsetRelHypernym))
	assert.Equal(t, []string{"word0-n-1"}, idx.RelatedSenseIDs("word49-n-1", lexicon.SenseRelAntonym))
}
