package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

func TestParsePartOfSpeech(t *testing.T) {
	tests := []struct {
		in   string
		want PartOfSpeech
	}{
		{"n", Noun},
		{"Noun", Noun},
		{"verb", Verb},
		{"adj", Adjective},
		{"adverb", Adverb},
		{"adj_sat", AdjectiveSatellite},
		{"adjective_satellite", AdjectiveSatellite},
		{"conj", Conjunction},
		{"adp", Adposition},
		{" x ", OtherPOS},
		{"unknown", UnknownPOS},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePartOfSpeech(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePartOfSpeech("q")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPartOfSpeechNames(t *testing.T) {
	assert.Equal(t, "adjective satellite", AdjectiveSatellite.Name())
	assert.Equal(t, "noun", Noun.Name())
	assert.Equal(t, "s", AdjectiveSatellite.String())
	assert.True(t, Adposition.Valid())
	assert.False(t, PartOfSpeech("z").Valid())
}

func TestParseSenseRelTypeFallsBackToOther(t *testing.T) {
	assert.Equal(t, SenseRelAntonym, ParseSenseRelType("antonym"))
	assert.Equal(t, SenseRelOther, ParseSenseRelType("similar_to_but_new"))
	assert.True(t, SenseRelDerivation.Known())
	assert.False(t, SenseRelOther.Known())
}

func TestParseSynsetRelType(t *testing.T) {
	assert.Equal(t, SynsetRelHypernym, ParseSynsetRelType("hypernym"))
	assert.Equal(t, SynsetRelSecondaryAspectIp, ParseSynsetRelType("secondary_aspect_ip"))
	assert.Equal(t, SynsetRelOther, ParseSynsetRelType("other"))
	assert.True(t, SynsetRelOther.Known())
	assert.Equal(t, SynsetRelUnknown, ParseSynsetRelType("hyperonym"))
	assert.False(t, SynsetRelUnknown.Known())
}

func TestRelationsKeepRawCode(t *testing.T) {
	known := NewSenseRelation("antonym", "s2")
	assert.Equal(t, SenseRelAntonym, known.Kind)
	assert.Empty(t, known.Raw)
	assert.Equal(t, "antonym", known.Code())

	odd := NewSenseRelation("similar", "s3")
	assert.Equal(t, SenseRelOther, odd.Kind)
	assert.Equal(t, "similar", odd.Code())

	syn := NewSynsetRelation("hyperonym", "y1")
	assert.Equal(t, SynsetRelUnknown, syn.Kind)
	assert.Equal(t, "hyperonym", syn.Code())
}

func TestParseMembers(t *testing.T) {
	assert.Equal(t, []string{"w1", "w2", "w3"}, ParseMembers("  w1 w2\tw3\n"))
	assert.Empty(t, ParseMembers(""))
}

func TestLexiconMetadataDropsRecords(t *testing.T) {
	lex := Lexicon{
		ID:      "test-en",
		Entries: []LexicalEntry{{ID: "w1"}},
		Synsets: []Synset{{ID: "y1"}},
	}
	meta := lex.Metadata()
	assert.Equal(t, "test-en", meta.ID)
	assert.Nil(t, meta.Entries)
	assert.Nil(t, meta.Synsets)
	assert.Len(t, lex.Entries, 1)
}
