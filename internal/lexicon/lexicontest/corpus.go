// Package lexicontest provides a small, hand-built corpus shared by the
// index, store and API tests.
package lexicontest

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Corpus returns a fresh resource exercising homographs, multi-synset
// entries, sense and synset relations, an unrecognised relation kind, a
// member entry with no sense in its synset and a dangling sense target.
//
//	syn-feline  {cat(n)#1, feline}   hypernym -> syn-mammal
//	syn-dog     {dog}                hypernym -> syn-mammal
//	syn-guy     {cat(n)#2, guy}
//	syn-mammal  {mammal}             hyponym -> syn-feline, syn-dog; "hyperonym" -> syn-dog
//	syn-vomit   {cat(v)}
//	syn-hot     {hot}                sense hot#1 antonym -> cold#1
//	syn-cold    {cold} members also list dog, which has no sense there
func Corpus() *lexicon.Resource {
	score := 0.95
	return &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID:              "test-en",
		Label:           "Test English WordNet",
		Language:        "en",
		Email:           "test@example.com",
		License:         "https://creativecommons.org/licenses/by/4.0/",
		Version:         "2024",
		ConfidenceScore: &score,
		Publisher:       "Test Publisher",
		Requires:        []lexicon.Requirement{{ID: "ili", Version: "1.0"}},
		Entries: []lexicon.LexicalEntry{
			{
				ID:    "e-cat-n",
				Lemma: lexicon.Lemma{WrittenForm: "cat", PartOfSpeech: lexicon.Noun},
				Pronunciations: []lexicon.Pronunciation{
					{Variety: "en-GB-fonipa", Phonemic: true, Audio: "http://example.com/cat.mp3", Text: "kæt"},
					{Variety: "en-US-fonipa", Phonemic: false, Text: "kæʔ"},
				},
				Senses: []lexicon.Sense{
					{ID: "cat-n-1", Synset: "syn-feline", Relations: []lexicon.SenseRelation{
						lexicon.NewSenseRelation("derivation", "cat-v-1"),
					}},
					{ID: "cat-n-2", Synset: "syn-guy"},
				},
			},
			{
				ID:     "e-cat-v",
				Lemma:  lexicon.Lemma{WrittenForm: "Cat", PartOfSpeech: lexicon.Verb},
				Senses: []lexicon.Sense{{ID: "cat-v-1", Synset: "syn-vomit"}},
			},
			{
				ID:     "e-feline",
				Lemma:  lexicon.Lemma{WrittenForm: "feline", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "feline-n-1", Synset: "syn-feline"}},
			},
			{
				ID:     "e-dog",
				Lemma:  lexicon.Lemma{WrittenForm: "dog", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "dog-n-1", Synset: "syn-dog"}},
			},
			{
				ID:     "e-guy",
				Lemma:  lexicon.Lemma{WrittenForm: "guy", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "guy-n-1", Synset: "syn-guy"}},
			},
			{
				ID:     "e-mammal",
				Lemma:  lexicon.Lemma{WrittenForm: "mammal", PartOfSpeech: lexicon.Noun},
				Senses: []lexicon.Sense{{ID: "mammal-n-1", Synset: "syn-mammal"}},
			},
			{
				ID:    "e-hot",
				Lemma: lexicon.Lemma{WrittenForm: "hot", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "hot-a-1", Synset: "syn-hot", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", "cold-a-1"),
					lexicon.NewSenseRelation("similar", "cold-a-1"),
				}}},
			},
			{
				ID:    "e-cold",
				Lemma: lexicon.Lemma{WrittenForm: "cold", PartOfSpeech: lexicon.Adjective},
				Senses: []lexicon.Sense{{ID: "cold-a-1", Synset: "syn-cold", Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", "hot-a-1"),
					lexicon.NewSenseRelation("also", "missing-sense"),
				}}},
			},
		},
		Synsets: []lexicon.Synset{
			{
				ID:           "syn-feline",
				ILI:          "i46360",
				PartOfSpeech: lexicon.Noun,
				Members:      "e-cat-n e-feline",
				Definitions:  []lexicon.Definition{{Text: "a small domesticated carnivorous mammal"}},
				ILIDefinition: &lexicon.ILIDefinition{
					Text: "feline mammal usually having thick soft fur",
				},
				Relations: []lexicon.SynsetRelation{lexicon.NewSynsetRelation("hypernym", "syn-mammal")},
				Examples:  []lexicon.Example{{Source: "PWN", Text: "the cat sat on the mat"}},
			},
			{
				ID:           "syn-dog",
				PartOfSpeech: lexicon.Noun,
				Members:      "e-dog",
				Definitions:  []lexicon.Definition{{Text: "a domesticated canid"}},
				Relations:    []lexicon.SynsetRelation{lexicon.NewSynsetRelation("hypernym", "syn-mammal")},
			},
			{
				ID:           "syn-guy",
				PartOfSpeech: lexicon.Noun,
				Members:      "e-cat-n e-guy",
				Definitions:  []lexicon.Definition{{Source: "slang", Text: "an informal term for a man"}},
			},
			{
				ID:           "syn-mammal",
				PartOfSpeech: lexicon.Noun,
				Members:      "e-mammal",
				Definitions: []lexicon.Definition{
					{Text: "any warm-blooded vertebrate"},
					{Text: "having the skin more or less covered with hair"},
				},
				Relations: []lexicon.SynsetRelation{
					lexicon.NewSynsetRelation("hyponym", "syn-feline"),
					lexicon.NewSynsetRelation("hyponym", "syn-dog"),
					lexicon.NewSynsetRelation("hyperonym", "syn-dog"),
				},
			},
			{
				ID:           "syn-vomit",
				PartOfSpeech: lexicon.Verb,
				Members:      "e-cat-v",
				Definitions:  []lexicon.Definition{{Text: "eject the contents of the stomach"}},
			},
			{
				ID:           "syn-hot",
				PartOfSpeech: lexicon.Adjective,
				Members:      "e-hot",
				Definitions:  []lexicon.Definition{{Text: "used of physical heat"}},
				Relations:    []lexicon.SynsetRelation{lexicon.NewSynsetRelation("similar", "syn-cold")},
			},
			{
				ID:           "syn-cold",
				PartOfSpeech: lexicon.Adjective,
				Members:      "e-cold e-dog",
				Definitions:  []lexicon.Definition{{Text: "having a low temperature"}},
				Examples:     []lexicon.Example{{Text: "a cold day"}, {Text: "cold water"}},
			},
		},
	}}}
}

// Provider returns a lexicon.Provider serving Corpus and counting calls.
func Provider(calls *int) lexicon.Provider {
	return lexicon.ProviderFunc(func(context.Context) (*lexicon.Resource, error) {
		if calls != nil {
			*calls++
		}
		return Corpus(), nil
	})
}
