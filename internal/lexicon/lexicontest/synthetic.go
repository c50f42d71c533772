package lexicontest

import (
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Synthetic returns a resource with n noun entries named word0..word{n-1},
// each owning one sense in its own synset. Synset i has synset i/2 as its
// hypernym, and sense i is an antonym of sense (i+1) mod n.
func Synthetic(n int) *lexicon.Resource {
	entries := make([]lexicon.LexicalEntry, 0, n)
	synsets := make([]lexicon.Synset, 0, n)
	for i := range n {
		entryID := fmt.Sprintf("e-word%d", i)
		synsetID := fmt.Sprintf("syn-%d", i)
		entries = append(entries, lexicon.LexicalEntry{
			ID:    entryID,
			Lemma: lexicon.Lemma{WrittenForm: fmt.Sprintf("word%d", i), PartOfSpeech: lexicon.Noun},
			Senses: []lexicon.Sense{{
				ID:     fmt.Sprintf("word%d-n-1", i),
				Synset: synsetID,
				Relations: []lexicon.SenseRelation{
					lexicon.NewSenseRelation("antonym", fmt.Sprintf("word%d-n-1", (i+1)%n)),
				},
			}},
		})
		synset := lexicon.Synset{
			ID:           synsetID,
			PartOfSpeech: lexicon.Noun,
			Members:      entryID,
			Definitions:  []lexicon.Definition{{Text: fmt.Sprintf("the meaning of word%d", i)}},
			Examples:     []lexicon.Example{{Text: fmt.Sprintf("use word%d in a sentence", i)}},
		}
		if i > 0 {
			synset.Relations = []lexicon.SynsetRelation{lexicon.NewSynsetRelation("hypernym", fmt.Sprintf("syn-%d", i/2))}
		}
		synsets = append(synsets, synset)
	}
	return &lexicon.Resource{Lexicons: []lexicon.Lexicon{{
		ID:       "synthetic-en",
		Label:    "Synthetic English",
		Language: "en",
		Version:  "1",
		Entries:  entries,
		Synsets:  synsets,
	}}}
}
