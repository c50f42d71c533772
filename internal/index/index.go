// Package index builds the cross-reference indices over a parsed lexical
// resource. An Index is written once by Build and is read-only afterwards, so
// any number of goroutines may share it without locking.
package index

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Index holds the primary records and every derived lookup table. Fields are
// exported so the snapshot codec can serialize the structure as-is; callers
// must treat them as immutable.
type Index struct {
	Lexicons []lexicon.Lexicon

	Entries   map[string]lexicon.LexicalEntry
	Synsets   map[string]lexicon.Synset
	EntryIDs  []string
	SynsetIDs []string

	ByLemma    map[string][]string
	ByLemmaPOS map[string][]string

	EntrySenses  map[string][]string
	SenseEntry   map[string]string
	SenseOrdinal map[string]int
	SenseSynset  map[string]string

	SynsetMembers map[string][]string

	SenseRelations  map[string]map[lexicon.SenseRelType][]string
	SynsetRelations map[string]map[lexicon.SynsetRelType][]string

	EntryLexicon  map[string]string
	SynsetLexicon map[string]string
}

func newIndex() *Index {
	return &Index{
		Entries:         make(map[string]lexicon.LexicalEntry),
		Synsets:         make(map[string]lexicon.Synset),
		ByLemma:         make(map[string][]string),
		ByLemmaPOS:      make(map[string][]string),
		EntrySenses:     make(map[string][]string),
		SenseEntry:      make(map[string]string),
		SenseOrdinal:    make(map[string]int),
		SenseSynset:     make(map[string]string),
		SynsetMembers:   make(map[string][]string),
		SenseRelations:  make(map[string]map[lexicon.SenseRelType][]string),
		SynsetRelations: make(map[string]map[lexicon.SynsetRelType][]string),
		EntryLexicon:    make(map[string]string),
		SynsetLexicon:   make(map[string]string),
	}
}

// Fold is the case folding applied to written forms on both the index and
// the query side.
func Fold(lemma string) string {
	return strings.ToLower(lemma)
}

// LemmaPOSKey is the ByLemmaPOS key for an already folded lemma.
func LemmaPOSKey(folded string, pos lexicon.PartOfSpeech) string {
	return folded + "\x00" + string(pos)
}

// LookupIDs returns the ids of entries whose folded lemma matches, optionally
// restricted to one part of speech. The returned slice must not be modified.
func (idx *Index) LookupIDs(lemma string, pos *lexicon.PartOfSpeech) []string {
	folded := Fold(lemma)
	if pos == nil {
		return idx.ByLemma[folded]
	}
	return idx.ByLemmaPOS[LemmaPOSKey(folded, *pos)]
}

// Sense resolves a sense id to its record inside the owning entry.
func (idx *Index) Sense(id string) (lexicon.Sense, bool) {
	entryID, ok := idx.SenseEntry[id]
	if !ok {
		return lexicon.Sense{}, false
	}
	entry, ok := idx.Entries[entryID]
	if !ok {
		return lexicon.Sense{}, false
	}
	pos, ok := idx.SenseOrdinal[id]
	if !ok || pos >= len(entry.Senses) || entry.Senses[pos].ID != id {
		return lexicon.Sense{}, false
	}
	return entry.Senses[pos], true
}

// RelatedSenseIDs returns the targets of kind edges leaving a sense.
func (idx *Index) RelatedSenseIDs(senseID string, kind lexicon.SenseRelType) []string {
	return idx.SenseRelations[senseID][kind]
}

// RelatedSynsetIDs returns the targets of kind edges leaving a synset.
func (idx *Index) RelatedSynsetIDs(synsetID string, kind lexicon.SynsetRelType) []string {
	return idx.SynsetRelations[synsetID][kind]
}

// Counts summarises the size of an index.
type Counts struct {
	Lexicons int `json:"lexicons"`
	Entries  int `json:"entries"`
	Senses   int `json:"senses"`
	Synsets  int `json:"synsets"`
}

func (idx *Index) Counts() Counts {
	return Counts{
		Lexicons: len(idx.Lexicons),
		Entries:  len(idx.Entries),
		Senses:   len(idx.SenseEntry),
		Synsets:  len(idx.Synsets),
	}
}
