// Package lexicon defines the record model of a WordNet lexical resource:
// lexicons, entries, senses, synsets and the typed relations between them.
// Values are plain data; indexing and querying live in other packages.
package lexicon

import (
	"context"
	"strings"
)

// Resource is the root of a parsed document: one or more lexicons.
type Resource struct {
	Lexicons []Lexicon `json:"lexicons"`
}

// Provider produces a fully parsed resource. Where the document comes from
// (a local file, a download, a fixture) is opaque to the caller.
type Provider interface {
	Provide(ctx context.Context) (*Resource, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (*Resource, error)

func (f ProviderFunc) Provide(ctx context.Context) (*Resource, error) {
	return f(ctx)
}

// Lexicon carries the metadata of one lexicon together with the entries and
// synsets it owns. Query results return lexicons without Entries and Synsets.
type Lexicon struct {
	ID              string        `json:"id"`
	Label           string        `json:"label"`
	Language        string        `json:"language"`
	Email           string        `json:"email,omitempty"`
	License         string        `json:"license,omitempty"`
	Version         string        `json:"version"`
	URL             string        `json:"url,omitempty"`
	Citation        string        `json:"citation,omitempty"`
	Logo            string        `json:"logo,omitempty"`
	Status          string        `json:"status,omitempty"`
	ConfidenceScore *float64      `json:"confidence_score,omitempty"`
	Publisher       string        `json:"publisher,omitempty"`
	Contributor     string        `json:"contributor,omitempty"`
	Requires        []Requirement `json:"requires,omitempty"`

	Entries []LexicalEntry `json:"entries,omitempty"`
	Synsets []Synset       `json:"synsets,omitempty"`
}

// Metadata returns a copy of l without its entries and synsets.
func (l Lexicon) Metadata() Lexicon {
	l.Entries = nil
	l.Synsets = nil
	return l
}

// Requirement names another lexicon this one depends on.
type Requirement struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// LexicalEntry is a written form with its pronunciations and ordered senses.
type LexicalEntry struct {
	ID             string          `json:"id"`
	Lemma          Lemma           `json:"lemma"`
	Pronunciations []Pronunciation `json:"pronunciations,omitempty"`
	Senses         []Sense         `json:"senses,omitempty"`
}

type Lemma struct {
	WrittenForm  string       `json:"written_form"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
}

// Pronunciation is one transcription of an entry. Phonemic is true unless the
// document says otherwise.
type Pronunciation struct {
	Variety  string `json:"variety,omitempty"`
	Notation string `json:"notation,omitempty"`
	Phonemic bool   `json:"phonemic"`
	Audio    string `json:"audio,omitempty"`
	Text     string `json:"text"`
}

// Sense links its owning entry to exactly one synset.
type Sense struct {
	ID        string          `json:"id"`
	Synset    string          `json:"synset"`
	Relations []SenseRelation `json:"relations,omitempty"`
}

// Synset is a concept. Members lists entry ids, not sense ids; the senses that
// actually belong to the synset are derived at index time.
type Synset struct {
	ID            string           `json:"id"`
	ILI           string           `json:"ili,omitempty"`
	PartOfSpeech  PartOfSpeech     `json:"part_of_speech,omitempty"`
	Members       string           `json:"members,omitempty"`
	Definitions   []Definition     `json:"definitions,omitempty"`
	ILIDefinition *ILIDefinition   `json:"ili_definition,omitempty"`
	Relations     []SynsetRelation `json:"relations,omitempty"`
	Examples      []Example        `json:"examples,omitempty"`
}

type Definition struct {
	Source string `json:"source,omitempty"`
	Text   string `json:"text"`
}

type ILIDefinition struct {
	Source string `json:"source,omitempty"`
	Text   string `json:"text"`
}

type Example struct {
	Source string `json:"source,omitempty"`
	Text   string `json:"text"`
}

// SenseRelation is a directed edge to another sense. Raw holds the relType
// code as written in the document, so unrecognised kinds survive a round trip.
type SenseRelation struct {
	Kind   SenseRelType `json:"kind"`
	Raw    string       `json:"raw,omitempty"`
	Target string       `json:"target"`
}

// NewSenseRelation decodes code into a kind, keeping the raw code only when
// it differs from the canonical one.
func NewSenseRelation(code, target string) SenseRelation {
	kind := ParseSenseRelType(code)
	rel := SenseRelation{Kind: kind, Target: target}
	if string(kind) != code {
		rel.Raw = code
	}
	return rel
}

// Code returns the relType as it appeared in the source document.
func (r SenseRelation) Code() string {
	if r.Raw != "" {
		return r.Raw
	}
	return string(r.Kind)
}

// SynsetRelation is a directed edge to another synset.
type SynsetRelation struct {
	Kind   SynsetRelType `json:"kind"`
	Raw    string        `json:"raw,omitempty"`
	Target string        `json:"target"`
}

func NewSynsetRelation(code, target string) SynsetRelation {
	kind := ParseSynsetRelType(code)
	rel := SynsetRelation{Kind: kind, Target: target}
	if string(kind) != code {
		rel.Raw = code
	}
	return rel
}

func (r SynsetRelation) Code() string {
	if r.Raw != "" {
		return r.Raw
	}
	return string(r.Kind)
}

// ParseMembers splits a synset's members attribute into entry ids.
func ParseMembers(members string) []string {
	return strings.Fields(members)
}
