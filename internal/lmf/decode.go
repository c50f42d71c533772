// Package lmf decodes WordNet LMF documents (the Global WordNet Association
// XML format) into lexicon records.
package lmf

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// Attribute tags carry no namespace so that dc:source, dc:publisher and
// dc:contributor match under either Dublin Core namespace URI.
type xmlResource struct {
	XMLName  xml.Name     `xml:"LexicalResource"`
	Lexicons []xmlLexicon `xml:"Lexicon"`
}

type xmlLexicon struct {
	ID              string        `xml:"id,attr"`
	Label           string        `xml:"label,attr"`
	Language        string        `xml:"language,attr"`
	Email           string        `xml:"email,attr"`
	License         string        `xml:"license,attr"`
	Version         string        `xml:"version,attr"`
	URL             string        `xml:"url,attr"`
	Citation        string        `xml:"citation,attr"`
	Logo            string        `xml:"logo,attr"`
	Status          string        `xml:"status,attr"`
	ConfidenceScore string        `xml:"confidenceScore,attr"`
	Publisher       string        `xml:"publisher,attr"`
	Contributor     string        `xml:"contributor,attr"`
	Requires        []xmlRequires `xml:"Requires"`
	Entries         []xmlEntry    `xml:"LexicalEntry"`
	Synsets         []xmlSynset   `xml:"Synset"`
}

type xmlRequires struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

type xmlEntry struct {
	ID             string             `xml:"id,attr"`
	Lemma          *xmlLemma          `xml:"Lemma"`
	Pronunciations []xmlPronunciation `xml:"Pronunciation"`
	Senses         []xmlSense         `xml:"Sense"`
}

type xmlLemma struct {
	WrittenForm    string             `xml:"writtenForm,attr"`
	PartOfSpeech   string             `xml:"partOfSpeech,attr"`
	Pronunciations []xmlPronunciation `xml:"Pronunciation"`
}

type xmlPronunciation struct {
	Variety  string `xml:"variety,attr"`
	Notation string `xml:"notation,attr"`
	Phonemic string `xml:"phonemic,attr"`
	Audio    string `xml:"audio,attr"`
	Text     string `xml:",chardata"`
}

type xmlSense struct {
	ID        string        `xml:"id,attr"`
	Synset    string        `xml:"synset,attr"`
	Relations []xmlRelation `xml:"SenseRelation"`
}

type xmlRelation struct {
	RelType string `xml:"relType,attr"`
	Target  string `xml:"target,attr"`
}

type xmlSynset struct {
	ID            string        `xml:"id,attr"`
	ILI           string        `xml:"ili,attr"`
	PartOfSpeech  string        `xml:"partOfSpeech,attr"`
	Members       string        `xml:"members,attr"`
	Definitions   []xmlText     `xml:"Definition"`
	ILIDefinition *xmlText      `xml:"ILIDefinition"`
	Relations     []xmlRelation `xml:"SynsetRelation"`
	Examples      []xmlText     `xml:"Example"`
}

type xmlText struct {
	Source string `xml:"source,attr"`
	Text   string `xml:",chardata"`
}

// Decode reads a complete LexicalResource document. Malformed XML, missing
// mandatory attributes and unknown part-of-speech codes are reported as
// errors wrapping ErrFormat.
func Decode(r io.Reader) (*lexicon.Resource, error) {
	var doc xmlResource
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.Formatf("decoding LMF document: %v", err)
	}
	res := &lexicon.Resource{Lexicons: make([]lexicon.Lexicon, 0, len(doc.Lexicons))}
	for i := range doc.Lexicons {
		lex, err := convertLexicon(&doc.Lexicons[i])
		if err != nil {
			return nil, err
		}
		res.Lexicons = append(res.Lexicons, lex)
	}
	return res, nil
}

func convertLexicon(x *xmlLexicon) (lexicon.Lexicon, error) {
	if x.ID == "" {
		return lexicon.Lexicon{}, apperrors.Formatf("lexicon without id")
	}
	lex := lexicon.Lexicon{
		ID:          x.ID,
		Label:       x.Label,
		Language:    x.Language,
		Email:       x.Email,
		License:     x.License,
		Version:     x.Version,
		URL:         x.URL,
		Citation:    x.Citation,
		Logo:        x.Logo,
		Status:      x.Status,
		Publisher:   x.Publisher,
		Contributor: x.Contributor,
		Entries:     make([]lexicon.LexicalEntry, 0, len(x.Entries)),
		Synsets:     make([]lexicon.Synset, 0, len(x.Synsets)),
	}
	if x.ConfidenceScore != "" {
		score, err := strconv.ParseFloat(x.ConfidenceScore, 64)
		if err != nil {
			return lexicon.Lexicon{}, apperrors.Formatf("lexicon %q confidenceScore %q", x.ID, x.ConfidenceScore)
		}
		lex.ConfidenceScore = &score
	}
	for _, req := range x.Requires {
		lex.Requires = append(lex.Requires, lexicon.Requirement{ID: req.ID, Version: req.Version})
	}
	for i := range x.Entries {
		entry, err := convertEntry(&x.Entries[i])
		if err != nil {
			return lexicon.Lexicon{}, fmt.Errorf("lexicon %q: %w", x.ID, err)
		}
		lex.Entries = append(lex.Entries, entry)
	}
	for i := range x.Synsets {
		synset, err := convertSynset(&x.Synsets[i])
		if err != nil {
			return lexicon.Lexicon{}, fmt.Errorf("lexicon %q: %w", x.ID, err)
		}
		lex.Synsets = append(lex.Synsets, synset)
	}
	return lex, nil
}

func convertEntry(x *xmlEntry) (lexicon.LexicalEntry, error) {
	if x.ID == "" {
		return lexicon.LexicalEntry{}, apperrors.Formatf("lexical entry without id")
	}
	if x.Lemma == nil || x.Lemma.WrittenForm == "" {
		return lexicon.LexicalEntry{}, apperrors.Formatf("entry %q: missing lemma writtenForm", x.ID)
	}
	pos, err := parsePOS(x.Lemma.PartOfSpeech)
	if err != nil {
		return lexicon.LexicalEntry{}, fmt.Errorf("entry %q: %w", x.ID, err)
	}
	entry := lexicon.LexicalEntry{
		ID:    x.ID,
		Lemma: lexicon.Lemma{WrittenForm: x.Lemma.WrittenForm, PartOfSpeech: pos},
	}
	for _, p := range slices.Concat(x.Lemma.Pronunciations, x.Pronunciations) {
		pron, err := convertPronunciation(p)
		if err != nil {
			return lexicon.LexicalEntry{}, fmt.Errorf("entry %q: %w", x.ID, err)
		}
		entry.Pronunciations = append(entry.Pronunciations, pron)
	}
	for _, s := range x.Senses {
		if s.ID == "" || s.Synset == "" {
			return lexicon.LexicalEntry{}, apperrors.Formatf("entry %q: sense missing id or synset", x.ID)
		}
		sense := lexicon.Sense{ID: s.ID, Synset: s.Synset}
		for _, rel := range s.Relations {
			if rel.RelType == "" || rel.Target == "" {
				return lexicon.LexicalEntry{}, apperrors.Formatf("sense %q: relation missing relType or target", s.ID)
			}
			sense.Relations = append(sense.Relations, lexicon.NewSenseRelation(rel.RelType, rel.Target))
		}
		entry.Senses = append(entry.Senses, sense)
	}
	return entry, nil
}

func convertPronunciation(x xmlPronunciation) (lexicon.Pronunciation, error) {
	phonemic := true
	if x.Phonemic != "" {
		v, err := strconv.ParseBool(x.Phonemic)
		if err != nil {
			return lexicon.Pronunciation{}, apperrors.Formatf("pronunciation phonemic %q", x.Phonemic)
		}
		phonemic = v
	}
	return lexicon.Pronunciation{
		Variety:  x.Variety,
		Notation: x.Notation,
		Phonemic: phonemic,
		Audio:    x.Audio,
		Text:     strings.TrimSpace(x.Text),
	}, nil
}

func convertSynset(x *xmlSynset) (lexicon.Synset, error) {
	if x.ID == "" {
		return lexicon.Synset{}, apperrors.Formatf("synset without id")
	}
	synset := lexicon.Synset{
		ID:      x.ID,
		ILI:     x.ILI,
		Members: x.Members,
	}
	if x.PartOfSpeech != "" {
		pos, err := parsePOS(x.PartOfSpeech)
		if err != nil {
			return lexicon.Synset{}, fmt.Errorf("synset %q: %w", x.ID, err)
		}
		synset.PartOfSpeech = pos
	}
	for _, d := range x.Definitions {
		synset.Definitions = append(synset.Definitions, lexicon.Definition{Source: d.Source, Text: strings.TrimSpace(d.Text)})
	}
	if x.ILIDefinition != nil {
		synset.ILIDefinition = &lexicon.ILIDefinition{
			Source: x.ILIDefinition.Source,
			Text:   strings.TrimSpace(x.ILIDefinition.Text),
		}
	}
	for _, rel := range x.Relations {
		if rel.RelType == "" || rel.Target == "" {
			return lexicon.Synset{}, apperrors.Formatf("synset %q: relation missing relType or target", x.ID)
		}
		synset.Relations = append(synset.Relations, lexicon.NewSynsetRelation(rel.RelType, rel.Target))
	}
	for _, e := range x.Examples {
		synset.Examples = append(synset.Examples, lexicon.Example{Source: e.Source, Text: strings.TrimSpace(e.Text)})
	}
	return synset, nil
}

// parsePOS accepts only the single-letter codes the format defines.
func parsePOS(code string) (lexicon.PartOfSpeech, error) {
	pos := lexicon.PartOfSpeech(code)
	if !pos.Valid() {
		return "", apperrors.Formatf("part of speech %q", code)
	}
	return pos, nil
}
