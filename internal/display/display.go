// Package display assembles the dictionary view of a word from a query
// engine and renders it as text.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

type EntryView struct {
	EntryID        string                  `json:"entry_id"`
	Lemma          string                  `json:"lemma"`
	PartOfSpeech   string                  `json:"part_of_speech"`
	Pronunciations []lexicon.Pronunciation `json:"pronunciations,omitempty"`
	Senses         []SenseView             `json:"senses"`
}

// SenseView is one sense of an entry together with what its synset says.
type SenseView struct {
	SenseID       string   `json:"sense_id"`
	SynsetID      string   `json:"synset_id"`
	Definitions   []string `json:"definitions,omitempty"`
	ILIDefinition string   `json:"ili_definition,omitempty"`
	Examples      []string `json:"examples,omitempty"`
	Synonyms      []string `json:"synonyms,omitempty"`
	Antonyms      []string `json:"antonyms,omitempty"`
	Hypernyms     []string `json:"hypernyms,omitempty"`
	Hyponyms      []string `json:"hyponyms,omitempty"`
}

// Define looks word up and builds one view per matching entry, in lookup
// order. Senses whose synset cannot be found are logged and left out.
func Define(ctx context.Context, eng query.Engine, word string, pos *lexicon.PartOfSpeech) ([]EntryView, error) {
	entries, err := eng.LookupEntries(ctx, word, pos)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", word, err)
	}
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		view, err := entryView(ctx, eng, word, entry)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func entryView(ctx context.Context, eng query.Engine, word string, entry lexicon.LexicalEntry) (EntryView, error) {
	view := EntryView{
		EntryID:        entry.ID,
		Lemma:          entry.Lemma.WrittenForm,
		PartOfSpeech:   entry.Lemma.PartOfSpeech.Name(),
		Pronunciations: entry.Pronunciations,
	}
	senses, err := eng.GetSensesForEntry(ctx, entry.ID)
	if err != nil {
		return EntryView{}, fmt.Errorf("loading senses of %s: %w", entry.ID, err)
	}
	for _, sense := range senses {
		synset, err := eng.GetSynset(ctx, sense.Synset)
		if errors.Is(err, apperrors.ErrNotFound) {
			slog.Default().Warn("sense refers to missing synset",
				"component", "display", "sense", sense.ID, "synset", sense.Synset)
			continue
		}
		if err != nil {
			return EntryView{}, err
		}
		sv, err := senseView(ctx, eng, word, sense, synset)
		if err != nil {
			return EntryView{}, err
		}
		view.Senses = append(view.Senses, sv)
	}
	return view, nil
}

func senseView(ctx context.Context, eng query.Engine, word string, sense lexicon.Sense, synset lexicon.Synset) (SenseView, error) {
	sv := SenseView{SenseID: sense.ID, SynsetID: synset.ID}
	for _, def := range synset.Definitions {
		sv.Definitions = append(sv.Definitions, strings.TrimSpace(def.Text))
	}
	if synset.ILIDefinition != nil {
		sv.ILIDefinition = strings.TrimSpace(synset.ILIDefinition.Text)
	}
	for _, ex := range synset.Examples {
		sv.Examples = append(sv.Examples, strings.TrimSpace(ex.Text))
	}

	var err error
	if sv.Synonyms, err = query.Synonyms(ctx, eng, synset.ID, word); err != nil {
		return SenseView{}, err
	}
	if sv.Antonyms, err = query.RelatedSenseLemmas(ctx, eng, synset.ID, lexicon.SenseRelAntonym); err != nil {
		return SenseView{}, err
	}
	if sv.Hypernyms, err = query.RelatedSynsetLemmas(ctx, eng, synset.ID, lexicon.SynsetRelHypernym); err != nil {
		return SenseView{}, err
	}
	if sv.Hyponyms, err = query.RelatedSynsetLemmas(ctx, eng, synset.ID, lexicon.SynsetRelHyponym); err != nil {
		return SenseView{}, err
	}
	return sv, nil
}

// Render writes views in the layout of the define command. Sense numbers
// restart at 1 for every entry.
func Render(w io.Writer, views []EntryView) error {
	ew := &errWriter{w: w}
	for _, view := range views {
		ew.printf("\n%s ~ %s\n", view.Lemma, view.PartOfSpeech)
		if len(view.Pronunciations) > 0 {
			prons := make([]string, 0, len(view.Pronunciations))
			for _, p := range view.Pronunciations {
				prons = append(prons, fmt.Sprintf("%s[%s]", p.Text, p.Variety))
			}
			ew.printf("  Pronunciations: %s\n", strings.Join(prons, ", "))
		}
		for i, sv := range view.Senses {
			for _, def := range sv.Definitions {
				ew.printf("  %d: %s\n", i+1, def)
			}
			if sv.ILIDefinition != "" {
				ew.printf("     ILI: %s\n", sv.ILIDefinition)
			}
			for _, ex := range sv.Examples {
				ew.printf("        %s\n", ex)
			}
			ew.list("Synonyms", sv.Synonyms)
			ew.list("Antonyms", sv.Antonyms)
			ew.list("Hypernyms", sv.Hypernyms)
			ew.list("Hyponyms", sv.Hyponyms)
			ew.printf("\n")
		}
	}
	return ew.err
}

// RenderNotFound writes the message printed when a lookup matched nothing.
func RenderNotFound(w io.Writer, word string) error {
	_, err := fmt.Fprintf(w, "No definitions found for '%s'.\n", word)
	return err
}

// RenderRandom writes the one-line form of the random command.
func RenderRandom(w io.Writer, entry lexicon.LexicalEntry) error {
	_, err := fmt.Fprintf(w, "Random word: %s (%s)\n", entry.Lemma.WrittenForm, entry.Lemma.PartOfSpeech.Name())
	return err
}

// errWriter keeps the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) list(label string, lemmas []string) {
	if len(lemmas) > 0 {
		e.printf("        %s: %s\n", label, strings.Join(lemmas, ", "))
	}
}
