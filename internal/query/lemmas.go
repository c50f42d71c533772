package query

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Synonyms returns the written forms of a synset's member senses, excluding
// exclude (case-insensitively), sorted and deduplicated.
func Synonyms(ctx context.Context, eng Engine, synsetID, exclude string) ([]string, error) {
	senses, err := eng.GetSensesForSynset(ctx, synsetID)
	if err != nil {
		return nil, fmt.Errorf("resolving synonyms of %s: %w", synsetID, err)
	}
	lemmas := newLemmaSet()
	for _, sense := range senses {
		form, err := lemmaForSense(ctx, eng, sense.ID)
		if err != nil {
			return nil, err
		}
		if form == "" || strings.EqualFold(form, exclude) {
			continue
		}
		lemmas.add(form)
	}
	return lemmas.sorted(), nil
}

// RelatedSenseLemmas follows kind edges from every member sense of a synset
// and returns the lemmas reached, skipping targets inside the same synset.
// Antonyms are therefore the union over all synonyms of the concept.
func RelatedSenseLemmas(ctx context.Context, eng Engine, synsetID string, kind lexicon.SenseRelType) ([]string, error) {
	members, err := eng.GetSensesForSynset(ctx, synsetID)
	if err != nil {
		return nil, fmt.Errorf("resolving %s of %s: %w", kind, synsetID, err)
	}
	lemmas := newLemmaSet()
	for _, member := range members {
		targets, err := eng.GetRelatedSenses(ctx, member.ID, kind)
		if err != nil {
			return nil, err
		}
		for _, target := range targets {
			if target.Synset == synsetID {
				continue
			}
			form, err := lemmaForSense(ctx, eng, target.ID)
			if err != nil {
				return nil, err
			}
			if form != "" {
				lemmas.add(form)
			}
		}
	}
	return lemmas.sorted(), nil
}

// RelatedSynsetLemmas returns the member lemmas of every synset reached from
// synsetID by one kind edge.
func RelatedSynsetLemmas(ctx context.Context, eng Engine, synsetID string, kind lexicon.SynsetRelType) ([]string, error) {
	targets, err := eng.GetRelatedSynsets(ctx, synsetID, kind)
	if err != nil {
		return nil, fmt.Errorf("resolving %s of %s: %w", kind, synsetID, err)
	}
	lemmas := newLemmaSet()
	for _, target := range targets {
		senses, err := eng.GetSensesForSynset(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		for _, sense := range senses {
			form, err := lemmaForSense(ctx, eng, sense.ID)
			if err != nil {
				return nil, err
			}
			if form != "" {
				lemmas.add(form)
			}
		}
	}
	return lemmas.sorted(), nil
}

// lemmaForSense returns "" when the sense or its entry cannot be resolved.
func lemmaForSense(ctx context.Context, eng Engine, senseID string) (string, error) {
	entryID, ok, err := eng.GetEntryIDForSense(ctx, senseID)
	if err != nil || !ok {
		return "", err
	}
	entry, ok, err := eng.GetEntryByID(ctx, entryID)
	if err != nil || !ok {
		return "", err
	}
	return entry.Lemma.WrittenForm, nil
}

type lemmaSet map[string]struct{}

func newLemmaSet() lemmaSet {
	return make(lemmaSet)
}

func (s lemmaSet) add(lemma string) {
	s[lemma] = struct{}{}
}

func (s lemmaSet) sorted() []string {
	out := make([]string, 0, len(s))
	for lemma := range s {
		out = append(out, lemma)
	}
	slices.Sort(out)
	return out
}
