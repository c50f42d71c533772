package lexicon

import (
	"fmt"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// PartOfSpeech is the single-letter WordNet part-of-speech code.
type PartOfSpeech string

const (
	Noun               PartOfSpeech = "n"
	Verb               PartOfSpeech = "v"
	Adjective          PartOfSpeech = "a"
	Adverb             PartOfSpeech = "r"
	AdjectiveSatellite PartOfSpeech = "s"
	Conjunction        PartOfSpeech = "c"
	Adposition         PartOfSpeech = "p"
	OtherPOS           PartOfSpeech = "x"
	UnknownPOS         PartOfSpeech = "u"
)

var posNames = map[PartOfSpeech]string{
	Noun:               "noun",
	Verb:               "verb",
	Adjective:          "adjective",
	Adverb:             "adverb",
	AdjectiveSatellite: "adjective satellite",
	Conjunction:        "conjunction",
	Adposition:         "adposition",
	OtherPOS:           "other",
	UnknownPOS:         "unknown",
}

var posAliases = map[string]PartOfSpeech{
	"n": Noun, "noun": Noun,
	"v": Verb, "verb": Verb,
	"a": Adjective, "adj": Adjective, "adjective": Adjective,
	"r": Adverb, "adv": Adverb, "adverb": Adverb,
	"s": AdjectiveSatellite, "adj_sat": AdjectiveSatellite, "adjective_satellite": AdjectiveSatellite,
	"c": Conjunction, "conj": Conjunction, "conjunction": Conjunction,
	"p": Adposition, "adp": Adposition, "adposition": Adposition,
	"x": OtherPOS, "other": OtherPOS,
	"u": UnknownPOS, "unknown": UnknownPOS,
}

// ParsePartOfSpeech accepts a code or a long alias, case-insensitively.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	if pos, ok := posAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return pos, nil
	}
	return "", fmt.Errorf("part of speech %q: %w", s, apperrors.ErrInvalidInput)
}

// Valid reports whether p is one of the known codes.
func (p PartOfSpeech) Valid() bool {
	_, ok := posNames[p]
	return ok
}

func (p PartOfSpeech) String() string {
	return string(p)
}

// Name returns the display name, e.g. "adjective satellite".
func (p PartOfSpeech) Name() string {
	if name, ok := posNames[p]; ok {
		return name
	}
	return string(p)
}
