package index

import (
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
)

// Stats reports what a build did, including the anomalies it recovered from.
type Stats struct {
	Lexicons        int
	Entries         int
	Senses          int
	Synsets         int
	SenseRelations  int
	SynsetRelations int

	// DroppedMembers counts member entry ids that contributed no sense to
	// their synset: unknown entries, or entries whose senses all target
	// other synsets.
	DroppedMembers int
	// Duplicates counts entries, senses, synsets and relation edges skipped
	// because an earlier record had the same identity.
	Duplicates int
	// UnknownSenseRelations and UnknownSynsetRelations count edges whose
	// relType decoded to the catch-all kind.
	UnknownSenseRelations  int
	UnknownSynsetRelations int
	// DanglingSynsetRefs counts senses naming a synset that was never defined.
	DanglingSynsetRefs int

	Duration time.Duration
}

type Builder struct {
	logger *slog.Logger
}

func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger.With("component", "index")}
}

// Build indexes res with the default logger.
func Build(res *lexicon.Resource) (*Index, Stats) {
	return NewBuilder(nil).Build(res)
}

// Build makes one pass over every entry of every lexicon, then one pass over
// every synset, so that member lists may name entries from any lexicon in
// the resource. Anomalies are logged and counted; Build never fails.
func (b *Builder) Build(res *lexicon.Resource) (*Index, Stats) {
	start := time.Now()
	idx := newIndex()
	var stats Stats

	for _, lex := range res.Lexicons {
		meta := lex.Metadata()
		if len(meta.Requires) == 0 {
			meta.Requires = nil
		}
		idx.Lexicons = append(idx.Lexicons, meta)
		for _, entry := range lex.Entries {
			b.addEntry(idx, &stats, lex.ID, entry)
		}
	}
	for _, lex := range res.Lexicons {
		for _, synset := range lex.Synsets {
			b.addSynset(idx, &stats, lex.ID, synset)
		}
	}
	for senseID, synsetID := range idx.SenseSynset {
		if _, ok := idx.Synsets[synsetID]; !ok {
			stats.DanglingSynsetRefs++
			b.logger.Debug("sense references undefined synset", "sense", senseID, "synset", synsetID)
		}
	}

	stats.Lexicons = len(idx.Lexicons)
	stats.Entries = len(idx.Entries)
	stats.Senses = len(idx.SenseEntry)
	stats.Synsets = len(idx.Synsets)
	stats.Duration = time.Since(start)

	if stats.DroppedMembers > 0 || stats.DanglingSynsetRefs > 0 || stats.Duplicates > 0 {
		b.logger.Warn("index built with recovered anomalies",
			"dropped_members", stats.DroppedMembers,
			"dangling_synset_refs", stats.DanglingSynsetRefs,
			"duplicates", stats.Duplicates,
		)
	}
	b.logger.Info("index built",
		"lexicons", stats.Lexicons,
		"entries", stats.Entries,
		"senses", stats.Senses,
		"synsets", stats.Synsets,
		"sense_relations", stats.SenseRelations,
		"synset_relations", stats.SynsetRelations,
		"unknown_relation_kinds", stats.UnknownSenseRelations+stats.UnknownSynsetRelations,
		"duration", stats.Duration,
	)
	return idx, stats
}

func (b *Builder) addEntry(idx *Index, stats *Stats, lexiconID string, entry lexicon.LexicalEntry) {
	if _, exists := idx.Entries[entry.ID]; exists {
		stats.Duplicates++
		b.logger.Warn("duplicate entry id skipped", "entry", entry.ID, "lexicon", lexiconID)
		return
	}

	senses := make([]lexicon.Sense, 0, len(entry.Senses))
	senseIDs := make([]string, 0, len(entry.Senses))
	for _, sense := range entry.Senses {
		if _, exists := idx.SenseEntry[sense.ID]; exists {
			stats.Duplicates++
			b.logger.Warn("duplicate sense id skipped", "sense", sense.ID, "entry", entry.ID)
			continue
		}
		sense.Relations = b.indexSenseRelations(idx, stats, sense)

		idx.SenseEntry[sense.ID] = entry.ID
		idx.SenseOrdinal[sense.ID] = len(senses)
		idx.SenseSynset[sense.ID] = sense.Synset
		senses = append(senses, sense)
		senseIDs = append(senseIDs, sense.ID)
	}
	entry.Senses = senses
	normalizeEntry(&entry)

	folded := Fold(entry.Lemma.WrittenForm)
	idx.ByLemma[folded] = append(idx.ByLemma[folded], entry.ID)
	key := LemmaPOSKey(folded, entry.Lemma.PartOfSpeech)
	idx.ByLemmaPOS[key] = append(idx.ByLemmaPOS[key], entry.ID)

	idx.Entries[entry.ID] = entry
	idx.EntrySenses[entry.ID] = senseIDs
	idx.EntryLexicon[entry.ID] = lexiconID
	idx.EntryIDs = append(idx.EntryIDs, entry.ID)
}

// relationKey identifies an edge by relation code and target. Distinct
// unrecognised codes share a catch-all kind but remain separate edges.
type relationKey struct {
	code   string
	target string
}

// indexSenseRelations records the edges of sense and returns its relation
// list with duplicate (code, target) pairs removed. The per-kind index holds
// each target once.
func (b *Builder) indexSenseRelations(idx *Index, stats *Stats, sense lexicon.Sense) []lexicon.SenseRelation {
	if len(sense.Relations) == 0 {
		return nil
	}
	byKind := make(map[lexicon.SenseRelType][]string)
	seen := make(map[relationKey]struct{})
	indexed := make(map[relationKey]struct{})
	kept := make([]lexicon.SenseRelation, 0, len(sense.Relations))
	for _, rel := range sense.Relations {
		key := relationKey{code: rel.Code(), target: rel.Target}
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		if !rel.Kind.Known() {
			stats.UnknownSenseRelations++
		}
		byKindKey := relationKey{code: string(rel.Kind), target: rel.Target}
		if _, ok := indexed[byKindKey]; !ok {
			indexed[byKindKey] = struct{}{}
			byKind[rel.Kind] = append(byKind[rel.Kind], rel.Target)
		}
		kept = append(kept, rel)
		stats.SenseRelations++
	}
	idx.SenseRelations[sense.ID] = byKind
	return kept
}

func (b *Builder) addSynset(idx *Index, stats *Stats, lexiconID string, synset lexicon.Synset) {
	if _, exists := idx.Synsets[synset.ID]; exists {
		stats.Duplicates++
		b.logger.Warn("duplicate synset id skipped", "synset", synset.ID, "lexicon", lexiconID)
		return
	}

	idx.SynsetMembers[synset.ID] = b.deriveMembers(idx, stats, synset)

	if len(synset.Relations) > 0 {
		byKind := make(map[lexicon.SynsetRelType][]string)
		seen := make(map[relationKey]struct{})
		indexed := make(map[relationKey]struct{})
		kept := make([]lexicon.SynsetRelation, 0, len(synset.Relations))
		for _, rel := range synset.Relations {
			key := relationKey{code: rel.Code(), target: rel.Target}
			if _, dup := seen[key]; dup {
				stats.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			if !rel.Kind.Known() {
				stats.UnknownSynsetRelations++
			}
			byKindKey := relationKey{code: string(rel.Kind), target: rel.Target}
			if _, ok := indexed[byKindKey]; !ok {
				indexed[byKindKey] = struct{}{}
				byKind[rel.Kind] = append(byKind[rel.Kind], rel.Target)
			}
			kept = append(kept, rel)
			stats.SynsetRelations++
		}
		idx.SynsetRelations[synset.ID] = byKind
		synset.Relations = kept
	}

	normalizeSynset(&synset)
	idx.Synsets[synset.ID] = synset
	idx.SynsetLexicon[synset.ID] = lexiconID
	idx.SynsetIDs = append(idx.SynsetIDs, synset.ID)
}

// deriveMembers resolves the entry ids listed in synset.Members to the senses
// of those entries that actually target synset. An entry contributes nothing
// when it is unknown or when all its senses belong to other synsets; each
// such reference is counted once in DroppedMembers.
func (b *Builder) deriveMembers(idx *Index, stats *Stats, synset lexicon.Synset) []string {
	entryIDs := lexicon.ParseMembers(synset.Members)
	members := make([]string, 0, len(entryIDs))
	seenEntry := make(map[string]struct{}, len(entryIDs))
	for _, entryID := range entryIDs {
		if _, dup := seenEntry[entryID]; dup {
			continue
		}
		seenEntry[entryID] = struct{}{}

		senseIDs, ok := idx.EntrySenses[entryID]
		if !ok {
			stats.DroppedMembers++
			b.logger.Debug("synset member names unknown entry", "synset", synset.ID, "entry", entryID)
			continue
		}
		matched := 0
		for _, senseID := range senseIDs {
			if idx.SenseSynset[senseID] == synset.ID {
				members = append(members, senseID)
				matched++
			}
		}
		if matched == 0 {
			stats.DroppedMembers++
			b.logger.Debug("synset member has no sense in synset", "synset", synset.ID, "entry", entryID)
		}
	}
	return members
}

// normalizeEntry stores empty child lists as nil so that records compare
// equal however they were produced.
func normalizeEntry(entry *lexicon.LexicalEntry) {
	if len(entry.Pronunciations) == 0 {
		entry.Pronunciations = nil
	}
	if len(entry.Senses) == 0 {
		entry.Senses = nil
	}
	for i := range entry.Senses {
		if len(entry.Senses[i].Relations) == 0 {
			entry.Senses[i].Relations = nil
		}
	}
}

func normalizeSynset(synset *lexicon.Synset) {
	if len(synset.Definitions) == 0 {
		synset.Definitions = nil
	}
	if len(synset.Relations) == 0 {
		synset.Relations = nil
	}
	if len(synset.Examples) == 0 {
		synset.Examples = nil
	}
}
