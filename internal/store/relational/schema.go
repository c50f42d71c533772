package relational

// SchemaVersion is stored in metadata under schemaVersionKey. Any other
// stored value means the tables were written by a different build.
const (
	SchemaVersion    = "2"
	schemaVersionKey = "schema_version"
)

// The DDL is shared by SQLite and PostgreSQL, so it sticks to TEXT, INTEGER
// and DOUBLE PRECISION. Foreign keys cover containment only; relation
// targets and sense-to-synset references may dangle.
const createMetadata = `CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// createStatements builds the data tables. They run only once the stored
// version is known to match, so older table shapes are never touched.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS lexicons (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		label            TEXT NOT NULL,
		language         TEXT NOT NULL,
		email            TEXT NOT NULL,
		license          TEXT NOT NULL,
		version          TEXT NOT NULL,
		url              TEXT NOT NULL,
		citation         TEXT NOT NULL,
		logo             TEXT NOT NULL,
		status           TEXT NOT NULL,
		confidence_score DOUBLE PRECISION,
		publisher        TEXT NOT NULL,
		contributor      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lexicon_requires (
		lexicon_id       TEXT NOT NULL REFERENCES lexicons (id),
		position         INTEGER NOT NULL,
		required_id      TEXT NOT NULL,
		required_version TEXT NOT NULL,
		PRIMARY KEY (lexicon_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS lexical_entries (
		id                       TEXT PRIMARY KEY,
		lexicon_id               TEXT NOT NULL REFERENCES lexicons (id),
		position                 INTEGER NOT NULL,
		lemma_written_form       TEXT NOT NULL,
		lemma_written_form_lower TEXT NOT NULL,
		part_of_speech           TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pronunciations (
		entry_id TEXT NOT NULL REFERENCES lexical_entries (id),
		position INTEGER NOT NULL,
		variety  TEXT NOT NULL,
		notation TEXT NOT NULL,
		phonemic INTEGER NOT NULL,
		audio    TEXT NOT NULL,
		text     TEXT NOT NULL,
		PRIMARY KEY (entry_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS synsets (
		id             TEXT PRIMARY KEY,
		lexicon_id     TEXT NOT NULL REFERENCES lexicons (id),
		position       INTEGER NOT NULL,
		ili            TEXT NOT NULL,
		part_of_speech TEXT NOT NULL,
		members        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS senses (
		id        TEXT PRIMARY KEY,
		entry_id  TEXT NOT NULL REFERENCES lexical_entries (id),
		position  INTEGER NOT NULL,
		synset_id TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS synset_members (
		synset_id TEXT NOT NULL REFERENCES synsets (id),
		position  INTEGER NOT NULL,
		sense_id  TEXT NOT NULL REFERENCES senses (id),
		PRIMARY KEY (synset_id, sense_id)
	)`,
	`CREATE TABLE IF NOT EXISTS definitions (
		synset_id TEXT NOT NULL REFERENCES synsets (id),
		position  INTEGER NOT NULL,
		source    TEXT NOT NULL,
		text      TEXT NOT NULL,
		PRIMARY KEY (synset_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS ili_definitions (
		synset_id TEXT PRIMARY KEY REFERENCES synsets (id),
		source    TEXT NOT NULL,
		text      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS examples (
		synset_id TEXT NOT NULL REFERENCES synsets (id),
		position  INTEGER NOT NULL,
		source    TEXT NOT NULL,
		text      TEXT NOT NULL,
		PRIMARY KEY (synset_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS sense_relations (
		source_sense_id TEXT NOT NULL REFERENCES senses (id),
		target_sense_id TEXT NOT NULL,
		rel_type        TEXT NOT NULL,
		raw_type        TEXT NOT NULL DEFAULT '',
		position        INTEGER NOT NULL,
		PRIMARY KEY (source_sense_id, target_sense_id, rel_type, raw_type)
	)`,
	`CREATE TABLE IF NOT EXISTS synset_relations (
		source_synset_id TEXT NOT NULL REFERENCES synsets (id),
		target_synset_id TEXT NOT NULL,
		rel_type         TEXT NOT NULL,
		raw_type         TEXT NOT NULL DEFAULT '',
		position         INTEGER NOT NULL,
		PRIMARY KEY (source_synset_id, target_synset_id, rel_type, raw_type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_lemma_lower ON lexical_entries (lemma_written_form_lower)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_lemma_lower_pos ON lexical_entries (lemma_written_form_lower, part_of_speech)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_position ON lexical_entries (position)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_lexicon ON lexical_entries (lexicon_id)`,
	`CREATE INDEX IF NOT EXISTS idx_synsets_lexicon ON synsets (lexicon_id)`,
	`CREATE INDEX IF NOT EXISTS idx_senses_entry ON senses (entry_id)`,
	`CREATE INDEX IF NOT EXISTS idx_senses_synset ON senses (synset_id)`,
	`CREATE INDEX IF NOT EXISTS idx_synset_members_sense ON synset_members (sense_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sense_relations_source ON sense_relations (source_sense_id, rel_type)`,
	`CREATE INDEX IF NOT EXISTS idx_sense_relations_target ON sense_relations (target_sense_id)`,
	`CREATE INDEX IF NOT EXISTS idx_synset_relations_source ON synset_relations (source_synset_id, rel_type)`,
	`CREATE INDEX IF NOT EXISTS idx_synset_relations_target ON synset_relations (target_synset_id)`,
}

// dataTables lists every table holding lexicon data, children first, which
// is the order rows must be deleted and tables dropped in.
var dataTables = []string{
	"synset_relations",
	"sense_relations",
	"examples",
	"ili_definitions",
	"definitions",
	"synset_members",
	"senses",
	"synsets",
	"pronunciations",
	"lexical_entries",
	"lexicon_requires",
	"lexicons",
}
