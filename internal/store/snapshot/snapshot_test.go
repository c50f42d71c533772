package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon/lexicontest"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/store/memory"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

func encodeCorpus(t *testing.T) (*index.Index, []byte) {
	t.Helper()
	idx, _ := index.Build(lexicontest.Corpus())
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, idx))
	return idx, buf.Bytes()
}

func TestRoundTripPreservesQueryResults(t *testing.T) {
	ctx := context.Background()
	idx, data := encodeCorpus(t)
	assert.Equal(t, FormatVersion, binary.LittleEndian.Uint32(data[0:4]))

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	before, after := memory.New(idx), memory.New(decoded)
	opts := cmpopts.EquateEmpty()

	for _, lemma := range []string{"cat", "dog", "hot", "missing"} {
		want, err := before.LookupEntries(ctx, lemma, nil)
		require.NoError(t, err)
		got, err := after.LookupEntries(ctx, lemma, nil)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("LookupEntries(%q) mismatch (-before +after):\n%s", lemma, diff)
		}
	}

	for _, kind := range []lexicon.SynsetRelType{lexicon.SynsetRelHypernym, lexicon.SynsetRelHyponym, lexicon.SynsetRelUnknown} {
		for _, id := range idx.SynsetIDs {
			want, err := before.GetRelatedSynsets(ctx, id, kind)
			require.NoError(t, err)
			got, err := after.GetRelatedSynsets(ctx, id, kind)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, opts); diff != "" {
				t.Errorf("GetRelatedSynsets(%q, %s) mismatch (-before +after):\n%s", id, kind, diff)
			}
		}
	}

	collect := func(s *memory.Store) map[string]lexicon.LexicalEntry {
		out := make(map[string]lexicon.LexicalEntry)
		for entry, err := range s.AllEntries(ctx) {
			require.NoError(t, err)
			out[entry.ID] = entry
		}
		return out
	}
	if diff := cmp.Diff(collect(before), collect(after), opts); diff != "" {
		t.Errorf("AllEntries mismatch (-before +after):\n%s", diff)
	}

	lexicons, err := after.Lexicons(ctx)
	require.NoError(t, err)
	require.Len(t, lexicons, 1)
	require.NotNil(t, lexicons[0].ConfidenceScore)
	assert.InDelta(t, 0.95, *lexicons[0].ConfidenceScore, 1e-9)
}

// failingReader returns the prefix and then fails, proving that nothing
// past the prefix was consumed.
type failingReader struct {
	prefix []byte
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.prefix) == 0 {
		return 0, errors.New("payload must not be read")
	}
	n := copy(p, r.prefix)
	r.prefix = r.prefix[n:]
	return n, nil
}

func TestVersionMismatchRejectedBeforePayload(t *testing.T) {
	for _, version := range []uint32{0, FormatVersion + 1, 0xFFFFFFFF} {
		header := make([]byte, 4)
		binary.LittleEndian.PutUint32(header, version)

		_, err := Decode(&failingReader{prefix: header})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVersionMismatch)
		assert.ErrorIs(t, err, apperrors.ErrFormat)
	}
}

func TestDecodeRejectsDamagedSnapshots(t *testing.T) {
	_, data := encodeCorpus(t)

	flipped := bytes.Clone(data)
	flipped[len(flipped)-1] ^= 0xFF

	garbage := make([]byte, HeaderSize+16)
	binary.LittleEndian.PutUint32(garbage[0:4], FormatVersion)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short version", data[:2]},
		{"missing checksum", data[:5]},
		{"flipped body byte", flipped},
		{"garbage body", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrFormat)
		})
	}
}

func TestDecodePropagatesReadErrors(t *testing.T) {
	_, err := Decode(&failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrFormat)
}

func TestWriteReadRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordnet.snap")
	idx, _ := index.Build(lexicontest.Corpus())

	_, err := Read(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, Write(path, idx))
	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, idx.EntryIDs, got.EntryIDs)
	assert.Equal(t, idx.SynsetMembers["syn-feline"], got.SynsetMembers["syn-feline"])

	require.NoError(t, Remove(path))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	require.NoError(t, Remove(path))
}

func TestReadRejectsOtherVersionOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordnet.snap")
	_, data := encodeCorpus(t)
	binary.LittleEndian.PutUint32(data[0:4], FormatVersion+1)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}
