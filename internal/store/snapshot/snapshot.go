// Package snapshot persists an index.Index as a single versioned binary
// file so that later starts can skip parsing and index construction.
//
// Layout, all integers little-endian:
//
//	[4] format version
//	[4] crc32 (IEEE) of body
//	[n] body: zstd-compressed gob encoding of index.Index
//
// The version is checked before anything else is read; a reader never
// attempts to interpret a payload written under another version.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

const (
	FormatVersion uint32 = 1
	HeaderSize    int    = 8
)

// ErrVersionMismatch is returned (wrapped) when the header carries a version
// other than FormatVersion. It matches apperrors.ErrFormat.
var ErrVersionMismatch = fmt.Errorf("snapshot version mismatch: %w", apperrors.ErrFormat)

// Encode writes idx to w in the snapshot layout.
func Encode(w io.Writer, idx *index.Index) error {
	var body bytes.Buffer
	zw, err := zstd.NewWriter(&body, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(idx); err != nil {
		zw.Close()
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing zstd encoder: %w", err)
	}

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], FormatVersion)
	binary.LittleEndian.PutUint32(header[4:8], crc32.ChecksumIEEE(body.Bytes()))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r. Every failure to interpret the data wraps
// apperrors.ErrFormat; I/O errors from r are returned as they are.
func Decode(r io.Reader) (*index.Index, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header[0:4]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, apperrors.Formatf("snapshot truncated before version header")
		}
		return nil, fmt.Errorf("reading version header: %w", err)
	}
	version := binary.LittleEndian.Uint32(header[0:4])
	if version != FormatVersion {
		return nil, fmt.Errorf("found version %d, want %d: %w", version, FormatVersion, ErrVersionMismatch)
	}
	if _, err := io.ReadFull(r, header[4:8]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, apperrors.Formatf("snapshot truncated before checksum")
		}
		return nil, fmt.Errorf("reading checksum: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if want, got := binary.LittleEndian.Uint32(header[4:8]), crc32.ChecksumIEEE(body); want != got {
		return nil, apperrors.Formatf("snapshot checksum mismatch: header %08x, body %08x", want, got)
	}

	zr, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Formatf("opening zstd stream: %v", err)
	}
	defer zr.Close()

	var idx index.Index
	if err := gob.NewDecoder(zr).Decode(&idx); err != nil {
		return nil, apperrors.Formatf("decoding index: %v", err)
	}
	return &idx, nil
}

// Write atomically replaces the snapshot at path. It writes to a .tmp file
// first and renames on success.
func Write(path string, idx *index.Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp snapshot file: %w", err)
	}
	if err := Encode(f, idx); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming snapshot file: %w", err)
	}
	return nil
}

// Read loads the snapshot at path. A missing file yields an error matching
// fs.ErrNotExist; an unusable one yields an error matching apperrors.ErrFormat.
func Read(path string) (*index.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	idx, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return idx, nil
}

// Remove deletes the snapshot and any leftover temp file. A missing snapshot
// is not an error.
func Remove(path string) error {
	for _, p := range []string{path, path + ".tmp"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
