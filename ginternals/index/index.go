// Package index implements the git staging index: a deterministic,
// checksum-guarded binary file that records the tree that will become
// the next commit.
//
// The format is header (DIRC, version, entry count), a list of
// fixed-size-plus-path entries padded to an 8-byte boundary, and a
// trailing SHA-1 over everything that precedes it.
// https://git-scm.com/docs/index-format
package index

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // this is the git index checksum algorithm, not used for security
	"encoding/binary"
	"errors"
	"sort"

	"govc/ginternals"
	"golang.org/x/xerrors"
)

const (
	signature = "DIRC"
	version   = 2

	// fixedEntrySize is the size, in bytes, of an entry's fixed fields
	// (ctime through flags included), before the variable-length path.
	fixedEntrySize = 62
	// entryAlignment is the boundary every entry's total length must be
	// a multiple of.
	entryAlignment = 8
	checksumSize   = 20
	headerSize     = 12

	flagNameMask  = 0x0FFF
	maxNameLength = 0x0FFF
)

var (
	// ErrInvalidIndex is returned when the index file is malformed:
	// bad signature, unsupported version, truncated entry, or truncated
	// header/checksum.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrChecksumMismatch is returned when the trailing SHA-1 doesn't
	// match the checksum of the rest of the file.
	ErrChecksumMismatch = errors.New("index checksum mismatch")
)

// Entry represents a single staged file.
type Entry struct {
	CTimeSec  uint32
	CTimeNano uint32
	MTimeSec  uint32
	MTimeNano uint32
	Dev       uint32
	Ino       uint32
	Mode      uint32
	UID       uint32
	GID       uint32
	Size      uint32
	ID        ginternals.Oid
	// Path is relative to the worktree root.
	Path string
}

// Index represents the parsed staging area.
type Index struct {
	Entries []Entry
}

// New returns an empty index
func New() *Index {
	return &Index{}
}

// Parse parses the binary representation of an index file.
// A missing file is represented upstream as an empty Index: Parse
// itself only ever receives bytes that exist, so "absent index" is
// handled by the caller (see Repository.Index in the root package).
func Parse(data []byte) (*Index, error) {
	if len(data) < headerSize+checksumSize {
		return nil, xerrors.Errorf("file too small to contain a header and checksum: %w", ErrInvalidIndex)
	}

	body := data[:len(data)-checksumSize]
	trailer := data[len(data)-checksumSize:]

	sum := sha1.Sum(body) //nolint:gosec // checksum, not a security boundary
	if !bytes.Equal(sum[:], trailer) {
		return nil, ErrChecksumMismatch
	}

	if string(body[:4]) != signature {
		return nil, xerrors.Errorf("unexpected signature %q: %w", body[:4], ErrInvalidIndex)
	}

	v := binary.BigEndian.Uint32(body[4:8])
	if v != version {
		return nil, xerrors.Errorf("unsupported index version %d: %w", v, ErrInvalidIndex)
	}

	count := binary.BigEndian.Uint32(body[8:12])
	idx := &Index{
		Entries: make([]Entry, 0, count),
	}

	offset := headerSize
	for i := uint32(0); i < count; i++ {
		e, consumed, err := parseEntry(body, offset)
		if err != nil {
			return nil, xerrors.Errorf("entry %d at offset %d: %w", i, offset, err)
		}
		idx.Entries = append(idx.Entries, e)
		offset += consumed
	}

	return idx, nil
}

func parseEntry(data []byte, offset int) (Entry, int, error) {
	if offset+fixedEntrySize > len(data) {
		return Entry{}, 0, xerrors.Errorf("not enough data for entry fixed fields: %w", ErrInvalidIndex)
	}

	p := data[offset:]
	e := Entry{
		CTimeSec:  binary.BigEndian.Uint32(p[0:4]),
		CTimeNano: binary.BigEndian.Uint32(p[4:8]),
		MTimeSec:  binary.BigEndian.Uint32(p[8:12]),
		MTimeNano: binary.BigEndian.Uint32(p[12:16]),
		Dev:       binary.BigEndian.Uint32(p[16:20]),
		Ino:       binary.BigEndian.Uint32(p[20:24]),
		Mode:      binary.BigEndian.Uint32(p[24:28]),
		UID:       binary.BigEndian.Uint32(p[28:32]),
		GID:       binary.BigEndian.Uint32(p[32:36]),
		Size:      binary.BigEndian.Uint32(p[36:40]),
	}

	oid, err := ginternals.NewOidFromHex(p[40:60])
	if err != nil {
		return Entry{}, 0, xerrors.Errorf("invalid object id: %w", err)
	}
	e.ID = oid

	flags := binary.BigEndian.Uint16(p[60:62])
	nameLen := int(flags & flagNameMask)

	pathStart := offset + fixedEntrySize
	var path []byte
	if nameLen != maxNameLength {
		if pathStart+nameLen > len(data) {
			return Entry{}, 0, xerrors.Errorf("path extends beyond index data: %w", ErrInvalidIndex)
		}
		path = data[pathStart : pathStart+nameLen]
	} else {
		// name didn't fit in 12 bits, scan for the NUL terminator instead
		nulIdx := bytes.IndexByte(data[pathStart:], 0)
		if nulIdx == -1 {
			return Entry{}, 0, xerrors.Errorf("path has no terminator: %w", ErrInvalidIndex)
		}
		path = data[pathStart : pathStart+nulIdx]
	}
	e.Path = string(path)

	rawLen := fixedEntrySize + len(path) + 1 // +1 for the mandatory NUL
	paddedLen := roundUp(rawLen, entryAlignment)
	if offset+paddedLen > len(data) {
		return Entry{}, 0, xerrors.Errorf("entry extends beyond index data: %w", ErrInvalidIndex)
	}

	return e, paddedLen, nil
}

// Serialize returns the binary representation of the index, including
// the trailing checksum. Entries are written in path order regardless
// of the order they were added in, matching git's on-disk invariant.
func (idx *Index) Serialize() []byte {
	entries := make([]Entry, len(idx.Entries))
	copy(entries, idx.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	buf := &bytes.Buffer{}
	buf.WriteString(signature)
	writeU32(buf, version)
	writeU32(buf, uint32(len(entries))) //nolint:gosec // entry count always fits in 32 bits in practice

	for _, e := range entries {
		writeU32(buf, e.CTimeSec)
		writeU32(buf, e.CTimeNano)
		writeU32(buf, e.MTimeSec)
		writeU32(buf, e.MTimeNano)
		writeU32(buf, e.Dev)
		writeU32(buf, e.Ino)
		writeU32(buf, e.Mode)
		writeU32(buf, e.UID)
		writeU32(buf, e.GID)
		writeU32(buf, e.Size)
		buf.Write(e.ID.Bytes())

		nameLen := len(e.Path)
		if nameLen > maxNameLength {
			nameLen = maxNameLength
		}
		writeU16(buf, uint16(nameLen)) //nolint:gosec // clamped above

		buf.WriteString(e.Path)
		pad := roundUp(fixedEntrySize+len(e.Path)+1, entryAlignment) - (fixedEntrySize + len(e.Path))
		buf.Write(make([]byte, pad))
	}

	sum := sha1.Sum(buf.Bytes()) //nolint:gosec // checksum, not a security boundary
	buf.Write(sum[:])

	return buf.Bytes()
}

// Add inserts or replaces the entry for e.Path
func (idx *Index) Add(e Entry) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == e.Path {
			idx.Entries[i] = e
			return
		}
	}
	idx.Entries = append(idx.Entries, e)
}

// Remove drops the entry matching path, if any
func (idx *Index) Remove(path string) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == path {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return
		}
	}
}

// Get returns the entry for the given path
func (idx *Index) Get(path string) (Entry, bool) {
	for _, e := range idx.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

func roundUp(n, multiple int) int {
	return (n + multiple - 1) &^ (multiple - 1)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
