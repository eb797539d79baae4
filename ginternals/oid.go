package ginternals

import (
	"crypto/sha1" //nolint:gosec // sha1 is the hash algorithm mandated by the on-disk format
	"encoding/hex"
	"errors"
)

// OidSize is the length of an Oid, in bytes
const OidSize = 20

var (
	// NullOid is the value of an empty Oid, or one that's all 0s
	NullOid = Oid{}

	// ErrInvalidOid is returned when a given value isn't a valid Oid
	ErrInvalidOid = errors.New("invalid Oid")
)

// Oid represents the unique ID of an object, computed as the SHA-1 sum
// of its envelope (type, size, and content)
type Oid [OidSize]byte

// Bytes returns a byte slice of the Oid
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an Oid to its 40 character hex representation
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}

// NewOidFromContent returns the Oid of the given content.
// The Oid is the SHA-1 sum of the content.
func NewOidFromContent(data []byte) Oid {
	return sha1.Sum(data) //nolint:gosec // mandated by the on-disk format
}

// NewOidFromHex returns an Oid from the provided 20 raw bytes
func NewOidFromHex(id []byte) (Oid, error) {
	if len(id) < OidSize {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], id)
	return oid, nil
}

// NewOidFromChars creates an Oid from the given hex-encoded char bytes.
// For the SHA "9b91da..." the Oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromStr(string(id))
}

// NewOidFromStr creates an Oid from the given hex-encoded string.
// For the SHA "9b91da06e69613397b38e0808e0ba5ee6983251b" the Oid will be
// {0x9b, 0x91, 0xda, ...}
func NewOidFromStr(id string) (Oid, error) {
	data, err := hex.DecodeString(id)
	if err != nil {
		return NullOid, err
	}

	if len(data) != OidSize {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], data)
	return oid, nil
}
