package id

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"

	"github.com/pkg/errors"
)

// Length is the number of bytes in an ID.
const Length = 32

// ErrInvalidLength indicates a byte representation with other than Length bytes.
var ErrInvalidLength = errors.New("invalid ID length")

// ID is the 32-byte identifier of a ledger record. It plays the role of the record's account
// address and is chosen by the client at creation time.
type ID [Length]byte

// FromBytes creates an ID from a big-endian byte array.
func FromBytes(b []byte) (ID, error) {
	var i ID
	if len(b) != Length {
		return i, ErrInvalidLength
	}
	copy(i[:], b)
	return i, nil
}

// FromString creates an ID from its hex string encoding.
func FromString(s string) (ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, err
	}
	return FromBytes(b)
}

// NewRandom returns a random ID using the local machine's random number generator.
func NewRandom() ID {
	var i ID
	_, err := crand.Read(i[:])
	if err != nil {
		panic(err)
	}
	return i
}

// NewPseudoRandom returns a pseudo-random ID from a random number generator.
func NewPseudoRandom(rng *mrand.Rand) ID {
	var i ID
	_, err := rng.Read(i[:])
	if err != nil {
		panic(err)
	}
	return i
}

// Bytes returns the byte representation of the ID.
func (i ID) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, i[:])
	return b
}

// String gives the string (hex) encoding of the ID.
func (i ID) String() string {
	return fmt.Sprintf("%064x", i[:])
}
