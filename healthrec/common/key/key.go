package key

import (
	"crypto/ed25519"
	crand "crypto/rand"
	mrand "math/rand"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// PublicKeyLength is the number of bytes in a public key identity.
const PublicKeyLength = ed25519.PublicKeySize

// ErrInvalidPublicKey indicates a byte or string representation that is not a valid public key.
var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is the ed25519 signing public key that identifies a party (owner, recipient, or
// admin) on the ledger.
type PublicKey [PublicKeyLength]byte

// FromPublic creates a PublicKey from an ed25519 public key.
func FromPublic(pub ed25519.PublicKey) PublicKey {
	var k PublicKey
	copy(k[:], pub)
	return k
}

// FromBytes creates a PublicKey from its byte representation.
func FromBytes(b []byte) (PublicKey, error) {
	var k PublicKey
	if len(b) != PublicKeyLength {
		return k, ErrInvalidPublicKey
	}
	copy(k[:], b)
	return k, nil
}

// FromString creates a PublicKey from its base-58 string representation.
func FromString(s string) (PublicKey, error) {
	return FromBytes(base58.Decode(s))
}

// Bytes returns the byte representation of the public key.
func (k PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, k[:])
	return b
}

// Public returns the key as an ed25519 public key.
func (k PublicKey) Public() ed25519.PublicKey {
	return ed25519.PublicKey(k.Bytes())
}

// String gives the base-58 string encoding of the public key.
func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

// Zero returns whether the key is the all-zeros value.
func (k PublicKey) Zero() bool {
	return k == PublicKey{}
}

// Keypair is an ed25519 signing keypair.
type Keypair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// NewKeypair generates a new keypair using crypto.Rand.
func NewKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(crand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{PublicKey: pub, PrivateKey: priv}, nil
}

// NewPseudoRandomKeypair generates a new keypair from a random number generator.
func NewPseudoRandomKeypair(rng *mrand.Rand) *Keypair {
	seed := make([]byte, ed25519.SeedSize)
	_, err := rng.Read(seed)
	if err != nil {
		panic(err)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Keypair{
		PublicKey:  priv.Public().(ed25519.PublicKey),
		PrivateKey: priv,
	}
}

// ID returns the PublicKey identity of the keypair.
func (kp *Keypair) ID() PublicKey {
	return FromPublic(kp.PublicKey)
}
