package wrap

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/enc"
	"github.com/pkg/errors"
	"github.com/teserakt-io/golang-ed25519/extra25519"
	"golang.org/x/crypto/nacl/box"
)

const (
	// NonceLength is the byte length of the random nonce drawn for every Wrap call.
	NonceLength = 24

	// BoxOverhead is the byte length the box construction adds for its authentication tag.
	BoxOverhead = box.Overhead

	// PackedKeyLen is the byte length of a packed wrapped content key: nonce, boxed key, and
	// tag, concatenated with no length prefixes.
	PackedKeyLen = NonceLength + enc.ContentKeyLength + BoxOverhead
)

var (
	// ErrInvalidContentKey indicates a content key that is not enc.ContentKeyLength bytes.
	ErrInvalidContentKey = errors.New("content key has invalid length")

	// ErrOffCurvePublicKey indicates a signing public key with no key-agreement counterpart.
	ErrOffCurvePublicKey = errors.New("signing public key has no agreement representation")

	// ErrMalformedPackedKey indicates a packed buffer that is not PackedKeyLen bytes.
	ErrMalformedPackedKey = errors.New("packed wrapped key has invalid length")

	// ErrUnwrapFailed indicates that authenticated unwrapping failed, either from wrong keys
	// or from tampered packed bytes.
	ErrUnwrapFailed = errors.New("wrapped key authentication failed")

	// ErrSelfCheckFailed indicates that the protocol's start-up round trip did not recover
	// its own content key.
	ErrSelfCheckFailed = errors.New("wrap protocol self-check round trip failed")
)

// PublicSigningToAgreement converts an ed25519 signing public key to its Curve25519
// key-agreement counterpart via the birational map between the two curve representations.
func PublicSigningToAgreement(pub ed25519.PublicKey) (*[32]byte, error) {
	signing := new([32]byte)
	copy(signing[:], pub)
	agreement := new([32]byte)
	if !extra25519.PublicKeyToCurve25519(agreement, signing) {
		return nil, ErrOffCurvePublicKey
	}
	return agreement, nil
}

// SecretSigningToAgreement converts an ed25519 signing secret key to its Curve25519
// key-agreement counterpart. Callers must zero the result when done with it.
func SecretSigningToAgreement(priv ed25519.PrivateKey) *[32]byte {
	signing := new([64]byte)
	copy(signing[:], priv)
	agreement := new([32]byte)
	extra25519.PrivateKeyToCurve25519(agreement, signing)
	zero(signing[:])
	return agreement
}

// WrappedKey is a content key wrapped for exactly one recipient.
type WrappedKey struct {
	// Nonce is the NonceLength-byte random nonce the box was sealed with.
	Nonce []byte

	// Ciphertext is the boxed content key with its embedded authentication tag.
	Ciphertext []byte
}

// Packed returns the canonical on-ledger representation, nonce || ciphertext.
func (k *WrappedKey) Packed() []byte {
	packed := make([]byte, 0, len(k.Nonce)+len(k.Ciphertext))
	packed = append(packed, k.Nonce...)
	packed = append(packed, k.Ciphertext...)
	return packed
}

// UnpackKey splits a packed buffer into its WrappedKey form using the fixed nonce length.
func UnpackKey(packed []byte) (*WrappedKey, error) {
	if len(packed) != PackedKeyLen {
		return nil, ErrMalformedPackedKey
	}
	return &WrappedKey{
		Nonce:      packed[:NonceLength],
		Ciphertext: packed[NonceLength:],
	}, nil
}

// Protocol wraps and unwraps content keys between parties identified by their signing
// keypairs. Its methods are stateless beyond the randomness source and safe for concurrent
// use.
type Protocol struct {
	rand io.Reader
}

// NewProtocol creates a Protocol after verifying with a round trip between two fresh
// keypairs that the underlying box primitives are usable in this process.
func NewProtocol(rand io.Reader) (*Protocol, error) {
	p := &Protocol{rand: rand}
	senderPub, senderPriv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	recipientPub, recipientPriv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	contentKey, err := enc.GenerateContentKey(rand)
	if err != nil {
		return nil, err
	}
	wrapped, err := p.Wrap(contentKey, senderPriv, recipientPub)
	if err != nil {
		return nil, err
	}
	recovered, err := p.Unwrap(wrapped.Packed(), senderPub, recipientPriv)
	if err != nil || !bytes.Equal(recovered, contentKey) {
		return nil, ErrSelfCheckFailed
	}
	return p, nil
}

// Wrap seals the content key for the recipient with a fresh random nonce, deriving the
// shared secret from the agreement counterparts of the sender's signing secret key and the
// recipient's signing public key.
func (p *Protocol) Wrap(
	contentKey []byte, senderPriv ed25519.PrivateKey, recipientPub ed25519.PublicKey,
) (*WrappedKey, error) {
	if len(contentKey) != enc.ContentKeyLength {
		return nil, ErrInvalidContentKey
	}
	recipientAgreement, err := PublicSigningToAgreement(recipientPub)
	if err != nil {
		return nil, err
	}
	senderAgreement := SecretSigningToAgreement(senderPriv)
	defer zero(senderAgreement[:])

	nonce := new([NonceLength]byte)
	if _, err := io.ReadFull(p.rand, nonce[:]); err != nil {
		return nil, err
	}
	ciphertext := box.Seal(nil, contentKey, nonce, recipientAgreement, senderAgreement)
	return &WrappedKey{Nonce: nonce[:], Ciphertext: ciphertext}, nil
}

// Unwrap recovers the content key from its packed form. It returns ErrUnwrapFailed, and no
// key bytes, if the box does not authenticate.
func (p *Protocol) Unwrap(
	packed []byte, senderPub ed25519.PublicKey, recipientPriv ed25519.PrivateKey,
) ([]byte, error) {
	wrapped, err := UnpackKey(packed)
	if err != nil {
		return nil, err
	}
	senderAgreement, err := PublicSigningToAgreement(senderPub)
	if err != nil {
		return nil, err
	}
	recipientAgreement := SecretSigningToAgreement(recipientPriv)
	defer zero(recipientAgreement[:])

	nonce := new([NonceLength]byte)
	copy(nonce[:], wrapped.Nonce)
	contentKey, ok := box.Open(nil, wrapped.Ciphertext, nonce, senderAgreement,
		recipientAgreement)
	if !ok {
		return nil, ErrUnwrapFailed
	}
	return contentKey, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
