package wrap

import (
	"math/rand"
	"testing"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/enc"
	"github.com/stretchr/testify/assert"
)

func TestNewProtocol_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	assert.NotNil(t, p)
}

func TestSigningToAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	kp := key.NewPseudoRandomKeypair(rng)

	pubAgreement, err := PublicSigningToAgreement(kp.PublicKey)
	assert.Nil(t, err)
	assert.NotEqual(t, new([32]byte), pubAgreement)

	privAgreement := SecretSigningToAgreement(kp.PrivateKey)
	assert.NotEqual(t, new([32]byte), privAgreement)

	// the map is deterministic
	pubAgreement2, err := PublicSigningToAgreement(kp.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, pubAgreement, pubAgreement2)
}

func TestProtocol_WrapUnwrap_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	sender := key.NewPseudoRandomKeypair(rng)
	recipient := key.NewPseudoRandomKeypair(rng)
	contentKey, err := enc.GenerateContentKey(rng)
	assert.Nil(t, err)

	wrapped, err := p.Wrap(contentKey, sender.PrivateKey, recipient.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, NonceLength, len(wrapped.Nonce))
	assert.Equal(t, PackedKeyLen, len(wrapped.Packed()))

	recovered, err := p.Unwrap(wrapped.Packed(), sender.PublicKey, recipient.PrivateKey)
	assert.Nil(t, err)
	assert.Equal(t, contentKey, recovered)
}

func TestProtocol_Wrap_freshNonce(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	sender := key.NewPseudoRandomKeypair(rng)
	recipient := key.NewPseudoRandomKeypair(rng)
	contentKey, err := enc.GenerateContentKey(rng)
	assert.Nil(t, err)

	wrapped1, err := p.Wrap(contentKey, sender.PrivateKey, recipient.PublicKey)
	assert.Nil(t, err)
	wrapped2, err := p.Wrap(contentKey, sender.PrivateKey, recipient.PublicKey)
	assert.Nil(t, err)
	assert.NotEqual(t, wrapped1.Nonce, wrapped2.Nonce)
	assert.NotEqual(t, wrapped1.Ciphertext, wrapped2.Ciphertext)
}

func TestProtocol_Wrap_err(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	sender := key.NewPseudoRandomKeypair(rng)
	recipient := key.NewPseudoRandomKeypair(rng)

	_, err = p.Wrap([]byte("short key"), sender.PrivateKey, recipient.PublicKey)
	assert.Equal(t, ErrInvalidContentKey, err)
}

func TestProtocol_Unwrap_err(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	sender := key.NewPseudoRandomKeypair(rng)
	recipient := key.NewPseudoRandomKeypair(rng)
	other := key.NewPseudoRandomKeypair(rng)
	contentKey, err := enc.GenerateContentKey(rng)
	assert.Nil(t, err)

	wrapped, err := p.Wrap(contentKey, sender.PrivateKey, recipient.PublicKey)
	assert.Nil(t, err)
	packed := wrapped.Packed()

	// wrong length
	recovered, err := p.Unwrap(packed[:PackedKeyLen-1], sender.PublicKey,
		recipient.PrivateKey)
	assert.Equal(t, ErrMalformedPackedKey, err)
	assert.Nil(t, recovered)

	// wrong recipient secret
	recovered, err = p.Unwrap(packed, sender.PublicKey, other.PrivateKey)
	assert.Equal(t, ErrUnwrapFailed, err)
	assert.Nil(t, recovered)

	// wrong sender public
	recovered, err = p.Unwrap(packed, other.PublicKey, recipient.PrivateKey)
	assert.Equal(t, ErrUnwrapFailed, err)
	assert.Nil(t, recovered)

	// each flipped byte of the packed buffer must fail authentication
	for i := 0; i < PackedKeyLen; i++ {
		tampered := make([]byte, PackedKeyLen)
		copy(tampered, packed)
		tampered[i] ^= 0xff
		recovered, err = p.Unwrap(tampered, sender.PublicKey, recipient.PrivateKey)
		assert.Equal(t, ErrUnwrapFailed, err)
		assert.Nil(t, recovered)
	}
}

func TestUnpackKey(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	p, err := NewProtocol(rng)
	assert.Nil(t, err)
	sender := key.NewPseudoRandomKeypair(rng)
	recipient := key.NewPseudoRandomKeypair(rng)
	contentKey, err := enc.GenerateContentKey(rng)
	assert.Nil(t, err)

	wrapped, err := p.Wrap(contentKey, sender.PrivateKey, recipient.PublicKey)
	assert.Nil(t, err)

	unpacked, err := UnpackKey(wrapped.Packed())
	assert.Nil(t, err)
	assert.Equal(t, wrapped, unpacked)

	_, err = UnpackKey(nil)
	assert.Equal(t, ErrMalformedPackedKey, err)
}
