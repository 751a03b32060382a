package key

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBytes_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	kp := NewPseudoRandomKeypair(rng)

	k, err := FromBytes(kp.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, []byte(kp.PublicKey), k.Bytes())
}

func TestFromBytes_err(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestFromString_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	k1 := NewPseudoRandomKeypair(rng).ID()

	k2, err := FromString(k1.String())
	assert.Nil(t, err)
	assert.Equal(t, k1, k2)
}

func TestFromString_err(t *testing.T) {
	_, err := FromString("not a base58 public key")
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestNewKeypair(t *testing.T) {
	kp, err := NewKeypair()
	assert.Nil(t, err)
	assert.NotNil(t, kp.PublicKey)
	assert.NotNil(t, kp.PrivateKey)
	assert.False(t, kp.ID().Zero())
}

func TestNewPseudoRandomKeypair(t *testing.T) {
	rng1, rng2 := rand.New(rand.NewSource(0)), rand.New(rand.NewSource(0))
	kp1, kp2 := NewPseudoRandomKeypair(rng1), NewPseudoRandomKeypair(rng2)
	assert.Equal(t, kp1.ID(), kp2.ID())

	kp3 := NewPseudoRandomKeypair(rng1)
	assert.NotEqual(t, kp1.ID(), kp3.ID())
}

func TestPublicKey_Zero(t *testing.T) {
	assert.True(t, PublicKey{}.Zero())
	rng := rand.New(rand.NewSource(0))
	assert.False(t, NewPseudoRandomKeypair(rng).ID().Zero())
}
