package enc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateContentKey(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	key1, err := GenerateContentKey(rng)
	assert.Nil(t, err)
	assert.Equal(t, ContentKeyLength, len(key1))

	key2, err := GenerateContentKey(rng)
	assert.Nil(t, err)
	assert.NotEqual(t, key1, key2)
}

func TestNewCipher_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	assert.NotNil(t, c)
}

func TestCipher_EncryptDecrypt_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	key, err := GenerateContentKey(rng)
	assert.Nil(t, err)

	plaintexts := [][]byte{
		[]byte("some metabolic panel results"),
		{0},
		make([]byte, 4096),
	}
	for _, plaintext := range plaintexts {
		env, err := c.Encrypt(plaintext, key)
		assert.Nil(t, err)
		assert.Equal(t, IVLength, len(env.IV))
		assert.Equal(t, TagLength, len(env.Tag))
		assert.Equal(t, len(plaintext), len(env.Ciphertext))

		recovered, err := c.Decrypt(env, key)
		assert.Nil(t, err)
		assert.Equal(t, plaintext, recovered)
	}
}

func TestCipher_Encrypt_freshIV(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	key, err := GenerateContentKey(rng)
	assert.Nil(t, err)

	env1, err := c.Encrypt([]byte("content"), key)
	assert.Nil(t, err)
	env2, err := c.Encrypt([]byte("content"), key)
	assert.Nil(t, err)
	assert.NotEqual(t, env1.IV, env2.IV)
	assert.NotEqual(t, env1.Ciphertext, env2.Ciphertext)
}

func TestCipher_Decrypt_err(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	key, err := GenerateContentKey(rng)
	assert.Nil(t, err)

	env, err := c.Encrypt([]byte("some metabolic panel results"), key)
	assert.Nil(t, err)

	// wrong key
	otherKey, err := GenerateContentKey(rng)
	assert.Nil(t, err)
	plaintext, err := c.Decrypt(env, otherKey)
	assert.Equal(t, ErrDecryptFailed, err)
	assert.Nil(t, plaintext)

	// tampered ciphertext
	tampered := &Envelope{IV: env.IV, Ciphertext: flipByte(env.Ciphertext, 0), Tag: env.Tag}
	plaintext, err = c.Decrypt(tampered, key)
	assert.Equal(t, ErrDecryptFailed, err)
	assert.Nil(t, plaintext)

	// tampered tag
	tampered = &Envelope{IV: env.IV, Ciphertext: env.Ciphertext, Tag: flipByte(env.Tag, 0)}
	plaintext, err = c.Decrypt(tampered, key)
	assert.Equal(t, ErrDecryptFailed, err)
	assert.Nil(t, plaintext)

	// bad key length
	_, err = c.Decrypt(env, key[:16])
	assert.Equal(t, ErrInvalidKeyLength, err)
}

func TestCipher_Encrypt_badKey(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	_, err = c.Encrypt([]byte("content"), []byte("short key"))
	assert.Equal(t, ErrInvalidKeyLength, err)
}

func flipByte(x []byte, i int) []byte {
	flipped := make([]byte, len(x))
	copy(flipped, x)
	flipped[i] ^= 0xff
	return flipped
}
