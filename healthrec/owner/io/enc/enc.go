package enc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"io"

	"github.com/pkg/errors"
)

const (
	// ContentKeyLength is the byte length of the AES-256 content key generated once per
	// record.
	ContentKeyLength = 32

	// IVLength is the byte length of the GCM initialization vector, freshly drawn for every
	// Encrypt call.
	IVLength = 12

	// TagLength is the byte length of the GCM authentication tag.
	TagLength = 16
)

var (
	// ErrInvalidKeyLength indicates a content key that is not ContentKeyLength bytes.
	ErrInvalidKeyLength = errors.New("content key has invalid length")

	// ErrDecryptFailed indicates that authenticated decryption failed, either from a wrong
	// key or from tampered ciphertext/tag bytes.
	ErrDecryptFailed = errors.New("content decryption failed")

	// ErrSelfCheckFailed indicates that the cipher's start-up round trip did not recover its
	// own plaintext.
	ErrSelfCheckFailed = errors.New("cipher self-check round trip failed")
)

// GenerateContentKey draws a fresh ContentKeyLength-byte symmetric key from the given
// randomness source.
func GenerateContentKey(rand io.Reader) ([]byte, error) {
	key := make([]byte, ContentKeyLength)
	if _, err := io.ReadFull(rand, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Cipher authenticate-encrypts record content with AES-256-GCM. Its methods are stateless
// beyond the randomness source and safe for concurrent use.
type Cipher struct {
	rand io.Reader
}

// NewCipher creates a Cipher after verifying with a round trip that the underlying AEAD
// primitive is usable in this process.
func NewCipher(rand io.Reader) (*Cipher, error) {
	c := &Cipher{rand: rand}
	key, err := GenerateContentKey(rand)
	if err != nil {
		return nil, err
	}
	plaintext := []byte("cipher self-check")
	env, err := c.Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}
	recovered, err := c.Decrypt(env, key)
	if err != nil || !bytes.Equal(recovered, plaintext) {
		return nil, ErrSelfCheckFailed
	}
	return c, nil
}

// Encrypt seals the plaintext under the content key with a fresh random IV, returning the
// IV, ciphertext, and authentication tag as separate envelope fields.
func (c *Cipher) Encrypt(plaintext []byte, key []byte) (*Envelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, IVLength)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, err
	}
	sealed := gcm.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - TagLength
	return &Envelope{
		IV:         iv,
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
	}, nil
}

// Decrypt opens the envelope under the content key. It returns ErrDecryptFailed, and no
// plaintext bytes, if the authentication tag does not verify.
func (c *Cipher) Decrypt(env *Envelope, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)
	plaintext, err := gcm.Open(nil, env.IV, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != ContentKeyLength {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
