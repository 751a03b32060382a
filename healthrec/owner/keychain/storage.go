package keychain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	crand "crypto/rand"
	"encoding/json"
	"io"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"golang.org/x/crypto/scrypt"
)

const (
	// StandardScryptN is the standard scrypt CPU/memory cost for keychains at rest.
	StandardScryptN = 1 << 17

	// StandardScryptP is the standard scrypt parallelization parameter.
	StandardScryptP = 1

	// VeryLightScryptN is a low scrypt cost, suitable only for tests.
	VeryLightScryptN = 1 << 4

	// VeryLightScryptP is a low scrypt parallelization parameter, suitable only for tests.
	VeryLightScryptP = 1

	scryptR       = 8
	scryptKeyLen  = 32
	scryptSaltLen = 32
)

type storedKeychain struct {
	ScryptN    int    `json:"scryptN"`
	ScryptR    int    `json:"scryptR"`
	ScryptP    int    `json:"scryptP"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// EncryptToStored serializes the keychain's key seeds and encrypts them with an AES-256-GCM
// key derived from the authentication passphrase via scrypt.
func EncryptToStored(kc *Keychain, auth string, scryptN, scryptP int) ([]byte, error) {
	seeds := make([][]byte, 0, len(kc.ids))
	for _, id := range kc.ids {
		seeds = append(seeds, kc.keys[id.String()].PrivateKey.Seed())
	}
	plaintext, err := json.Marshal(seeds)
	if err != nil {
		return nil, err
	}
	salt := make([]byte, scryptSaltLen)
	if _, err = io.ReadFull(crand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := newAuthGCM(auth, salt, scryptN, scryptP)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(crand.Reader, nonce); err != nil {
		return nil, err
	}
	return json.Marshal(&storedKeychain{
		ScryptN:    scryptN,
		ScryptR:    scryptR,
		ScryptP:    scryptP,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	})
}

// DecryptFromStored decrypts a stored keychain using the authentication passphrase.
func DecryptFromStored(buf []byte, auth string) (*Keychain, error) {
	stored := &storedKeychain{}
	if err := json.Unmarshal(buf, stored); err != nil {
		return nil, err
	}
	gcm, err := newAuthGCM(auth, stored.Salt, stored.ScryptN, stored.ScryptP)
	if err != nil {
		return nil, err
	}
	if len(stored.Nonce) != gcm.NonceSize() {
		return nil, ErrInvalidPassphrase
	}
	plaintext, err := gcm.Open(nil, stored.Nonce, stored.Ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassphrase
	}
	var seeds [][]byte
	if err := json.Unmarshal(plaintext, &seeds); err != nil {
		return nil, err
	}
	kc := empty()
	for _, seed := range seeds {
		priv := ed25519.NewKeyFromSeed(seed)
		kc.add(&key.Keypair{
			PublicKey:  priv.Public().(ed25519.PublicKey),
			PrivateKey: priv,
		})
	}
	return kc, nil
}

func newAuthGCM(auth string, salt []byte, scryptN, scryptP int) (cipher.AEAD, error) {
	authKey, err := scrypt.Key([]byte(auth), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(authKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
