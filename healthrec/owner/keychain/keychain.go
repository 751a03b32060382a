package keychain

import (
	"math/rand"
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/pkg/errors"
)

var (
	// ErrMissingKeychain indicates a Load from a filepath with no keychain file.
	ErrMissingKeychain = errors.New("missing keychain file")

	// ErrInvalidPassphrase indicates a Load with a passphrase other than the one the
	// keychain was saved with.
	ErrInvalidPassphrase = errors.New("invalid keychain passphrase")

	// ErrEmptyKeychain indicates a Sample from a keychain with no keys.
	ErrEmptyKeychain = errors.New("empty keychain")
)

// Keychain is a collection of ed25519 signing keypairs, indexed by the base-58 string of
// the public key.
type Keychain struct {
	keys map[string]*key.Keypair
	ids  []key.PublicKey
}

// New creates a Keychain with n fresh keypairs.
func New(n int) (*Keychain, error) {
	kc := empty()
	for c := 0; c < n; c++ {
		kp, err := key.NewKeypair()
		if err != nil {
			return nil, err
		}
		kc.add(kp)
	}
	return kc, nil
}

// NewPseudoRandom creates a Keychain with n keypairs from a random number generator.
func NewPseudoRandom(rng *rand.Rand, n int) *Keychain {
	kc := empty()
	for c := 0; c < n; c++ {
		kc.add(key.NewPseudoRandomKeypair(rng))
	}
	return kc
}

func empty() *Keychain {
	return &Keychain{keys: make(map[string]*key.Keypair)}
}

func (kc *Keychain) add(kp *key.Keypair) {
	id := kp.ID()
	if _, in := kc.keys[id.String()]; in {
		return
	}
	kc.keys[id.String()] = kp
	kc.ids = append(kc.ids, id)
}

// Len returns the number of keypairs in the keychain.
func (kc *Keychain) Len() int {
	return len(kc.ids)
}

// Get returns the keypair for the given public key identity, if the keychain holds it.
func (kc *Keychain) Get(id key.PublicKey) (*key.Keypair, bool) {
	kp, in := kc.keys[id.String()]
	return kp, in
}

// Sample returns a uniformly sampled keypair from the keychain.
func (kc *Keychain) Sample(rng *rand.Rand) (*key.Keypair, error) {
	if len(kc.ids) == 0 {
		return nil, ErrEmptyKeychain
	}
	id := kc.ids[rng.Intn(len(kc.ids))]
	return kc.keys[id.String()], nil
}

// IDs returns the public key identities of the keychain's keypairs, in insertion order.
func (kc *Keychain) IDs() []key.PublicKey {
	ids := make([]key.PublicKey, len(kc.ids))
	copy(ids, kc.ids)
	return ids
}

// Load reads and decrypts the keychain at the given filepath.
func Load(filepath, auth string) (*Keychain, error) {
	buf, err := os.ReadFile(filepath)
	if os.IsNotExist(err) {
		return nil, ErrMissingKeychain
	}
	if err != nil {
		return nil, err
	}
	return DecryptFromStored(buf, auth)
}

// Save encrypts the keychain under the authentication passphrase and writes it to the given
// filepath, readable only by the current user.
func Save(filepath, auth string, kc *Keychain, scryptN, scryptP int) error {
	buf, err := EncryptToStored(kc, auth, scryptN, scryptP)
	if err != nil {
		return err
	}
	const filePerm = 0600
	return os.WriteFile(filepath, buf, filePerm)
}
