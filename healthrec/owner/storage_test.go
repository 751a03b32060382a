package owner

import (
	"math/rand"
	"testing"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/id"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testKeychainAuth = "some secret passphrase"

func TestCreateLoadKeychain(t *testing.T) {
	keychainDir := t.TempDir()
	logger := zap.NewNop()
	assert.True(t, MissingKeychain(keychainDir))

	err := CreateKeychain(logger, keychainDir, testKeychainAuth,
		keychain.VeryLightScryptN, keychain.VeryLightScryptP)
	assert.Nil(t, err)
	assert.False(t, MissingKeychain(keychainDir))

	keys, err := loadKeychain(keychainDir, testKeychainAuth)
	assert.Nil(t, err)
	assert.Equal(t, nInitialKeys, keys.Len())

	// a second create is refused rather than overwriting keys
	err = CreateKeychain(logger, keychainDir, testKeychainAuth,
		keychain.VeryLightScryptN, keychain.VeryLightScryptP)
	assert.Equal(t, ErrKeychainExists, err)
}

func TestLoadOrCreateClientID(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	logger := zap.NewNop()
	clientSL := storage.NewClientSL(db.NewMemoryDB())
	keys := keychain.NewPseudoRandom(rng, 3)

	clientID1, err := loadOrCreateClientID(logger, clientSL, keys)
	assert.Nil(t, err)

	// restarts act as the same party
	clientID2, err := loadOrCreateClientID(logger, clientSL, keys)
	assert.Nil(t, err)
	assert.Equal(t, clientID1, clientID2)

	// a stored identity absent from the keychain is an error, not a silent re-sample
	otherKeys := keychain.NewPseudoRandom(rng, 3)
	clientID3, err := loadOrCreateClientID(logger, clientSL, otherKeys)
	assert.NotNil(t, err)
	assert.Nil(t, clientID3)
}

func TestSelfWrappedKeyStorage(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	clientSL := storage.NewClientSL(db.NewMemoryDB())
	recordID := id.NewPseudoRandom(rng)
	packed := make([]byte, 72)
	_, err := rng.Read(packed)
	assert.Nil(t, err)

	loaded, err := loadSelfWrappedKey(clientSL, recordID)
	assert.Equal(t, ErrNoAccess, err)
	assert.Nil(t, loaded)

	assert.Nil(t, saveSelfWrappedKey(clientSL, recordID, packed))
	loaded, err = loadSelfWrappedKey(clientSL, recordID)
	assert.Nil(t, err)
	assert.Equal(t, packed, loaded)
}

func TestOwnedRecordIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	clientSL := storage.NewClientSL(db.NewMemoryDB())

	recordIDs, err := loadOwnedRecordIDs(clientSL)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(recordIDs))

	expected := []id.ID{id.NewPseudoRandom(rng), id.NewPseudoRandom(rng)}
	for _, recordID := range expected {
		assert.Nil(t, appendOwnedRecordID(clientSL, recordID))
	}
	recordIDs, err = loadOwnedRecordIDs(clientSL)
	assert.Nil(t, err)
	assert.Equal(t, expected, recordIDs)
}
