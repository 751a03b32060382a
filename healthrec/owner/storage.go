package owner

import (
	"math/rand"
	"os"
	"path/filepath"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/id"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrKeychainExists indicates when a keychain file already exists.
var ErrKeychainExists = errors.New("keychain already exists")

const (
	// keychainFilename defines the client keychain filename
	keychainFilename = "owner.keys"

	// nInitialKeys is the number of keys to generate on a new keychain
	nInitialKeys = 8

	selfWrappedKeyPrefix = "SelfWrappedKey:"
)

var (
	clientIDKey     = []byte("ClientID")
	ownedRecordsKey = []byte("OwnedRecords")
)

func loadKeychain(keychainDir, auth string) (*keychain.Keychain, error) {
	return keychain.Load(keychainFilepath(keychainDir), auth)
}

// CreateKeychain creates and saves a new keychain for a client, erroring if one already
// exists in the directory.
func CreateKeychain(logger *zap.Logger, keychainDir, auth string, scryptN, scryptP int) error {
	if _, err := os.Stat(keychainDir); os.IsNotExist(err) {
		if err := os.MkdirAll(keychainDir, os.ModePerm); err != nil {
			return err
		}
	}
	fp := keychainFilepath(keychainDir)
	if info, _ := os.Stat(fp); info != nil {
		logger.Error("keychain already exists", zap.String(LoggerKeychainFilepath, fp))
		return ErrKeychainExists
	}
	keys, err := keychain.New(nInitialKeys)
	if err != nil {
		return err
	}
	if err := keychain.Save(fp, auth, keys, scryptN, scryptP); err != nil {
		return err
	}
	logger.Info("saved new keychain",
		zap.String(LoggerKeychainFilepath, fp),
		zap.Int(LoggerKeychainNKeys, nInitialKeys),
	)
	return nil
}

// MissingKeychain returns whether the keychain directory is missing its keychain file.
func MissingKeychain(keychainDir string) bool {
	_, err := os.Stat(keychainFilepath(keychainDir))
	return os.IsNotExist(err)
}

func keychainFilepath(keychainDir string) string {
	return filepath.Join(keychainDir, keychainFilename)
}

// loadOrCreateClientID samples a keychain key as the client identity and persists the
// choice so subsequent restarts act as the same party on the ledger.
func loadOrCreateClientID(
	logger *zap.Logger, nsl storage.NamespaceSL, keys *keychain.Keychain,
) (*key.Keypair, error) {
	idBytes, err := nsl.Load(clientIDKey)
	if err != nil {
		logger.Error("error loading client ID", zap.Error(err))
		return nil, err
	}
	if idBytes != nil {
		pub, err := key.FromBytes(idBytes)
		if err != nil {
			return nil, err
		}
		clientID, in := keys.Get(pub)
		if !in {
			return nil, errors.New("stored client ID missing from keychain")
		}
		logger.Info("loaded existing client ID",
			zap.String(LoggerClientID, clientID.ID().String()))
		return clientID, nil
	}

	clientID, err := keys.Sample(rand.New(rand.NewSource(rand.Int63())))
	if err != nil {
		return nil, err
	}
	logger.Info("sampled new client ID", zap.String(LoggerClientID, clientID.ID().String()))
	return clientID, nsl.Store(clientIDKey, clientID.ID().Bytes())
}

func saveSelfWrappedKey(nsl storage.NamespaceSL, recordID id.ID, packed []byte) error {
	return nsl.Store(selfWrappedKeyKey(recordID), packed)
}

func loadSelfWrappedKey(nsl storage.NamespaceSL, recordID id.ID) ([]byte, error) {
	packed, err := nsl.Load(selfWrappedKeyKey(recordID))
	if err != nil {
		return nil, err
	}
	if packed == nil {
		return nil, ErrNoAccess
	}
	return packed, nil
}

func selfWrappedKeyKey(recordID id.ID) []byte {
	return append([]byte(selfWrappedKeyPrefix), recordID.Bytes()...)
}

func appendOwnedRecordID(nsl storage.NamespaceSL, recordID id.ID) error {
	existing, err := nsl.Load(ownedRecordsKey)
	if err != nil {
		return err
	}
	return nsl.Store(ownedRecordsKey, append(existing, recordID.Bytes()...))
}

func loadOwnedRecordIDs(nsl storage.NamespaceSL) ([]id.ID, error) {
	packed, err := nsl.Load(ownedRecordsKey)
	if err != nil {
		return nil, err
	}
	if len(packed)%id.Length != 0 {
		return nil, errors.New("malformed owned records index")
	}
	recordIDs := make([]id.ID, len(packed)/id.Length)
	for i := range recordIDs {
		if recordIDs[i], err = id.FromBytes(packed[i*id.Length : (i+1)*id.Length]); err != nil {
			return nil, err
		}
	}
	return recordIDs, nil
}
