package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
	clogging "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/logging"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/ledger"
	lowner "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"
)

const ledgerDbSubdir = "ledger-db"

var (
	errMissingKeychainDir = errors.New("keychainDir cannot be empty")
	errKeychainNotExist   = errors.New("no keychain exists in the keychain directory")
)

// ownerClient bundles an owner client with the resources the commands need to release when
// done.
type ownerClient struct {
	owner    *lowner.Owner
	ledgerDB db.KVDB
	logger   *zap.Logger
}

func (oc *ownerClient) close() {
	oc.owner.Close()
	oc.ledgerDB.Close()
}

func getOwner() (*ownerClient, error) {
	config, logger := getOwnerConfig()
	if lowner.MissingKeychain(config.KeychainDir) {
		return nil, errKeychainNotExist
	}
	passphrase, err := getPassphrase()
	if err != nil {
		return nil, err
	}

	ledgerDB, err := db.NewRocksDB(filepath.Join(config.DataDir, ledgerDbSubdir))
	if err != nil {
		logger.Error("unable to init ledger DB", zap.Error(err))
		return nil, err
	}
	ldgr := ledger.New(storage.NewLedgerSL(ledgerDB), logger)

	o, err := lowner.NewOwner(config, passphrase, ldgr, logger)
	if err != nil {
		ledgerDB.Close()
		return nil, err
	}
	return &ownerClient{owner: o, ledgerDB: ledgerDB, logger: logger}, nil
}

func getOwnerConfig() (*lowner.Config, *zap.Logger) {
	config := lowner.NewDefaultConfig().
		WithDataDir(viper.GetString(dataDirFlag)).
		WithDefaultDbDir().
		WithKeychainDir(viper.GetString(keychainDirFlag)).
		WithStoreAPIAddr(viper.GetString(storeAPIAddrFlag)).
		WithLogLevel(getLogLevel())

	logger := clogging.NewDevLogger(config.LogLevel)
	logger.Info("owner configuration",
		zap.String(dataDirFlag, config.DataDir),
		zap.String(keychainDirFlag, config.KeychainDir),
		zap.String(storeAPIAddrFlag, config.StoreAPIAddr),
		zap.Stringer(logLevelFlag, config.LogLevel),
	)
	return config, logger
}

func getPassphrase() (string, error) {
	passphrase := viper.GetString(passphraseVar) // intentionally not bound to flag
	if passphrase != "" {
		return passphrase, nil
	}
	fmt.Print("Enter keychain passphrase: ")
	passphraseBytes, err := terminal.ReadPassword(0)
	if err != nil {
		return "", err
	}
	fmt.Println()
	return string(passphraseBytes), nil
}
