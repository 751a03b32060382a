package cmd

import (
	"os"
	"path/filepath"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
	clogging "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/logging"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/ledger"
	lowner "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "test the owner client against a content store",
}

func init() {
	RootCmd.AddCommand(testCmd)
}

// getTestOwner creates an ephemeral owner client in a temporary data directory. The caller
// is responsible for closing the ledger DB and removing the client state when done.
func getTestOwner() (*ownerClient, error) {
	dataDir, err := os.MkdirTemp("", "healthrec-test-data")
	if err != nil {
		return nil, err
	}
	config := lowner.NewDefaultConfig().
		WithDataDir(dataDir).
		WithDefaultDbDir().
		WithDefaultKeychainDir().
		WithStoreAPIAddr(viper.GetString(storeAPIAddrFlag)).
		WithLogLevel(getLogLevel())
	logger := clogging.NewDevLogger(config.LogLevel)

	// since we're just doing tests, a fixed passphrase and light scrypt params are fine
	passphrase := "test passphrase"
	err = lowner.CreateKeychain(logger, config.KeychainDir, passphrase,
		keychain.VeryLightScryptN, keychain.VeryLightScryptP)
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
