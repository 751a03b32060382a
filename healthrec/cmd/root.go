package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envVarPrefix = "HEALTHREC"

	dataDirFlag      = "dataDir"
	keychainDirFlag  = "keychainDir"
	storeAPIAddrFlag = "storeApiAddr"
	logLevelFlag     = "logLevel"
	passphraseVar    = "passphrase"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "healthrec",
	Short: "healthrec shares encrypted health records via an access-control ledger",
	Long: `healthrec encrypts health record content under a per-record key, stores the
encrypted envelope in a content-addressed store, and wraps the key individually for each
recipient on an access-control ledger. Only the record owner can grant and revoke access.`,
}

// Execute is the main entrypoint for the healthrec CLI.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP(dataDirFlag, "d", "",
		"local data directory")
	RootCmd.PersistentFlags().StringP(keychainDirFlag, "k", "",
		"local keychain directory")
	RootCmd.PersistentFlags().StringP(storeAPIAddrFlag, "s", "",
		"content store node API address")
	RootCmd.PersistentFlags().StringP(logLevelFlag, "l", zap.InfoLevel.String(),
		"log level")

	// bind viper flags
	viper.SetEnvPrefix(envVarPrefix) // look for env vars with "HEALTHREC_" prefix
	viper.AutomaticEnv()             // read in environment variables that match
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

func bindCommandFlags(cmd *cobra.Command) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
}

func getLogLevel() zapcore.Level {
	var ll zapcore.Level
	err := ll.Set(viper.GetString(logLevelFlag))
	if err != nil {
		panic(err)
	}
	return ll
}
