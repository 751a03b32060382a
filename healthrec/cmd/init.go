package cmd

import (
	"bufio"
	"fmt"
	"os"

	lowner "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	errMismatchedPassphrase    = errors.New("second passphrase does not match first")
	errConfirmationNotRecorded = errors.New(`confirmation is not "RECORDED"`)
	errKeychainExists          = errors.New("keychain already exists in keychain directory")
	recordedInput              = "RECORDED"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "initialize the client keychain",
	Long: `init creates a new keychain of signing keypairs, encrypted at rest under a
passphrase. One of its keys becomes this client's identity on the ledger.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := newKeychainCreator().create(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}

type keychainCreator interface {
	create() error
}

func newKeychainCreator() keychainCreator {
	return &keychainCreatorImpl{
		ps: &passphraseSetterImpl{
			pg1:    &terminalPassphraseGetter{},
			pg2:    &terminalPassphraseGetter{},
			reader: bufio.NewReader(os.Stdin),
		},
		scryptN: keychain.StandardScryptN,
		scryptP: keychain.StandardScryptP,
	}
}

type keychainCreatorImpl struct {
	ps      passphraseSetter
	scryptN int
	scryptP int
}

func (c *keychainCreatorImpl) create() error {
	config, logger := getOwnerConfig()
	if config.KeychainDir == "" {
		return errMissingKeychainDir
	}
	if !lowner.MissingKeychain(config.KeychainDir) {
		return errKeychainExists
	}
	passphrase, err := c.ps.set()
	if err != nil {
		return err
	}

	logger.Info("creating keychain")
	return lowner.CreateKeychain(logger, config.KeychainDir, passphrase, c.scryptN,
		c.scryptP)
}

type passphraseSetter interface {
	set() (string, error)
}

type passphraseSetterImpl struct {
	pg1    passphraseGetter
	pg2    passphraseGetter
	reader *bufio.Reader
}

func (s *passphraseSetterImpl) set() (string, error) {
	passphrase := viper.GetString(passphraseVar) // intentionally not bound to flag
	if passphrase != "" {
		return passphrase, nil
	}

	fmt.Print("Enter passphrase for new keychain: ")
	passphrase, err := s.pg1.get()
	if err != nil {
		return "", err
	}
	fmt.Printf("\nEnter passphrase again: ")
	repeated, err := s.pg2.get()
	if err != nil {
		return "", err
	}
	if passphrase != repeated {
		return "", errMismatchedPassphrase
	}
	fmt.Println("\n\nRecord your passphrase somewhere safe. You won't be able to recover it!")
	fmt.Println("Safe places include:")
	fmt.Println(" - password manager app (e.g., 1Password, LastPass)")
	fmt.Println(" - physically written down somewhere safe")
	fmt.Println()
	fmt.Print(`Enter "RECORDED" once you have done this: `)
	confirmation, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	confirmation = confirmation[:len(confirmation)-1] // drop \n at end
	if confirmation != recordedInput {
		return "", errConfirmationNotRecorded
	}
	return passphrase, nil
}

type passphraseGetter interface {
	get() (string, error)
}

type terminalPassphraseGetter struct{}

func (g *terminalPassphraseGetter) get() (string, error) {
	passphraseBytes, err := terminal.ReadPassword(0)
	if err != nil {
		return "", err
	}
	return string(passphraseBytes), nil
}
