package cmd

import (
	"fmt"
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const recipientFlag = "recipient"

var errMissingRecipient = errors.New("missing recipient")

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "grant a recipient access to a record",
	Long: `share wraps the record's content key for the recipient and grants them an access
entry on the ledger. Only the record owner can share.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := shareRecord(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(shareCmd)

	shareCmd.Flags().StringP(recordIDFlag, "i", "",
		"hex ID of the record to share")
	shareCmd.Flags().StringP(recipientFlag, "r", "",
		"base-58 public key of the recipient")

	bindCommandFlags(shareCmd)
}

func shareRecord() error {
	recordID, err := getRecordID()
	if err != nil {
		return err
	}
	recipient, err := getRecipient()
	if err != nil {
		return err
	}

	oc, err := getOwner()
	if err != nil {
		return err
	}
	defer oc.close()

	if err = oc.owner.Share(recordID, recipient); err != nil {
		return err
	}
	oc.logger.Info("record shared",
		zap.Stringer("record_id", recordID),
		zap.Stringer("recipient", recipient),
	)
	return nil
}

func getRecipient() (key.PublicKey, error) {
	encoded := viper.GetString(recipientFlag)
	if encoded == "" {
		return key.PublicKey{}, errMissingRecipient
	}
	return key.FromString(encoded)
}
