package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "revoke a recipient's access to a record",
	Long: `revoke flips the recipient's access entry on the ledger to revoked. The entry's
wrapped key bytes stay in place as a tombstone. A recipient who already unwrapped the
content key can still decrypt previously fetched content.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := revokeRecord(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(revokeCmd)

	revokeCmd.Flags().StringP(recordIDFlag, "i", "",
		"hex ID of the record to revoke access to")
	revokeCmd.Flags().StringP(recipientFlag, "r", "",
		"base-58 public key of the recipient")

	bindCommandFlags(revokeCmd)
}

func revokeRecord() error {
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

	if err = oc.owner.Unshare(recordID, recipient); err != nil {
		return err
	}
	oc.logger.Info("record access revoked",
		zap.Stringer("record_id", recordID),
		zap.Stringer("recipient", recipient),
	)
	return nil
}
