package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/id"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const recordIDFlag = "recordId"

var errMissingRecordID = errors.New("missing record ID")

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download and decrypt a record to a local file",
	Long: `download fetches the record's encrypted envelope from the content store, unwraps
this client's copy of the content key from the ledger, and decrypts the content to a local
file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := downloadFile(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP(recordIDFlag, "i", "",
		"hex ID of the record to download")
	downloadCmd.Flags().StringP(filepathFlag, "f", "",
		"path of local file to write the decrypted content to")

	bindCommandFlags(downloadCmd)
}

func downloadFile() error {
	downFilepath := viper.GetString(filepathFlag)
	if downFilepath == "" {
		return errMissingFilepath
	}
	recordID, err := getRecordID()
	if err != nil {
		return err
	}

	oc, err := getOwner()
	if err != nil {
		return err
	}
	defer oc.close()

	content, err := oc.owner.Download(context.Background(), recordID)
	if err != nil {
		return err
	}
	const filePerm = 0600
	if err = os.WriteFile(downFilepath, content, filePerm); err != nil {
		return err
	}
	oc.logger.Info("record downloaded",
		zap.Stringer("record_id", recordID),
		zap.String("filepath", downFilepath),
	)
	return nil
}

func getRecordID() (id.ID, error) {
	encoded := viper.GetString(recordIDFlag)
	if encoded == "" {
		return id.ID{}, errMissingRecordID
	}
	return id.FromString(encoded)
}
