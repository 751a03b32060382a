package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	filepathFlag   = "filepath"
	titleFlag      = "title"
	recipientsFlag = "recipients"
)

var (
	errMissingFilepath = errors.New("missing filepath")
	errMissingTitle    = errors.New("missing title")
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "encrypt and upload a local record file",
	Long: `upload encrypts a local file under a fresh content key, stores the encrypted
envelope in the content store, and creates the ledger record, optionally granting the
given recipients access.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := uploadFile(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP(filepathFlag, "f", "",
		"path of local file to upload")
	uploadCmd.Flags().StringP(titleFlag, "t", "",
		"title of the record")
	uploadCmd.Flags().StringSliceP(recipientsFlag, "r", nil,
		"comma-separated base-58 public keys to grant access to")

	bindCommandFlags(uploadCmd)
}

func uploadFile() error {
	upFilepath := viper.GetString(filepathFlag)
	if upFilepath == "" {
		return errMissingFilepath
	}
	title := viper.GetString(titleFlag)
	if title == "" {
		return errMissingTitle
	}
	recipients, err := parseRecipients(viper.GetStringSlice(recipientsFlag))
	if err != nil {
		return err
	}
	content, err := os.ReadFile(upFilepath)
	if err != nil {
		return err
	}

	oc, err := getOwner()
	if err != nil {
		return err
	}
	defer oc.close()

	recordID, contentID, err := oc.owner.Upload(context.Background(), content, title,
		recipients)
	if err != nil {
		return err
	}
	oc.logger.Info("record uploaded",
		zap.Stringer("record_id", recordID),
		zap.String("content_id", contentID),
	)
	return nil
}

func parseRecipients(encoded []string) ([]key.PublicKey, error) {
	recipients := make([]key.PublicKey, len(encoded))
	for i, s := range encoded {
		var err error
		if recipients[i], err = key.FromString(s); err != nil {
			return nil, err
		}
	}
	return recipients, nil
}
