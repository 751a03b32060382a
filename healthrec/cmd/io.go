package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/errors"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	lowner "github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var nRecords int

const (
	maxContentSize = 12 * 1024 // bytes
	minContentSize = 32        // bytes
)

// ioCmd represents the io command
var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "check ability to upload, share, and download records",
	Run: func(cmd *cobra.Command, args []string) {
		oc, err := getTestOwner()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer func() {
			oc.ledgerDB.Close()
			errors.MaybePanic(oc.owner.CloseAndRemove())
		}()
		if err := testIO(oc.owner); err != nil {
			oc.logger.Error("io test failed", zap.Error(err))
			os.Exit(1)
		}
		oc.logger.Info("io test succeeded", zap.Int("n_records", nRecords))
	},
}

func init() {
	testCmd.AddCommand(ioCmd)

	ioCmd.Flags().IntVarP(&nRecords, "n-records", "n", 8, "number of records")
}

func testIO(o *lowner.Owner) error {
	rng := rand.New(rand.NewSource(0))
	ctx := context.Background()
	for i := 0; i < nRecords; i++ {
		nContentBytes := minContentSize +
			int(rng.Int31n(int32(maxContentSize-minContentSize)))
		contents := make([]byte, nContentBytes)
		rng.Read(contents)
		title := fmt.Sprintf("io test record %d", i)
		recipients := []key.PublicKey{key.NewPseudoRandomKeypair(rng).ID()}

		recordID, _, err := o.Upload(ctx, contents, title, recipients)
		if err != nil {
			return err
		}
		downloaded, err := o.Download(ctx, recordID)
		if err != nil {
			return err
		}
		if !bytes.Equal(contents, downloaded) {
			return fmt.Errorf(
				"uploaded content (%d bytes) does not equal downloaded (%d bytes)",
				len(contents), len(downloaded),
			)
		}
	}

	return nil
}
