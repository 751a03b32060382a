package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// recordsCmd represents the records command
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "list the records this client has uploaded",
	Long: `records lists the ID, title, content identifier, and number of active access
entries of every record this client has uploaded.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listRecords(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(recordsCmd)
}

func listRecords() error {
	oc, err := getOwner()
	if err != nil {
		return err
	}
	defer oc.close()

	records, recordIDs, err := oc.owner.Records()
	if err != nil {
		return err
	}
	for i, record := range records {
		nActive := 0
		for _, entry := range record.AccessEntries() {
			if !entry.Revoked {
				nActive++
			}
		}
		fmt.Printf("%s\t%s\t%s\t%d active grants\n",
			recordIDs[i], record.Title, record.CID, nActive)
	}
	return nil
}
