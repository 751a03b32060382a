package cmd

import (
	"os"

	"github.com/Aayx2hOG/Decentralized-health-record-app/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the healthrec version",
	Long:  `version prints the current healthrec version.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.WriteString(version.Version.String() + "\n")
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
