package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solbuf-labs/solship/version"
)

// VersionCmd prints the build version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the solship version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.BuildVersion)
	},
}
