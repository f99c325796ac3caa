package main

import (
	"os"

	"github.com/tendermint/tendermint/libs/cli"

	"github.com/solbuf-labs/solship/cmd/solship/commands"
)

func main() {
	rootCmd := commands.RootCmd
	rootCmd.AddCommand(
		commands.NewUploadCmd(),
		commands.NewAssignCmd(),
		commands.NewCloseCmd(),
		commands.NewBalanceCmd(),
		commands.VersionCmd,
		cli.NewCompletionCmd(rootCmd, true),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
