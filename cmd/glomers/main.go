package main

import (
	"os"

	cmd "github.com/mosaicnetworks/glomers/cmd/glomers/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(
		cmd.VersionCmd,
	)

	//Do not print usage when error occurs. The error is already logged.
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
