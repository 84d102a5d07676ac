package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fittrack",
		Short: "FitTrack fitness and nutrition tracking API",
		Long: `FitTrack serves the JSON API behind the fitness tracker: accounts and
profiles, workout programs and sessions, meals and nutrition goals, and
body progress.

Configuration comes from the environment, an optional .env file and an
optional config.yml in the working directory.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
