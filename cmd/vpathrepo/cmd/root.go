// Package cmd implements the vpathrepo command-line interface.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	baseDir   string
	storePath string
	verbose   bool
}

var flags globalFlags

var logger = logrus.New()

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vpathrepo",
		Short:         "inspect and mutate a virtual path repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.baseDir, "base-dir", ".",
		"base directory every relative filesystem mapping resolves against")
	rootCmd.PersistentFlags().StringVar(&flags.storePath, "store", "",
		"bbolt file to persist mappings in; defaults to an in-memory store")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newGetCmd(),
		newFindCmd(),
		newContainsCmd(),
		newLsCmd(),
		newAddCmd(),
		newRmCmd(),
		newStatCmd(),
	)
	return rootCmd
}

// Execute runs the vpathrepo CLI.
func Execute() error {
	return newRootCommand().Execute()
}
