package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat [VPATH]",
		Short: "report repository-wide mapping counts, or a single path's content digest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			if len(args) == 1 {
				hash, err := repo.Digest(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[0], hash)
				return nil
			}

			stats := repo.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mappings\t%d\n", stats.MappingCount)
			fmt.Fprintf(out, "targets\t%d\n", stats.TargetCount)
			fmt.Fprintf(out, "resolvable\t%d\n", stats.ResolvableCount)
			fmt.Fprintf(out, "dangling\t%d\n", stats.DanglingCount)
			fmt.Fprintf(out, "base-dir\t%s\n", stats.BaseDirectory)
			return nil
		},
	}
}
