package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vpathfs/repository/internal/resource"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get VPATH",
		Short: "resolve a single virtual path to its highest-priority resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := repo.Get(args[0])
			if err != nil {
				return err
			}
			printResource(cmd, res)
			return nil
		},
	}
}

func printResource(cmd *cobra.Command, res resource.Resource) {
	switch r := res.(type) {
	case *resource.FileResource:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tfile\t%s\n", r.VPath(), r.FsPath())
	case *resource.DirectoryResource:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tdirectory\t%s\n", r.VPath(), r.FsPath())
	case *resource.LinkResource:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tlink\t%s\n", r.VPath(), r.TargetVPath())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tvirtual\n", res.VPath())
	}
}
