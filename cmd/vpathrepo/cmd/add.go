package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	vpathrepo "github.com/vpathfs/repository"
)

func newAddCmd() *cobra.Command {
	var fsRelative, linkTarget string
	c := &cobra.Command{
		Use:   "add VPATH",
		Short: "map a virtual path onto a filesystem path or another virtual path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fsRelative == "") == (linkTarget == "") {
				return fmt.Errorf("exactly one of --fs or --link must be set")
			}

			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			var source vpathrepo.AddSource
			if fsRelative != "" {
				source = vpathrepo.FilesystemSource{RelativePath: fsRelative}
			} else {
				source = vpathrepo.LinkSource{TargetVPath: linkTarget}
			}
			return repo.Add(args[0], source)
		},
	}
	c.Flags().StringVar(&fsRelative, "fs", "", "filesystem path, relative to --base-dir")
	c.Flags().StringVar(&linkTarget, "link", "", "target virtual path")
	return c
}
