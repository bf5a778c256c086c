package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vpathfs/repository/internal/pathutil"
)

func newLsCmd() *cobra.Command {
	var mappingsOnly bool

	c := &cobra.Command{
		Use:   "ls VPATH",
		Short: "list the fused direct children of a virtual path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			if mappingsOnly {
				return lsMappingsOnly(cmd, repo, args[0])
			}

			children, err := repo.ListChildren(args[0])
			if err != nil {
				return err
			}
			for _, res := range children {
				printResource(cmd, res)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&mappingsOnly, "mappings-only", false,
		"list only explicit store mappings under VPATH, bypassing the fused on-disk view")
	return c
}

// lsMappingsOnly prints the raw explicit mappings (as opposed to the fused
// on-disk/virtual view ListChildren produces) that are direct children of
// vpath, dumped straight from Repository.Keys().
func lsMappingsOnly(cmd *cobra.Command, repo repositoryKeyer, vpath string) error {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return err
	}

	prefix := clean
	if prefix != "/" {
		prefix += "/"
	}

	var direct []string
	for _, key := range repo.Keys() {
		if key == clean || !strings.HasPrefix(key, prefix) {
			continue
		}
		if strings.Contains(strings.TrimPrefix(key, prefix), "/") {
			continue // not a direct child
		}
		direct = append(direct, key)
	}
	sort.Strings(direct)

	for _, key := range direct {
		cmd.Println(key)
	}
	return nil
}

// repositoryKeyer is the minimal slice of Repository's surface lsMappingsOnly
// needs, so it can be exercised against a fake in tests without spinning up
// a full Repository.
type repositoryKeyer interface {
	Keys() []string
}
