package cmd

import (
	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	var lang string
	c := &cobra.Command{
		Use:   "find QUERY",
		Short: "list every resource matching a glob or literal query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			matches, err := repo.Find(args[0], lang)
			if err != nil {
				return err
			}
			for _, res := range matches {
				printResource(cmd, res)
			}
			return nil
		},
	}
	c.Flags().StringVar(&lang, "lang", "glob", "query language: glob or literal")
	return c
}

func newContainsCmd() *cobra.Command {
	var lang string
	c := &cobra.Command{
		Use:   "contains QUERY",
		Short: "report whether a glob or literal query matches anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			ok, err := repo.Contains(args[0], lang)
			if err != nil {
				return err
			}
			cmd.Println(ok)
			return nil
		},
	}
	c.Flags().StringVar(&lang, "lang", "glob", "query language: glob or literal")
	return c
}
