package cmd

import (
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm QUERY",
		Short: "delete every mapping matched by a glob query and its virtual descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			count, err := repo.Remove(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("removed %d mapping(s)\n", count)
			return nil
		},
	}
}
