package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <type> <path>",
		Aliases: []string{"delete"},
		Short:   "Delete a file entry",
		Long: `Delete a file entry. Directories cannot be deleted and are left in place
when their last file is removed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := e.store.DeleteEntry(args[0], args[1]); err != nil {
				return err
			}
			e.printer.Success(fmt.Sprintf("Deleted %s/%s", args[0], args[1]))
			return nil
		},
	}
}
