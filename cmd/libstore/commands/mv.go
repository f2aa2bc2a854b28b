package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <type> <from> <to>",
		Aliases: []string{"rename"},
		Short:   "Move a file entry to a new path",
		Long: `Move a file entry to a new path in the same namespace. The destination
must not exist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := e.store.RenameEntry(args[0], args[1], args[2]); err != nil {
				return err
			}
			e.printer.Success(fmt.Sprintf("Moved %s/%s to %s", args[0], args[1], args[2]))
			return nil
		},
	}
}
