package commands

import (
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the storage root",
		Long: `Create the configured storage root directory if it does not exist.
Running it again is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := e.store.Init(); err != nil {
				return err
			}
			e.printer.Success("Library initialized at " + e.store.Root())
			return nil
		},
	}
}
