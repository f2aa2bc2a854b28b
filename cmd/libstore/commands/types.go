package commands

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore/internal/output"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the namespaces in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			types, err := e.store.Types()
			if err != nil {
				return err
			}
			if e.printer.Format() != output.FormatTable {
				if types == nil {
					types = []string{}
				}
				return e.printer.Print(types)
			}
			t := output.NewTableData("Type")
			for _, typ := range types {
				t.AddRow(typ)
			}
			return e.printer.Print(t)
		},
	}
}
