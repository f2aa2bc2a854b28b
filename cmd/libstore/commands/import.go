package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [archive]",
		Short: "Save every entry from an archive",
		Long: `Save every entry from an archive written by export, replacing entries
at the same addresses. The archive is read from standard input when no
file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if name := pathArg(args, 0); name != "" && name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				defer f.Close()
				r = f
			}

			n, err := e.store.Import(r)
			if err != nil {
				return fmt.Errorf("%w (%d records saved)", err, n)
			}
			e.printer.Success(fmt.Sprintf("Imported %d records", n))
			return nil
		},
	}
}
