package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export [type...]",
		Short: "Write entries to a compressed archive",
		Long: `Write every file entry of the named namespaces, or of all namespaces,
to a Zstandard-compressed archive of JSON lines. The archive goes to
--file, or to standard output when --file is "-" or not given.

Examples:
  libstore export --file library.jsonl.zst
  libstore export flows functions > some.jsonl.zst`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if file != "" && file != "-" {
				f, err := os.Create(file)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer func() { err = errors.Join(err, f.Close()) }()
				w = f
			}

			n, err := e.store.Export(w, args...)
			if err != nil {
				return err
			}
			e.log.Info("export complete", "records", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", `archive to write ("-" for stdout)`)
	return cmd
}
