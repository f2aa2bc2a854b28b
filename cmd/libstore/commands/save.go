package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore"
)

func newSaveCmd() *cobra.Command {
	var (
		metaArgs []string
		file     string
	)
	cmd := &cobra.Command{
		Use:   "save <type> <path>",
		Short: "Write an entry",
		Long: `Write an entry body with optional metadata, replacing any existing
content at the path. The body is read from --file, or from standard input
when --file is "-" or not given.

Examples:
  # Save a function with two attributes
  echo 'return 1;' | libstore save functions util/one --meta name=one --meta outputs=1

  # Save a flow; it is stored as demo.json with four-space indentation
  libstore save flows demo --file demo.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := parseMeta(metaArgs)
			if err != nil {
				return err
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			body, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			if err := e.store.SaveEntry(args[0], args[1], meta, string(body)); err != nil {
				return err
			}
			e.printer.Success(fmt.Sprintf("Saved %s/%s", args[0], strings.TrimLeft(args[1], "/")))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&metaArgs, "meta", "m", nil, "metadata attribute as key=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "-", `file to read the body from ("-" for stdin)`)
	return cmd
}

// parseMeta turns key=value arguments into metadata, keeping their order.
func parseMeta(args []string) (*libstore.Metadata, error) {
	meta := &libstore.Metadata{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid metadata %q: want key=value", a)
		}
		meta.Set(k, v)
	}
	return meta, nil
}

// readInput reads name, or the command's stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
