package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore"
	"github.com/jpl-au/libstore/internal/output"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> [path]",
		Short: "Print an entry body or list a directory",
		Long: `Print the body of a file entry, or list a directory.

A path that is empty or ends in "/" names a directory and lists as empty
when it does not exist. In the flows namespace ".json" may be left off.

Examples:
  # List the functions namespace
  libstore get functions

  # Print one flow
  libstore get flows /demo/main`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			typ, p := args[0], pathArg(args, 1)
			entry, err := e.store.GetEntry(typ, p)
			if err != nil {
				return err
			}
			if entry.IsDir {
				return e.printer.Print(listingView(entry.Listing))
			}
			if e.printer.Format() == output.FormatTable {
				_, err := io.WriteString(e.printer.Writer(), entry.Body)
				return err
			}
			return e.printer.Print(bodyView{Type: typ, Path: p, Body: entry.Body})
		},
	}
}

// bodyView is a file entry in structured output.
type bodyView struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Body string `json:"body"`
}

// listingView prints a directory listing as a table.
type listingView libstore.Listing

func (listingView) Headers() []string {
	return []string{"Name", "Kind", "Metadata"}
}

func (l listingView) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, it := range l {
		if it.Dir {
			rows = append(rows, []string{it.Name + "/", "dir", ""})
			continue
		}
		rows = append(rows, []string{it.Name, "file", formatMeta(it.Meta)})
	}
	return rows
}

// formatMeta renders metadata on one line as key=value pairs.
func formatMeta(m *libstore.Metadata) string {
	var b strings.Builder
	for k, v := range m.All() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(v, "\n", `\n`))
	}
	return b.String()
}
