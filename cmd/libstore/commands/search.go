package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore"
)

func newSearchCmd() *cobra.Command {
	var opts libstore.SearchOptions
	cmd := &cobra.Command{
		Use:   "search <type> <pattern>",
		Short: "Find entries whose body matches a pattern",
		Long: `Find entries in a namespace whose body matches pattern. A pattern with no
regular expression syntax is matched literally. Matching ignores case
unless --case-sensitive is set; --meta also matches metadata values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			matches := matchView{}
			for m, err := range e.store.Search(args[0], args[1], opts) {
				if err != nil {
					return err
				}
				matches = append(matches, m)
			}
			return e.printer.Print(matches)
		},
	}
	cmd.Flags().BoolVarP(&opts.CaseSensitive, "case-sensitive", "s", false, "match case exactly")
	cmd.Flags().BoolVar(&opts.Metadata, "meta", false, "also match metadata values")
	return cmd
}

type matchView []libstore.Match

func (matchView) Headers() []string {
	return []string{"Path", "Line", "Key"}
}

func (v matchView) Rows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, m := range v {
		line := ""
		if m.Line > 0 {
			line = strconv.Itoa(m.Line)
		}
		rows = append(rows, []string{m.Path, line, m.Key})
	}
	return rows
}
