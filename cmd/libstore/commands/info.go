package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore/internal/output"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <type> [path]",
		Short: "Show size, modification time and hash of an entry",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			info, err := e.store.Info(args[0], pathArg(args, 1))
			if err != nil {
				return err
			}
			if e.printer.Format() != output.FormatTable {
				return e.printer.Print(info)
			}

			kind := "file"
			if info.IsDir {
				kind = "dir"
			}
			pairs := [][2]string{
				{"Type", info.Type},
				{"Path", info.Path},
				{"Name", info.Name},
				{"Kind", kind},
				{"Size", strconv.FormatInt(info.Size, 10)},
				{"Modified", info.Modified.Format(time.RFC3339)},
			}
			if info.Hash != "" {
				pairs = append(pairs, [2]string{"Hash", info.Hash})
			}
			return output.SimpleTable(e.printer.Writer(), pairs)
		},
	}
}
