package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore"
	"github.com/jpl-au/libstore/internal/output"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <type>",
		Short: "Print changes to a namespace as they happen",
		Long: `Print one line per change in a namespace until interrupted. Outside
table output each change is a JSON object on its own line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := e.printer.Writer()
			return e.store.Watch(ctx, args[0], func(ev libstore.Event) {
				if e.printer.Format() == output.FormatTable {
					e.printer.Printf("%-7s %s/%s\n", ev.Op, ev.Type, ev.Path)
					return
				}
				if err := output.PrintJSONLine(w, ev); err != nil {
					e.log.Warn("write event", "err", err)
				}
			})
		},
	}
}

// cmdContext returns the command's context, or Background when the
// command was run without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
