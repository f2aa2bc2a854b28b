// Package commands implements the libstore command-line interface.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jpl-au/libstore"
	"github.com/jpl-au/libstore/internal/config"
	"github.com/jpl-au/libstore/internal/output"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "libstore",
		Short: "Browse and edit a filesystem library store",
		Long: `libstore reads and writes library entries kept as plain files: a body
with an optional block of "// key: value" metadata lines at the top,
grouped by type into one directory per namespace.

Use "libstore [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: $XDG_CONFIG_HOME/libstore/config.yaml)")
	pf.String("root", "", "storage root directory")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.StringP("output", "o", "", "output format: table, json or yaml")

	root.AddCommand(
		newInitCmd(),
		newGetCmd(),
		newSaveCmd(),
		newRmCmd(),
		newMvCmd(),
		newInfoCmd(),
		newTypesCmd(),
		newSearchCmd(),
		newExportCmd(),
		newImportCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// env is what a command needs to run: the loaded configuration, the
// opened store and somewhere to print.
type env struct {
	cfg     *config.Config
	store   *libstore.Store
	printer *output.Printer
	log     *slog.Logger
}

// setup loads configuration for cmd and opens the configured store. It
// does not create the storage root.
func setup(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log := config.NewLogger(cfg.Logging, os.Stderr)

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	opts := cfg.Store.StoreOptions()
	opts["logger"] = log
	src, err := libstore.DefaultRegistry().Open(cfg.Store.Kind, opts)
	if err != nil {
		return nil, err
	}
	store, ok := src.(*libstore.Store)
	if !ok {
		return nil, fmt.Errorf("store kind %q is not supported by the command line", cfg.Store.Kind)
	}
	log.Debug("opened store", "kind", cfg.Store.Kind, "root", store.Root())

	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &env{
		cfg:     cfg,
		store:   store,
		printer: output.NewPrinter(out, format, color),
		log:     log,
	}, nil
}

// pathArg returns args[i], or "" when it was not given.
func pathArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
