// Package cli implements the storeroom command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by one command tree: flags, the loaded config and
// the logger. PersistentPreRunE fills cfg and logger.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "storeroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "storeroom",
		Short: "A small inventory and order tracker",
		Long: `Storeroom keeps products, customers and orders in an embedded SQL database
and answers a fixed set of sales reports over them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/storeroom)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/database)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newOrdersCmd(a))
	root.AddCommand(newProductsCmd(a))
	root.AddCommand(newCustomersCmd(a))
	root.AddCommand(newPricesCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(newRestoreCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}

// Execute runs the root command with os.Args and returns the process exit
// code. SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "storeroom:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup configures logging and loads config.yaml. It runs before every
// subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	configDir, err := resolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError("load config", err)
	}
	a.configDir = configDir
	a.cfg = cfg
	a.logger.Debug("config loaded", "config_dir", configDir, "driver", cfg.GetString(cfgKeyDriver))
	return nil
}

// exitErr carries an explicit exit code.
type exitErr struct {
	code int
	msg  string
	err  error
}

func (e *exitErr) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *exitErr) Unwrap() error {
	return e.err
}

func sysError(msg string, err error) error {
	return &exitErr{code: exitSysError, msg: msg, err: err}
}

func userError(msg string, err error) error {
	return &exitErr{code: exitUserError, msg: msg, err: err}
}

// exitCode maps an error to the process exit code. Storage failures are
// system errors; anything else (bad input, constraint violations, empty
// reports) is a user error.
func exitCode(err error) int {
	var ee *exitErr
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, types.ErrStorage), errors.Is(err, types.ErrStoreClosed):
		return exitSysError
	default:
		return exitUserError
	}
}
