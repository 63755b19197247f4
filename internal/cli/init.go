package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/store"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize storeroom configuration and storage",
		Long:  "Write a default config.yaml if none exists, then create the database and its tables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	cfg := configFile{
		Driver:   a.cfg.GetString(cfgKeyDriver),
		Database: a.cfg.GetString(cfgKeyDatabase),
		DSN:      a.cfg.GetString(cfgKeyDSN),
	}
	if a.flags.dataDir != "" {
		abs, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return userError("data dir", err)
		}
		cfg.DataDir = abs
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, cfg)
	if err != nil {
		return sysError("write config", err)
	}
	if written {
		a.logger.Info("wrote config", "path", configPath)
	}

	// Open creates the data directory and the schema.
	err = a.withStore(cmd, func(s *store.Store) error { return nil })
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Storeroom initialized successfully")
	fmt.Fprintln(out, "  config:", a.configDir)
	if cfg.Driver == types.DriverSQLite {
		sc, err := a.storeConfig()
		if err != nil {
			return sysError("configure store", err)
		}
		fmt.Fprintln(out, "  database:", sc.Path)
	}
	return nil
}
