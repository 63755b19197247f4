package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/storeroom/internal/paths"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "STOREROOM"

	// Config keys.
	cfgKeyDriver      = "driver"
	cfgKeyDataDir     = "data_dir"
	cfgKeyDatabase    = "database"
	cfgKeyDSN         = "dsn"
	cfgKeyMetricsAddr = "metrics_addr"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Driver      string `yaml:"driver"`
	DataDir     string `yaml:"data_dir,omitempty"`
	Database    string `yaml:"database"`
	DSN         string `yaml:"dsn,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

const configHeader = `# storeroom configuration
# driver: sqlite or postgres. dsn is used by postgres only.
# STOREROOM_DRIVER, STOREROOM_DATABASE, STOREROOM_DSN and
# STOREROOM_METRICS_ADDR override the values below.
`

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply. data_dir is read from the file only so the
// flag > config > env precedence in internal/paths holds.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDriver, types.DriverSQLite)
	v.SetDefault(cfgKeyDatabase, types.DefaultDatabaseFile)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{cfgKeyDriver, cfgKeyDatabase, cfgKeyDSN, cfgKeyMetricsAddr} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. It reports whether a file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func resolveConfigDir(flag string) (string, error) {
	return paths.ResolveConfigDir(flag)
}

// dataDir resolves the data directory: --data-dir > config data_dir >
// STOREROOM_DATA_DIR > $(CWD)/database.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
}

// storeConfig builds the store configuration from the loaded config.
func (a *app) storeConfig() (types.Config, error) {
	cfg := types.Config{
		Driver: a.cfg.GetString(cfgKeyDriver),
		DSN:    a.cfg.GetString(cfgKeyDSN),
	}
	if cfg.Driver == types.DriverSQLite {
		dir, err := a.dataDir()
		if err != nil {
			return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.Path = paths.DatabasePath(dir, a.cfg.GetString(cfgKeyDatabase))
	}
	return cfg, nil
}
