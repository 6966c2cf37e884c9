// Config loading for the initflow CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/internal/paths"
	"github.com/en-arthur/initflow-be/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyListenAddr   = "listen_addr"
	cfgKeyJWTSecret    = "jwt_secret"
	cfgKeyTokenTTLMins = "token_ttl_minutes"

	defaultBackend    = "sqlite"
	defaultListenAddr = ":8000"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# initflow configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# HTTP listen address for the serve command
listen_addr: ":8000"

# Secret used to sign bearer tokens. Must be set before serving.
# jwt_secret:

# Token lifetime in minutes (default 1440 = 24h)
# token_ttl_minutes: 1440
`

// runtimeConfig is the fully resolved configuration for a command run.
type runtimeConfig struct {
	store      types.Config
	listenAddr string
	jwtSecret  string
	tokenTTL   time.Duration
}

// resolveConfig loads config.yaml from the resolved config directory and
// applies flag and environment precedence for the data directory.
func resolveConfig() (*runtimeConfig, error) {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := &runtimeConfig{
		store: types.Config{
			Backend: v.GetString(cfgKeyBackend),
			DataDir: dataDir,
		},
		listenAddr: v.GetString(cfgKeyListenAddr),
		jwtSecret:  v.GetString(cfgKeyJWTSecret),
		tokenTTL:   time.Duration(v.GetInt(cfgKeyTokenTTLMins)) * time.Minute,
	}
	if cfg.tokenTTL <= 0 {
		cfg.tokenTTL = auth.DefaultTokenTTL
	}
	return cfg, nil
}

// loadConfig reads config.yaml using Viper, creating the config
// directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
