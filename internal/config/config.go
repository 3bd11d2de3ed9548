// Package config loads lpub settings from flags, LPUB_* environment variables,
// .env files and an optional YAML or TOML config file.
//
// Precedence, highest first: command line flag, environment, .env file, config file,
// built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lpubmeta/internal/logger"
)

// EnvPrefix prefixes every environment variable lpub reads.
const EnvPrefix = "LPUB"

// Config is the resolved lpub configuration.
type Config struct {
	LogLevel       string   `mapstructure:"log_level"`
	LogFile        string   `mapstructure:"log_file"`
	TestMode       bool     `mapstructure:"test_mode"`
	SearchDirs     []string `mapstructure:"search_dirs"`
	ExtendedSearch bool     `mapstructure:"extended_search"`
	ReportFormat   string   `mapstructure:"report_format"`
	ServeAddr      string   `mapstructure:"serve_addr"`
	Theme          string   `mapstructure:"theme"`
}

var defaults = map[string]interface{}{
	"log_level":       "info",
	"log_file":        "",
	"test_mode":       false,
	"search_dirs":     []string{},
	"extended_search": false,
	"report_format":   "text",
	"serve_addr":      "127.0.0.1:8088",
	"theme":           "auto",
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":       "log_level",
	"log-file":        "log_file",
	"test-mode":       "test_mode",
	"search-dir":      "search_dirs",
	"extended-search": "extended_search",
	"format":          "report_format",
	"addr":            "serve_addr",
	"theme":           "theme",
}

// New returns a viper instance with lpub defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in flags to its config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration. configFile may be empty to search for lpub.yaml or
// lpub.toml in the working directory and the user config directory. Unless test mode
// is on, .env files from those directories are loaded first; they never override
// variables already set in the environment.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if !v.GetBool("test_mode") {
		for _, dir := range searchDirs() {
			if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
				return nil, err
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lpub")
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		logger.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.SearchDirs = splitDirs(cfg.SearchDirs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv exports the LPUB_* variables of a .env file that the environment does not
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}
	for key, value := range envMap {
		if !strings.HasPrefix(key, EnvPrefix+"_") {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
	}
	logger.Debug("Loaded .env file", "path", path)
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.ReportFormat {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("invalid report_format %q: want text, yaml or json", c.ReportFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// searchDirs are the directories searched for lpub.yaml and .env, working directory first.
func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "lpub"))
	}
	return dirs
}

// splitDirs expands entries holding an OS path list, as LPUB_SEARCH_DIRS does.
func splitDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		for _, part := range filepath.SplitList(d) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
