package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that searches rootDir/.srcnav for config.yml.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader for an explicit config file. Unlike the
// directory search, a missing file is an error.
func NewFileLoader(path string) Loader {
	return &loader{configFile: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SRCNAV_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".srcnav"))
	}

	v.SetEnvPrefix("SRCNAV")
	v.AutomaticEnv()
	// SRCNAV_REDACTION_LINE_THRESHOLD -> redaction.line_threshold
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	for _, key := range []string{
		"package.default_name",
		"package.root_env",
		"package.root",
		"listing.max_depth",
		"listing.exclude",
		"listing.respect_gitignore",
		"redaction.line_threshold",
		"redaction.placeholder",
		"redaction.script_patterns",
		"server.name",
		"server.transport",
		"server.addr",
		"log.level",
		"log.format",
	} {
		_ = v.BindEnv(key)
	}
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("package.default_name", defaults.Package.DefaultName)
	v.SetDefault("package.root_env", defaults.Package.RootEnv)
	v.SetDefault("package.root", defaults.Package.Root)

	v.SetDefault("listing.max_depth", defaults.Listing.MaxDepth)
	v.SetDefault("listing.exclude", defaults.Listing.Exclude)
	v.SetDefault("listing.respect_gitignore", defaults.Listing.RespectGitignore)

	v.SetDefault("redaction.line_threshold", defaults.Redaction.LineThreshold)
	v.SetDefault("redaction.placeholder", defaults.Redaction.Placeholder)
	v.SetDefault("redaction.script_patterns", defaults.Redaction.ScriptPatterns)

	v.SetDefault("server.name", defaults.Server.Name)
	v.SetDefault("server.transport", defaults.Server.Transport)
	v.SetDefault("server.addr", defaults.Server.Addr)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// LoadConfig creates a loader for the current working directory and loads config.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
