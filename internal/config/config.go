// Package config provides configuration loading for srcnav.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (SRCNAV_*)
//  2. Config file (.srcnav/config.yml, or an explicit --config path)
//  3. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: SRCNAV_
//   - Nested fields: use underscores (SRCNAV_REDACTION_LINE_THRESHOLD)
//
// SRCNAV_PACKAGE_ROOT therefore sets package.root, which is also the
// variable the resolver consults by default.
package config

import (
	"strings"

	"github.com/mvp-joe/srcnav/internal/catalog"
	"github.com/mvp-joe/srcnav/internal/mcp"
	"github.com/mvp-joe/srcnav/internal/navigator"
	"github.com/mvp-joe/srcnav/internal/source"
)

// Config represents the complete srcnav configuration.
type Config struct {
	Package   PackageConfig   `yaml:"package" mapstructure:"package"`
	Listing   ListingConfig   `yaml:"listing" mapstructure:"listing"`
	Redaction RedactionConfig `yaml:"redaction" mapstructure:"redaction"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PackageConfig controls package root resolution.
type PackageConfig struct {
	DefaultName string `yaml:"default_name" mapstructure:"default_name"` // package used when a request names none
	RootEnv     string `yaml:"root_env" mapstructure:"root_env"`         // environment variable overriding the root
	Root        string `yaml:"root" mapstructure:"root"`                 // explicit root, consulted after RootEnv
}

// ListingConfig controls directory enumeration.
type ListingConfig struct {
	MaxDepth         int      `yaml:"max_depth" mapstructure:"max_depth"`
	Exclude          []string `yaml:"exclude" mapstructure:"exclude"` // extra globs, package-relative
	RespectGitignore bool     `yaml:"respect_gitignore" mapstructure:"respect_gitignore"`
}

// RedactionConfig controls when and how function bodies are collapsed.
type RedactionConfig struct {
	LineThreshold  int      `yaml:"line_threshold" mapstructure:"line_threshold"`
	Placeholder    string   `yaml:"placeholder" mapstructure:"placeholder"`
	ScriptPatterns []string `yaml:"script_patterns" mapstructure:"script_patterns"` // matched against file names
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Transport string `yaml:"transport" mapstructure:"transport"` // "stdio" or "http"
	Addr      string `yaml:"addr" mapstructure:"addr"`           // listen address for http
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Package: PackageConfig{
			DefaultName: source.DefaultPackageName,
			RootEnv:     source.DefaultRootEnvVar,
		},
		Listing: ListingConfig{
			MaxDepth: source.DefaultMaxDepth,
			Exclude:  []string{},
		},
		Redaction: RedactionConfig{
			LineThreshold:  navigator.DefaultLineThreshold,
			Placeholder:    catalog.Placeholder,
			ScriptPatterns: []string{navigator.DefaultScriptPattern},
		},
		Server: ServerConfig{
			Name:      "srcnav",
			Transport: TransportStdio,
			Addr:      ":3000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = mcp.TransportStdio
	TransportHTTP  = mcp.TransportHTTP
)

// ToNavigatorOptions converts a Config to navigator.Options.
func (c *Config) ToNavigatorOptions() navigator.Options {
	return navigator.Options{
		DefaultPackage: c.Package.DefaultName,
		RootEnvVar:     c.Package.RootEnv,
		RootOverride:   c.Package.Root,
		Listing: source.ListOptions{
			MaxDepth:         c.Listing.MaxDepth,
			Exclude:          c.Listing.Exclude,
			RespectGitignore: c.Listing.RespectGitignore,
		},
		LineThreshold:  c.Redaction.LineThreshold,
		Placeholder:    c.Redaction.Placeholder,
		ScriptPatterns: c.Redaction.ScriptPatterns,
	}
}

// ToServerConfig converts a Config to mcp.ServerConfig.
func (c *Config) ToServerConfig(version string) *mcp.ServerConfig {
	return &mcp.ServerConfig{
		Name:      c.Server.Name,
		Version:   version,
		Transport: strings.ToLower(c.Server.Transport),
		Addr:      c.Server.Addr,
		Tools: mcp.ToolOptions{
			DefaultPackage: c.Package.DefaultName,
			LineThreshold:  c.Redaction.LineThreshold,
			Placeholder:    c.Redaction.Placeholder,
		},
	}
}
