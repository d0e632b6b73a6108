package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/srcnav/internal/catalog"
	"github.com/mvp-joe/srcnav/internal/source"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .srcnav/config.yml and merges with defaults
// - Environment variables override config file values and defaults
// - An explicit config file must exist
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects each invalid field and reports all of them together
// - ToNavigatorOptions() carries every navigation setting
// - ToServerConfig() normalizes the transport and carries tool descriptions

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	srcnavDir := filepath.Join(dir, ".srcnav")
	require.NoError(t, os.MkdirAll(srcnavDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcnavDir, "config.yml"), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, source.DefaultPackageName, cfg.Package.DefaultName)
	assert.Equal(t, source.DefaultRootEnvVar, cfg.Package.RootEnv)
	assert.Empty(t, cfg.Package.Root)

	assert.Equal(t, 10, cfg.Listing.MaxDepth)
	assert.Empty(t, cfg.Listing.Exclude)
	assert.False(t, cfg.Listing.RespectGitignore)

	assert.Equal(t, 500, cfg.Redaction.LineThreshold)
	assert.Equal(t, catalog.Placeholder, cfg.Redaction.Placeholder)
	assert.Equal(t, []string{"*.{ts,tsx,js,jsx}"}, cfg.Redaction.ScriptPatterns)

	assert.Equal(t, "srcnav", cfg.Server.Name)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, ":3000", cfg.Server.Addr)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("SRCNAV_PACKAGE_ROOT", "")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Package, cfg.Package)
	assert.Equal(t, defaults.Redaction, cfg.Redaction)
	assert.Equal(t, defaults.Server, cfg.Server)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("SRCNAV_PACKAGE_ROOT", "")

	tempDir := t.TempDir()
	writeConfig(t, tempDir, `
package:
  default_name: "@acme/ui"
listing:
  exclude:
    - "**/*.stories.tsx"
  respect_gitignore: true
redaction:
  line_threshold: 200
server:
  transport: http
  addr: "127.0.0.1:8080"
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "@acme/ui", cfg.Package.DefaultName)
	assert.Equal(t, []string{"**/*.stories.tsx"}, cfg.Listing.Exclude)
	assert.True(t, cfg.Listing.RespectGitignore)
	assert.Equal(t, 200, cfg.Redaction.LineThreshold)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)

	// Not in the file, so defaults remain
	assert.Equal(t, source.DefaultRootEnvVar, cfg.Package.RootEnv)
	assert.Equal(t, 10, cfg.Listing.MaxDepth)
	assert.Equal(t, catalog.Placeholder, cfg.Redaction.Placeholder)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, `
redaction:
  line_threshold: 200
log:
  level: warn
`)

	t.Setenv("SRCNAV_REDACTION_LINE_THRESHOLD", "50")
	t.Setenv("SRCNAV_LOG_FORMAT", "json")
	t.Setenv("SRCNAV_PACKAGE_ROOT", "/opt/pkg")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Redaction.LineThreshold)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/opt/pkg", cfg.Package.Root)

	// Not overridden, should come from config file
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("SRCNAV_PACKAGE_ROOT", "")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  name: custom\n"), 0644))

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Server.Name)

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.yml")).Load()
	assert.Error(t, err)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, `
redaction:
  placeholder: "unclosed quote
  line_threshold: not-a-number
`)

	cfg, err := NewLoader(tempDir).Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, `
server:
  transport: grpc
`)

	cfg, err := NewLoader(tempDir).Load()
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrInvalidTransport)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty package name", func(c *Config) { c.Package.DefaultName = " " }, ErrEmptyPackageName},
		{"zero depth", func(c *Config) { c.Listing.MaxDepth = 0 }, ErrInvalidDepth},
		{"bad exclude glob", func(c *Config) { c.Listing.Exclude = []string{"[unclosed"} }, ErrInvalidPattern},
		{"negative threshold", func(c *Config) { c.Redaction.LineThreshold = -1 }, ErrInvalidThreshold},
		{"empty placeholder", func(c *Config) { c.Redaction.Placeholder = "" }, ErrEmptyPlaceholder},
		{"bad script glob", func(c *Config) { c.Redaction.ScriptPatterns = []string{"[unclosed"} }, ErrInvalidPattern},
		{"unknown transport", func(c *Config) { c.Server.Transport = "grpc" }, ErrInvalidTransport},
		{"http without addr", func(c *Config) { c.Server.Transport = TransportHTTP; c.Server.Addr = "" }, ErrEmptyAddr},
		{"unknown level", func(c *Config) { c.Log.Level = "chatty" }, ErrInvalidLogLevel},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Listing.MaxDepth = -1
	cfg.Redaction.Placeholder = ""
	cfg.Server.Transport = "smoke-signals"

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDepth)
	assert.ErrorIs(t, err, ErrEmptyPlaceholder)
	assert.ErrorIs(t, err, ErrInvalidTransport)
	assert.Contains(t, err.Error(), "validation failed:")
}

func TestToNavigatorOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Package.Root = "/srv/pkg"
	cfg.Listing.Exclude = []string{"**/*.snap"}
	cfg.Redaction.LineThreshold = 42

	opts := cfg.ToNavigatorOptions()
	assert.Equal(t, source.DefaultPackageName, opts.DefaultPackage)
	assert.Equal(t, source.DefaultRootEnvVar, opts.RootEnvVar)
	assert.Equal(t, "/srv/pkg", opts.RootOverride)
	assert.Equal(t, []string{"**/*.snap"}, opts.Listing.Exclude)
	assert.Equal(t, 10, opts.Listing.MaxDepth)
	assert.Equal(t, 42, opts.LineThreshold)
	assert.Equal(t, catalog.Placeholder, opts.Placeholder)
	assert.Equal(t, []string{"*.{ts,tsx,js,jsx}"}, opts.ScriptPatterns)
}

func TestToServerConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Server.Transport = "HTTP"
	cfg.Server.Addr = "127.0.0.1:8080"

	server := cfg.ToServerConfig("1.2.3")
	assert.Equal(t, "srcnav", server.Name)
	assert.Equal(t, "1.2.3", server.Version)
	assert.Equal(t, TransportHTTP, server.Transport)
	assert.Equal(t, "127.0.0.1:8080", server.Addr)
	assert.Equal(t, source.DefaultPackageName, server.Tools.DefaultPackage)
	assert.Equal(t, 500, server.Tools.LineThreshold)
	assert.Equal(t, catalog.Placeholder, server.Tools.Placeholder)
}
