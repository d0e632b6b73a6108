package cli

// Test Plan for CLI commands:
// - files lists a component's virtual paths using the configured package root
// - files renders directory suggestions for an unknown component
// - file collapses bodies past the threshold and --full disables it
// - function prints one function or the names that exist
// - an explicit --config that does not exist fails
// - version prints the build information
//
// Commands share package-level flag state, so these tests do not run in parallel.

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/srcnav/internal/navigator"
)

// newFixture lays out @acme/ui with two components and writes a config
// pointing at it. It returns the config file path.
func newFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "@acme", "ui")

	var long strings.Builder
	long.WriteString("export function renderRows(rows) {\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&long, "  rows.push(%d);\n", i)
	}
	long.WriteString("  return rows;\n}\n")

	files := map[string]string{
		"package.json":       `{"name":"@acme/ui"}`,
		"Button/index.tsx":   "export const Button = () => {\n  return null;\n};\n",
		"Table/Table.tsx":    long.String(),
		"Table/style.scss":   ".table { margin: 0; }\n",
		"dist/bundle.min.js": "module.exports = {};\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgPath := filepath.Join(dir, "srcnav.yml")
	cfg := fmt.Sprintf(`package:
  default_name: "@acme/ui"
  root_env: SRCNAV_CLI_TEST_ROOT_NEVER_SET
  root: %q
redaction:
  line_threshold: 10
log:
  level: error
`, root)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

// run executes the root command and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, verbose, logLevel = "", false, ""
	filesPackage, fileFull = "", false
	mcpTransport, mcpAddr = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestFilesCommand(t *testing.T) {
	cfgPath := newFixture(t)

	out, err := run(t, "files", "table", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Component: table")
	assert.Contains(t, out, "Package: @acme/ui")
	assert.Contains(t, out, "@acme/ui/Table/Table.tsx\n@acme/ui/Table/style.scss")
}

func TestFilesCommand_UnknownComponent(t *testing.T) {
	cfgPath := newFixture(t)

	_, err := run(t, "files", "Tabel", "--config", cfgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, navigator.ErrComponentNotFound)
	assert.Contains(t, err.Error(), "Available component directories:\n  - Button\n  - Table")
	assert.NotContains(t, err.Error(), "dist")
}

func TestFileCommand(t *testing.T) {
	cfgPath := newFixture(t)

	out, err := run(t, "file", "@acme/ui/Table/Table.tsx", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Processing:")
	assert.Contains(t, out, "export function renderRows(rows) { ... }")

	out, err = run(t, "file", "@acme/ui/Table/Table.tsx", "--full", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Processing:")
	assert.Contains(t, out, "rows.push(11);")
}

func TestFunctionCommand(t *testing.T) {
	cfgPath := newFixture(t)

	out, err := run(t, "function", "@acme/ui/Button/index.tsx", "Button", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Function: Button")
	assert.Contains(t, out, "() => {\n  return null;\n}")

	_, err = run(t, "function", "@acme/ui/Button/index.tsx", "Missing", "--config", cfgPath)
	require.Error(t, err)
	var notFound *navigator.FunctionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"Button"}, notFound.Available)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "files", "Button", "--config", filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "srcnav dev\nGit commit: none\nBuild date: unknown\n", out)
}
