package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/srcnav/internal/config"
	"github.com/mvp-joe/srcnav/internal/logging"
	"github.com/mvp-joe/srcnav/internal/navigator"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srcnav",
	Short: "srcnav - browse a component library's source",
	Long: `srcnav serves read-only navigation over an installed component library:
list a component's files, read a file with long function bodies collapsed,
or pull out a single function by name.

Run "srcnav mcp" to expose the same operations to coding assistants over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .srcnav/config.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// loadConfig reads --config when given, otherwise the working directory's config.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger. --verbose beats --log-level, which beats the config.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		if level, err = logging.ParseLevel(logLevel); err != nil {
			return nil, err
		}
	}
	if verbose {
		level = slog.LevelDebug
	}

	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, level, format), nil
}

// setup loads configuration and wires a navigator for a command run.
func setup() (*config.Config, *slog.Logger, *navigator.Navigator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := cfg.ToNavigatorOptions()
	opts.Logger = logger
	nav, err := navigator.New(opts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create navigator: %w", err)
	}
	return cfg, logger, nav, nil
}

// navigationError prints like navigator.ErrorText and still unwraps to the cause.
type navigationError struct {
	err error
}

func (e *navigationError) Error() string { return navigator.ErrorText(e.err) }

func (e *navigationError) Unwrap() error { return e.err }

func renderError(err error) error {
	var componentErr *navigator.ComponentNotFoundError
	var functionErr *navigator.FunctionNotFoundError
	if errors.As(err, &componentErr) || errors.As(err, &functionErr) {
		return &navigationError{err: err}
	}
	return err
}
