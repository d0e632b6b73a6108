package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/srcnav/internal/logging"
)

var (
	// ErrEmptyPackageName indicates a missing default package name
	ErrEmptyPackageName = errors.New("empty package name")

	// ErrInvalidDepth indicates a non-positive listing depth
	ErrInvalidDepth = errors.New("invalid max depth")

	// ErrInvalidPattern indicates a glob that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidThreshold indicates a non-positive redaction threshold
	ErrInvalidThreshold = errors.New("invalid line threshold")

	// ErrEmptyPlaceholder indicates a missing redaction placeholder
	ErrEmptyPlaceholder = errors.New("empty placeholder")

	// ErrInvalidTransport indicates an unsupported server transport
	ErrInvalidTransport = errors.New("invalid transport")

	// ErrEmptyAddr indicates a missing http listen address
	ErrEmptyAddr = errors.New("empty listen address")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks that the configuration is valid and complete. Every
// problem is reported, not just the first.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validatePackage(&cfg.Package)...)
	errs = append(errs, validateListing(&cfg.Listing)...)
	errs = append(errs, validateRedaction(&cfg.Redaction)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateLog(&cfg.Log)...)

	return joinErrors(errs)
}

func validatePackage(cfg *PackageConfig) []error {
	var errs []error
	if strings.TrimSpace(cfg.DefaultName) == "" {
		errs = append(errs, fmt.Errorf("%w: package.default_name is required", ErrEmptyPackageName))
	}
	// An empty root_env falls back to the built-in variable name.
	return errs
}

func validateListing(cfg *ListingConfig) []error {
	var errs []error
	if cfg.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidDepth, cfg.MaxDepth))
	}
	errs = append(errs, validatePatterns("listing.exclude", cfg.Exclude)...)
	return errs
}

func validateRedaction(cfg *RedactionConfig) []error {
	var errs []error
	if cfg.LineThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: line_threshold must be positive, got %d", ErrInvalidThreshold, cfg.LineThreshold))
	}
	if cfg.Placeholder == "" {
		errs = append(errs, fmt.Errorf("%w: redaction.placeholder is required", ErrEmptyPlaceholder))
	}
	errs = append(errs, validatePatterns("redaction.script_patterns", cfg.ScriptPatterns)...)
	return errs
}

func validateServer(cfg *ServerConfig) []error {
	var errs []error
	switch strings.ToLower(cfg.Transport) {
	case TransportStdio:
	case TransportHTTP:
		if strings.TrimSpace(cfg.Addr) == "" {
			errs = append(errs, fmt.Errorf("%w: server.addr is required for http", ErrEmptyAddr))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidTransport, TransportStdio, TransportHTTP, cfg.Transport))
	}
	return errs
}

func validateLog(cfg *LogConfig) []error {
	var errs []error
	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidLogLevel, err))
	}
	if _, err := logging.ParseFormat(cfg.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidLogFormat, err))
	}
	return errs
}

func validatePatterns(key string, patterns []string) []error {
	var errs []error
	for _, p := range patterns {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s entry %q: %v", ErrInvalidPattern, key, p, err))
		}
	}
	return errs
}

// validationErrors keeps every wrapped error reachable by errors.Is.
type validationErrors []error

func (e validationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e validationErrors) Unwrap() []error {
	return e
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return validationErrors(errs)
}
