// Package navigator implements the three source navigation operations:
// listing a component's files, reading a file (redacted when long), and
// extracting a single function.
//
// Every call resolves the package, reads the file and rebuilds the function
// catalog from scratch. A Navigator holds configuration only and is safe for
// concurrent use.
package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/srcnav/internal/catalog"
	"github.com/mvp-joe/srcnav/internal/source"
)

const (
	// DefaultLineThreshold is the line count at which script files are redacted.
	DefaultLineThreshold = 500

	// DefaultScriptPattern selects files eligible for redaction.
	DefaultScriptPattern = "*.{ts,tsx,js,jsx}"
)

// Options configures a Navigator. Zero values fall back to defaults.
type Options struct {
	DefaultPackage string
	RootEnvVar     string
	RootOverride   string

	Listing source.ListOptions

	LineThreshold  int
	Placeholder    string
	ScriptPatterns []string

	Logger *slog.Logger
}

// FileList is the result of ListFiles.
type FileList struct {
	Component string
	Package   string
	// Files holds virtual paths in enumeration order.
	Files []string
	Stats ExtensionStats
}

// FileView is the result of GetFile.
type FileView struct {
	VirtualPath string
	// Lines and Chars describe the file as stored, not the returned content.
	Lines int
	Chars int
	// Redacted is set when function bodies were collapsed.
	Redacted    bool
	Placeholder string
	Content     string
}

// FunctionView is the result of GetFunction.
type FunctionView struct {
	VirtualPath string
	Name        string
	Code        string
}

// Navigator answers navigation requests against packages on disk.
type Navigator struct {
	resolver      *source.Resolver
	lister        *source.Lister
	scripts       *source.PatternSet
	lineThreshold int
	placeholder   string
	logger        *slog.Logger
}

// New validates options and creates a Navigator.
func New(opts Options) (*Navigator, error) {
	lister, err := source.NewLister(opts.Listing)
	if err != nil {
		return nil, fmt.Errorf("failed to configure listing: %w", err)
	}

	patterns := opts.ScriptPatterns
	if len(patterns) == 0 {
		patterns = []string{DefaultScriptPattern}
	}
	scripts, err := source.CompilePatterns(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile script patterns: %w", err)
	}

	threshold := opts.LineThreshold
	if threshold <= 0 {
		threshold = DefaultLineThreshold
	}
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = catalog.Placeholder
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Navigator{
		resolver:      source.NewResolver(opts.DefaultPackage, opts.RootEnvVar, opts.RootOverride),
		lister:        lister,
		scripts:       scripts,
		lineThreshold: threshold,
		placeholder:   placeholder,
		logger:        logger,
	}, nil
}

// ListFiles lists every file of component inside the package named
// packageName, or the default package when packageName is empty.
func (n *Navigator) ListFiles(ctx context.Context, component, packageName string) (*FileList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return nil, fmt.Errorf("%w: component name is required", ErrInvalidArgument)
	}

	pkg, err := n.resolver.Resolve(packageName)
	if err != nil {
		return nil, err
	}
	n.logger.Debug("package resolved", "package", pkg.Name, "root", pkg.Root)

	entries := n.lister.ComponentFiles(pkg, component)
	if len(entries) == 0 {
		suggestions, err := n.lister.TopLevelDirectories(pkg.Root)
		if err != nil {
			n.logger.Warn("failed to list component directories", "root", pkg.Root, "error", err)
		}
		return nil, &ComponentNotFoundError{
			Component:   component,
			Package:     pkg.Name,
			Suggestions: suggestions,
		}
	}

	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.VirtualPath
	}

	return &FileList{
		Component: component,
		Package:   pkg.Name,
		Files:     files,
		Stats:     CountExtensions(files),
	}, nil
}

// GetFile reads the file at virtualPath. Script files of at least the line
// threshold have their function bodies collapsed unless fullBody is set.
func (n *Navigator) GetFile(ctx context.Context, virtualPath string, fullBody bool) (*FileView, error) {
	pkg, rel, content, err := n.read(ctx, virtualPath)
	if err != nil {
		return nil, err
	}

	view := &FileView{
		VirtualPath: virtualPath,
		Lines:       CountLines(content),
		Chars:       utf8.RuneCountInString(content),
		Content:     content,
	}

	if !fullBody && view.Lines >= n.lineThreshold && n.scripts.MatchBase(rel) {
		records := catalog.Build(content, rel)
		redacted := catalog.RedactWith(content, records, n.placeholder)
		// A degraded parse or only short bodies leave the text as is.
		if redacted != content {
			view.Content = redacted
			view.Redacted = true
			view.Placeholder = n.placeholder
		}
		n.logger.Debug("file redaction",
			"package", pkg,
			"path", rel,
			"functions", len(records),
			"redacted", view.Redacted,
			"bytes_in", len(content),
			"bytes_out", len(view.Content))
	}

	return view, nil
}

// GetFunction returns the full source of the first function named name.
func (n *Navigator) GetFunction(ctx context.Context, virtualPath, name string) (*FunctionView, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: function name is required", ErrInvalidArgument)
	}

	_, rel, content, err := n.read(ctx, virtualPath)
	if err != nil {
		return nil, err
	}

	records := catalog.Build(content, rel)
	code, ok := catalog.Extract(content, records, name)
	if !ok {
		return nil, &FunctionNotFoundError{
			Name:        name,
			VirtualPath: virtualPath,
			Available:   catalog.Names(records),
		}
	}

	return &FunctionView{VirtualPath: virtualPath, Name: name, Code: code}, nil
}

// read resolves virtualPath and returns the package name, the path relative
// to its root and the file content.
func (n *Navigator) read(ctx context.Context, virtualPath string) (string, string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", "", err
	}

	pkgName, rel, err := source.ParseVirtualPath(virtualPath)
	if err != nil {
		return "", "", "", err
	}

	pkg, err := n.resolver.Resolve(pkgName)
	if err != nil {
		return "", "", "", err
	}

	content, err := source.ReadFile(pkg.Root, rel)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to read %s: %w", virtualPath, err)
	}

	return pkgName, rel, content, nil
}

// CountLines counts newline-separated lines; an empty file has one line.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}
