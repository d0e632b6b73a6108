package source

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultPackageName is the package resolved when callers pass no name.
	DefaultPackageName = "@my-design/react"

	// DefaultRootEnvVar names the environment variable that overrides the package root.
	DefaultRootEnvVar = "SRCNAV_PACKAGE_ROOT"

	manifestName = "package.json"
	modulesDir   = "node_modules"
)

// SourcePackage is a resolved package on disk.
type SourcePackage struct {
	// Root is absolute and symlink-resolved.
	Root string
	// Name is the package identity used in virtual paths (e.g. "@my-design/react").
	Name string
}

// Resolver locates package roots. It holds configuration only; every call
// resolves from scratch.
type Resolver struct {
	// DefaultName is used when Resolve is called with an empty name.
	DefaultName string
	// EnvVar is the override variable consulted first.
	EnvVar string
	// Override is an explicitly configured root, consulted after EnvVar.
	Override string

	getenv     func(string) string
	getwd      func() (string, error)
	installDir func() (string, error)
}

// NewResolver creates a resolver backed by the process environment.
func NewResolver(defaultName, envVar, override string) *Resolver {
	if defaultName == "" {
		defaultName = DefaultPackageName
	}
	if envVar == "" {
		envVar = DefaultRootEnvVar
	}
	return &Resolver{
		DefaultName: defaultName,
		EnvVar:      envVar,
		Override:    override,
		getenv:      os.Getenv,
		getwd:       os.Getwd,
		installDir:  executableDir,
	}
}

// Resolve returns the package root for name.
//
// Order, first success wins:
//  1. the override variable (then the configured override), if the directory exists
//  2. module resolution of <name>/package.json from the working directory and
//     from the install directory, walking up through node_modules folders
//  3. <cwd>/node_modules/<name>, then <project>/node_modules/<name> where
//     project is the nearest ancestor of the install directory with a package.json
func (r *Resolver) Resolve(name string) (*SourcePackage, error) {
	if name == "" {
		name = r.DefaultName
	}

	var tried []string

	for _, override := range []string{r.getenv(r.EnvVar), r.Override} {
		if override == "" {
			continue
		}
		if isDir(override) {
			if root, err := canonicalize(override); err == nil {
				return newSourcePackage(root), nil
			}
		}
		tried = append(tried, override)
	}

	cwd, cwdErr := r.getwd()
	installDir, installErr := r.installDir()

	var bases []string
	if cwdErr == nil {
		bases = append(bases, cwd)
	}
	if installErr == nil {
		bases = append(bases, installDir)
	}

	for _, base := range bases {
		manifest, attempts := resolveManifest(base, name)
		tried = append(tried, attempts...)
		if manifest == "" {
			continue
		}
		if root, err := canonicalize(filepath.Dir(manifest)); err == nil {
			return newSourcePackage(root), nil
		}
	}

	var fallbacks []string
	if cwdErr == nil {
		fallbacks = append(fallbacks, filepath.Join(cwd, modulesDir, filepath.FromSlash(name)))
	}
	if installErr == nil {
		if project := findProjectRoot(installDir); project != "" {
			fallbacks = append(fallbacks, filepath.Join(project, modulesDir, filepath.FromSlash(name)))
		}
	}

	for _, candidate := range fallbacks {
		if pathExists(candidate) {
			if root, err := canonicalize(candidate); err == nil {
				return newSourcePackage(root), nil
			}
		}
		tried = append(tried, candidate)
	}

	return nil, &PackageNotFoundError{
		Name:       name,
		Candidates: dedupe(tried),
		EnvVar:     r.EnvVar,
	}
}

// resolveManifest mirrors node's lookup of "<name>/package.json": every
// node_modules directory from base up to the filesystem root is tried.
// It returns the manifest path (or "") and every path attempted.
func resolveManifest(base, name string) (string, []string) {
	var attempts []string
	dir := filepath.Clean(base)
	for {
		if filepath.Base(dir) != modulesDir {
			candidate := filepath.Join(dir, modulesDir, filepath.FromSlash(name), manifestName)
			attempts = append(attempts, candidate)
			if isFile(candidate) {
				return candidate, attempts
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", attempts
		}
		dir = parent
	}
}

// findProjectRoot walks upward from startDir to the first directory holding a package.json.
func findProjectRoot(startDir string) string {
	cursor := filepath.Clean(startDir)
	for {
		if pathExists(filepath.Join(cursor, manifestName)) {
			return cursor
		}
		parent := filepath.Dir(cursor)
		if parent == cursor {
			return ""
		}
		cursor = parent
	}
}

// PackageNameFromRoot derives the package identity from the last one or two
// segments of root: ".../@scope/pkg" gives "@scope/pkg", ".../pkg" gives "pkg".
func PackageNameFromRoot(root string) string {
	parts := strings.Split(filepath.ToSlash(root), "/")
	n := len(parts)
	if n >= 2 && strings.HasPrefix(parts[n-2], "@") {
		return parts[n-2] + "/" + parts[n-1]
	}
	return parts[n-1]
}

func newSourcePackage(root string) *SourcePackage {
	return &SourcePackage{Root: root, Name: PackageNameFromRoot(root)}
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
