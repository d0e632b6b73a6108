package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultMaxDepth bounds recursion in ListFilesRecursive.
const DefaultMaxDepth = 10

// excludePathSegments are matched as substrings of the slash-normalized path,
// not as exact segments. A directory is tested with a trailing slash.
var excludePathSegments = []string{
	"/node_modules/",
	"/dist/",
	"/lib/",
	"/es/",
	"/cjs/",
	"/__test__/",
	"/__tests__/",
	"/_story/",
	"/_stories/",
	"/.git/",
}

var excludeTopLevelDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	"lib":          {},
	"es":           {},
	"cjs":          {},
}

// componentDirCandidates are searched in priority order; the first one
// holding a matching directory wins.
var componentDirCandidates = []string{
	"",
	"components",
	"src",
	filepath.Join("src", "components"),
}

// bareRootMinDirs is the number of directories the bare package root must
// exceed before ListTopLevelDirectories accepts it over a deeper layout.
const bareRootMinDirs = 3

// FileEntry is one enumerated file.
type FileEntry struct {
	AbsPath string
	// VirtualPath is "<packageName>/<relativePath>" with forward slashes.
	VirtualPath string
}

// ListOptions configures a Lister.
type ListOptions struct {
	// MaxDepth stops recursion once depth exceeds it. Zero means DefaultMaxDepth.
	MaxDepth int
	// Exclude holds extra globs matched against package-relative paths.
	Exclude []string
	// RespectGitignore applies the package root's .gitignore, if any.
	RespectGitignore bool
}

// Lister enumerates package directories.
type Lister struct {
	maxDepth         int
	exclude          *PatternSet
	respectGitignore bool
}

// NewLister creates a Lister from options.
func NewLister(opts ListOptions) (*Lister, error) {
	exclude, err := CompilePatterns(opts.Exclude)
	if err != nil {
		return nil, err
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Lister{
		maxDepth:         maxDepth,
		exclude:          exclude,
		respectGitignore: opts.RespectGitignore,
	}, nil
}

// ListFilesRecursive lists files under dir depth-first using only the fixed
// exclusion list. Paths are tested relative to dir.
func ListFilesRecursive(dir string, depth int) []string {
	l := &Lister{maxDepth: DefaultMaxDepth}
	return l.filesRecursive(dir, dir, depth, nil)
}

// ComponentFiles lists every file of the component directory matching
// componentName case-insensitively. The first candidate parent directory that
// holds a match is used; matches under later candidates are not merged.
// An empty result means the component was not found.
func (l *Lister) ComponentFiles(pkg *SourcePackage, componentName string) []FileEntry {
	normalized := strings.ToLower(componentName)
	gi := l.gitignore(pkg.Root)

	for _, candidate := range componentDirCandidates {
		searchDir := filepath.Join(pkg.Root, candidate)

		entries, err := os.ReadDir(searchDir)
		if err != nil {
			continue
		}

		matched := ""
		for _, entry := range entries {
			if entry.IsDir() && strings.ToLower(entry.Name()) == normalized {
				matched = entry.Name()
				break
			}
		}
		if matched == "" {
			continue
		}

		componentDir := filepath.Join(searchDir, matched)
		absFiles := l.filesRecursive(pkg.Root, componentDir, 1, gi)

		files := make([]FileEntry, 0, len(absFiles))
		for _, abs := range absFiles {
			rel, err := filepath.Rel(pkg.Root, abs)
			if err != nil {
				continue
			}
			files = append(files, FileEntry{
				AbsPath:     abs,
				VirtualPath: VirtualPath(pkg.Name, filepath.ToSlash(rel)),
			})
		}
		return files
	}

	return nil
}

// TopLevelDirectories lists candidate component directories, sorted. The bare
// root is skipped when it yields bareRootMinDirs or fewer directories; if no
// candidate qualifies the plain root listing is returned.
func (l *Lister) TopLevelDirectories(root string) ([]string, error) {
	for _, candidate := range componentDirCandidates {
		dirs, err := listDirs(filepath.Join(root, candidate))
		if err != nil {
			continue
		}
		if candidate == "" && len(dirs) <= bareRootMinDirs {
			continue
		}
		return dirs, nil
	}

	dirs, err := listDirs(root)
	if err != nil {
		return nil, fmt.Errorf("package root is not readable: %s: %w", root, err)
	}
	return dirs, nil
}

// filesRecursive walks dir. base anchors the exclusion checks so that a
// package installed under node_modules does not exclude itself.
func (l *Lister) filesRecursive(base, dir string, depth int, gi *ignore.GitIgnore) []string {
	if depth > l.maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var results []string
	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			if !l.excluded(base, fullPath, true, gi) {
				results = append(results, l.filesRecursive(base, fullPath, depth+1, gi)...)
			}
		case entry.Type().IsRegular():
			if !l.excluded(base, fullPath, false, gi) {
				results = append(results, fullPath)
			}
		}
	}

	return results
}

func (l *Lister) excluded(base, fullPath string, isDir bool, gi *ignore.GitIgnore) bool {
	rel, err := filepath.Rel(base, fullPath)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)

	if ShouldExcludePath(rel, isDir) {
		return true
	}

	if l.exclude.Len() > 0 {
		if isDir && l.exclude.MatchDir(rel) {
			return true
		}
		if !isDir && l.exclude.Match(rel) {
			return true
		}
	}

	if gi != nil {
		if isDir {
			return gi.MatchesPath(rel + "/")
		}
		return gi.MatchesPath(rel)
	}

	return false
}

func (l *Lister) gitignore(root string) *ignore.GitIgnore {
	if !l.respectGitignore {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// ShouldExcludePath reports whether a slash-separated path relative to the
// walk base contains an excluded segment. Matching is by substring.
func ShouldExcludePath(rel string, isDir bool) bool {
	normalized := "/" + strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "/")
	if isDir {
		normalized += "/"
	}
	for _, segment := range excludePathSegments {
		if strings.Contains(normalized, segment) {
			return true
		}
	}
	return false
}

func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	dirs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, skip := excludeTopLevelDirs[entry.Name()]; skip {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	sort.Strings(dirs)
	return dirs, nil
}
