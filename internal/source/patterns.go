package source

import (
	"fmt"
	"path"

	"github.com/gobwas/glob"
)

// PatternSet matches slash-separated paths against a list of globs.
type PatternSet struct {
	globs []glob.Glob
}

// CompilePatterns compiles globs with '/' as the separator, so '*' stays
// within one path segment and '**' crosses segments.
func CompilePatterns(patterns []string) (*PatternSet, error) {
	ps := &PatternSet{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		ps.globs = append(ps.globs, g)
	}
	return ps, nil
}

// Len returns the number of patterns in the set.
func (ps *PatternSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.globs)
}

// Match reports whether p matches any pattern.
func (ps *PatternSet) Match(p string) bool {
	if ps == nil {
		return false
	}
	for _, g := range ps.globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// MatchDir reports whether directory p, or anything below it, is covered by a
// pattern. "node_modules" matches "node_modules/**".
func (ps *PatternSet) MatchDir(p string) bool {
	return ps.Match(p) || ps.Match(p+"/**")
}

// MatchBase matches only the final element of p.
func (ps *PatternSet) MatchBase(p string) bool {
	return ps.Match(path.Base(p))
}
