package navigator

import "strings"

// ExtensionStats counts listed files by extension. Declaration files are
// counted apart from plain .ts files.
type ExtensionStats struct {
	TS    int
	DTS   int
	TSX   int
	JS    int
	JSX   int
	SCSS  int
	CSS   int
	Other int
}

// CountExtensions tallies paths by extension.
func CountExtensions(paths []string) ExtensionStats {
	var s ExtensionStats
	for _, p := range paths {
		lower := strings.ToLower(p)
		switch {
		case strings.HasSuffix(lower, ".d.ts"):
			s.DTS++
		case strings.HasSuffix(lower, ".ts"):
			s.TS++
		case strings.HasSuffix(lower, ".tsx"):
			s.TSX++
		case strings.HasSuffix(lower, ".js"):
			s.JS++
		case strings.HasSuffix(lower, ".jsx"):
			s.JSX++
		case strings.HasSuffix(lower, ".scss"):
			s.SCSS++
		case strings.HasSuffix(lower, ".css"):
			s.CSS++
		default:
			s.Other++
		}
	}
	return s
}

// extensionCount is one non-zero row of ExtensionStats.
type extensionCount struct {
	Label string
	Count int
}

// rows returns the non-zero counts in display order.
func (s ExtensionStats) rows() []extensionCount {
	all := []extensionCount{
		{".ts", s.TS},
		{".d.ts", s.DTS},
		{".tsx", s.TSX},
		{".js", s.JS},
		{".jsx", s.JSX},
		{".scss", s.SCSS},
		{".css", s.CSS},
		{"other", s.Other},
	}
	out := all[:0]
	for _, row := range all {
		if row.Count > 0 {
			out = append(out, row)
		}
	}
	return out
}
