package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPackageNotFound indicates every package root candidate was exhausted.
	ErrPackageNotFound = errors.New("package not found")

	// ErrPathTraversal indicates a relative path resolved outside the package root.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrFileNotFound indicates the resolved path does not exist or is not a file.
	ErrFileNotFound = errors.New("file not found")

	// ErrBinaryFile indicates the file contains a NUL byte in its leading bytes.
	ErrBinaryFile = errors.New("binary file detected")

	// ErrInvalidVirtualPath indicates a virtual path without a package identity or relative part.
	ErrInvalidVirtualPath = errors.New("invalid virtual path")
)

// PackageNotFoundError reports every candidate root that was tried.
type PackageNotFoundError struct {
	Name       string
	Candidates []string
	EnvVar     string
}

func (e *PackageNotFoundError) Error() string {
	tried := "none"
	if len(e.Candidates) > 0 {
		tried = strings.Join(e.Candidates, ", ")
	}
	return fmt.Sprintf("package %q not found. Tried: %s. Set %s to override package root", e.Name, tried, e.EnvVar)
}

func (e *PackageNotFoundError) Unwrap() error {
	return ErrPackageNotFound
}
