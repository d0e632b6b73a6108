package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BinaryProbeBytes is how many leading bytes are inspected for NUL bytes.
const BinaryProbeBytes = 8192

// ReadFile reads relativePath inside root with path-traversal protection and
// binary detection.
//
// The root is canonicalized (absolute, symlinks resolved) before relativePath is
// resolved against it. The result must be root itself or a strict descendant.
// A symlink inside root that points outside of it is rejected the same way.
func ReadFile(root, relativePath string) (string, error) {
	realRoot, err := canonicalize(root)
	if err != nil {
		return "", fmt.Errorf("%w: package root %s", ErrFileNotFound, root)
	}

	absPath := resolveAgainst(realRoot, relativePath)
	if !isWithin(realRoot, absPath) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, relativePath)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, relativePath)
		}
		return "", fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrFileNotFound, relativePath)
	}

	target, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", relativePath, err)
	}
	if !isWithin(realRoot, target) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, relativePath)
	}

	if err := probeBinary(target, relativePath); err != nil {
		return "", err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relativePath, err)
	}

	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

// probeBinary fails with ErrBinaryFile if the first BinaryProbeBytes of the
// file contain a 0x00 byte.
func probeBinary(absPath, relativePath string) error {
	f, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", relativePath, err)
	}
	defer f.Close()

	buf := make([]byte, BinaryProbeBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read %s: %w", relativePath, err)
	}

	if bytes.IndexByte(buf[:n], 0x00) >= 0 {
		return fmt.Errorf("%w: %s", ErrBinaryFile, relativePath)
	}
	return nil
}

// canonicalize returns the absolute, symlink-resolved form of dir.
func canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveAgainst resolves p against root. Absolute inputs replace root.
func resolveAgainst(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// isWithin reports whether p is root or a strict descendant of it.
func isWithin(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(p, prefix)
}
