package source

import (
	"fmt"
	"strings"
)

// VirtualPath joins a package identity and a slash-separated relative path.
func VirtualPath(packageName, relativePath string) string {
	return packageName + "/" + relativePath
}

// ParseVirtualPath splits "@scope/pkg/rel/path" or "pkg/rel/path" into the
// package identity and the path relative to its root.
func ParseVirtualPath(vpath string) (packageName, relativePath string, err error) {
	parts := strings.Split(vpath, "/")

	n := 1
	if strings.HasPrefix(parts[0], "@") {
		n = 2
	}
	if len(parts) <= n {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidVirtualPath, vpath)
	}
	for _, p := range parts[:n] {
		if p == "" || p == "@" {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidVirtualPath, vpath)
		}
	}

	relativePath = strings.Join(parts[n:], "/")
	if relativePath == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidVirtualPath, vpath)
	}

	return strings.Join(parts[:n], "/"), relativePath, nil
}
