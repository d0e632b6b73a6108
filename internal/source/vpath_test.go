package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVirtualPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vpath   string
		wantPkg string
		wantRel string
		wantErr bool
	}{
		{"scoped", "@my-design/react/Button/index.tsx", "@my-design/react", "Button/index.tsx", false},
		{"scoped nested", "@my-design/react/components/button/style/index.scss", "@my-design/react", "components/button/style/index.scss", false},
		{"unscoped", "left-pad/lib/index.js", "left-pad", "lib/index.js", false},
		{"scoped without file", "@my-design/react", "", "", true},
		{"unscoped without file", "left-pad", "", "", true},
		{"trailing slash", "left-pad/", "", "", true},
		{"empty", "", "", "", true},
		{"leading slash", "/etc/passwd", "", "", true},
		{"bare at", "@/react/index.js", "", "", true},
		{"traversal is kept for the reader to reject", "@acme/ui/../../etc/passwd", "@acme/ui", "../../etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, rel, err := ParseVirtualPath(tt.vpath)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidVirtualPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantRel, rel)
		})
	}
}

func TestVirtualPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@acme/ui/Button/index.tsx", VirtualPath("@acme/ui", "Button/index.tsx"))
}
