package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternSet(t *testing.T) {
	t.Parallel()

	ps, err := CompilePatterns([]string{"*.{ts,tsx}", "**/*.snap", "coverage"})
	require.NoError(t, err)
	assert.Equal(t, 3, ps.Len())

	assert.True(t, ps.MatchBase("Button/index.tsx"))
	assert.False(t, ps.MatchBase("Button/style.scss"))
	assert.True(t, ps.Match("Button/__snapshots__/a.snap"))
	assert.False(t, ps.Match("Button/index.tsx"), "'*' stays within one segment")
	assert.True(t, ps.MatchDir("coverage"))

	var empty *PatternSet
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Match("anything"))

	_, err = CompilePatterns([]string{"[unclosed"})
	assert.Error(t, err)
}
