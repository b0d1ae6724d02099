package globber_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/globber"
)

func TestEnsureDirectory(t *testing.T) {
	fx := fixtureTree(t)

	assert.NoError(t, globber.EnsureDirectory(nil, fx))

	err := globber.EnsureDirectory(nil, filepath.Join(fx, "missing"))
	assert.True(t, globber.IsKind(err, globber.KindFileNotFound))

	err = globber.EnsureDirectory(nil, filepath.Join(fx, "cake.txt"))
	assert.True(t, globber.IsKind(err, globber.KindPathNotDirectory))
}

func TestReadPatternsFile(t *testing.T) {
	fx := fixtureTree(t)
	file := filepath.Join(fx, "patterns.txt")
	require.NoError(t, os.WriteFile(file, []byte("*.txt\n\n# comment\n!cake.txt\n"), 0o644))

	patterns, err := globber.ReadPatternsFile(nil, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.txt", "!cake.txt"}, patterns)
}

func TestReadPatternsFileMissing(t *testing.T) {
	fx := fixtureTree(t)

	_, err := globber.ReadPatternsFile(nil, filepath.Join(fx, "nope.txt"))
	assert.True(t, globber.IsKind(err, globber.KindFileNotFound))
}

func TestReadPatternsFileDirectory(t *testing.T) {
	fx := fixtureTree(t)

	_, err := globber.ReadPatternsFile(nil, filepath.Join(fx, "nested"))
	assert.True(t, globber.IsKind(err, globber.KindFileUnreadable))
}

func TestReadPatternsFileEmptyIsFine(t *testing.T) {
	fx := fixtureTree(t)
	file := filepath.Join(fx, "empty.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	patterns, err := globber.ReadPatternsFile(nil, file)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}
