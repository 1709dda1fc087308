package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRepoRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	return root
}

func TestGetParentDefaults(t *testing.T) {
	root := newRepoRoot(t)

	parent, err := GetParent(root)
	require.NoError(t, err)
	require.Equal(t, "master", parent)
}

func TestSetParentRoundTrip(t *testing.T) {
	root := newRepoRoot(t)

	require.NoError(t, SetParent(root, "develop"))

	parent, err := GetParent(root)
	require.NoError(t, err)
	require.Equal(t, "develop", parent)
}

func TestGetRepoConfigRejectsGarbage(t *testing.T) {
	root := newRepoRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".devpr_config"), []byte("not json"), 0o644))

	_, err := GetRepoConfig(root)
	require.Error(t, err)
}
