package chomp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chomp.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
output = "out/result.chomp"
debug = true
allow-empty = false
`), 0644))

	config, err := LoadProjectConfig(path)
	require.NoError(t, err)
	require.Equal(t, "out/result.chomp", config.Output)
	require.True(t, config.Debug)
	require.NotNil(t, config.AllowEmpty)
	require.False(t, *config.AllowEmpty)
	require.False(t, config.allowEmpty())
}

func TestAllowEmptyDefaultsOn(t *testing.T) {
	var config *ProjectConfig
	require.True(t, config.allowEmpty())
	require.True(t, (&ProjectConfig{}).allowEmpty())
}

func TestFindProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "chomp.toml"), []byte(`output = "o"`), 0644))

	path, config, err := FindProjectConfig(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "chomp.toml"), path)
	require.Equal(t, "o", config.Output)
}

func TestFindProjectConfigStopsAtRepoBoundary(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "chomp.toml"), []byte(`output = "o"`), 0644))

	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	path, config, err := FindProjectConfig(repo)
	require.NoError(t, err)
	require.Empty(t, path)
	require.Nil(t, config)
}
