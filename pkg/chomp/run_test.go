package chomp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree.chomp")
	out := filepath.Join(dir, "out.chomp")

	require.NoError(t, os.WriteFile(src, []byte("a -> b\n(a -> one).a\n"), 0644))
	require.NoError(t, RunFile(src, out, false))

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "a -> b\none\n", string(written))
}

func TestRunFileParseFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.chomp")
	out := filepath.Join(dir, "out.chomp")

	require.NoError(t, os.WriteFile(src, []byte("(a, b\n"), 0644))

	err := RunFile(src, out, false)
	require.Error(t, err)

	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)

	// A failed run must not write the output file.
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunFileEvaluationFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pending.chomp")
	out := filepath.Join(dir, "out.chomp")

	require.NoError(t, os.WriteFile(src, []byte(".a\n"), 0644))

	err := RunFile(src, out, false)
	require.ErrorIs(t, err, ErrInvariant)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunFileAllowEmptyOff(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chomp.toml"), []byte("allow-empty = false\n"), 0644))

	src := filepath.Join(dir, "empty.chomp")
	out := filepath.Join(dir, "out.chomp")
	require.NoError(t, os.WriteFile(src, []byte("(a -> b).c\n"), 0644))

	err := RunFile(src, out, false)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunFileProjectDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chomp.toml"), []byte("output = \"result.chomp\"\n"), 0644))

	src := filepath.Join(dir, "tree.chomp")
	require.NoError(t, os.WriteFile(src, []byte("a\n"), 0644))

	require.NoError(t, RunFile(src, "", false))

	written, err := os.ReadFile(filepath.Join(dir, "result.chomp"))
	require.NoError(t, err)
	require.Equal(t, "a\n", string(written))
}
