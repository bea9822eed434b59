package filesys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDirForceAllowsExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	require.NoError(t, CreateDir(dir, 0755, true))
	require.NoError(t, CreateDir(dir, 0755, true))
}

func TestCreateDirRejectsFileAtPath(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	err := CreateDir(filePath, 0755, true)
	require.ErrorIs(t, err, ErrIsNotDir)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0644))

	ok, err := Exists(present)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCopyDirPreservesContents(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "1.log"), []byte("hello"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(src, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "2.log"), []byte("world"), 0644))

	dest := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, CopyDir(src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "1.log"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "nested", "2.log"))
	require.NoError(t, err)
	require.Equal(t, "world", string(data))
}
