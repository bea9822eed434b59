package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListEmptyDirMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	generations, err := List(dir)
	require.NoError(t, err)
	require.Empty(t, generations)
}

func TestListIgnoresNonSegmentFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.log"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3.log"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.log"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "10.log"), 0755))

	generations, err := List(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, generations)
}

func TestParseGeneration(t *testing.T) {
	id, err := ParseGeneration("42.log")
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)

	_, err = ParseGeneration("42.txt")
	require.Error(t, err)

	_, err = ParseGeneration("abc.log")
	require.Error(t, err)
}

func TestNextGeneration(t *testing.T) {
	require.Equal(t, uint64(1), NextGeneration(nil))
	require.Equal(t, uint64(4), NextGeneration([]uint64{1, 2, 3}))
}

func TestPath(t *testing.T) {
	require.Equal(t, filepath.Join("/data", "5.log"), Path("/data", 5))
}
