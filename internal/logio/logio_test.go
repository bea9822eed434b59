package logio

import (
	"io"
	"os"
	"testing"

	"github.com/iamNilotpal/ignite/internal/logrecord"
	"github.com/iamNilotpal/ignite/internal/segment"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriterAppendAndReaderReadAt(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()

	w, err := NewWriter(dir, 1, log)
	require.NoError(t, err)
	defer w.Close()

	p1, err := w.Append(logrecord.NewSet("foo", "bar"))
	require.NoError(t, err)
	require.Equal(t, int64(0), p1.Offset)

	p2, err := w.Append(logrecord.NewRemove("foo"))
	require.NoError(t, err)
	require.Equal(t, p1.Offset+p1.Length, p2.Offset)

	r := NewReader(dir, log)
	defer r.Close()

	cmd1, err := r.ReadAt(p1)
	require.NoError(t, err)
	require.Equal(t, "bar", cmd1.Set.Value)

	cmd2, err := r.ReadAt(p2)
	require.NoError(t, err)
	require.NotNil(t, cmd2.Remove)
}

func TestIterateReplaysInOrder(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()

	w, err := NewWriter(dir, 7, log)
	require.NoError(t, err)

	_, err = w.Append(logrecord.NewSet("a", "1"))
	require.NoError(t, err)
	_, err = w.Append(logrecord.NewSet("b", "2"))
	require.NoError(t, err)
	_, err = w.Append(logrecord.NewRemove("a"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var keys []string
	err = Iterate(dir, 7, func(ptr Pointer, cmd logrecord.Command) error {
		require.Equal(t, uint64(7), ptr.Generation)
		keys = append(keys, cmd.Key())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "a"}, keys)
}

func TestIterateRejectsTruncatedTail(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()

	w, err := NewWriter(dir, 3, log)
	require.NoError(t, err)
	_, err = w.Append(logrecord.NewSet("a", "1"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := segment.Path(dir, 3)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"Set":{"key"`))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = Iterate(dir, 3, func(ptr Pointer, cmd logrecord.Command) error { return nil })
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}
