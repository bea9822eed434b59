package engine

import (
	"context"
	"testing"

	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, dataDir string) *Engine {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = dataDir
	opts.CompactionThreshold = 1 << 30 // disabled unless a test opts in

	eng, err := New(context.Background(), &Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return eng
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	eng := newTestEngine(t, dir)
	defer eng.Close()

	require.NoError(t, eng.Set(ctx, "foo", []byte("bar")))

	value, err := eng.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), value)
}

func TestGetMissingKeyErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, t.TempDir())
	defer eng.Close()

	_, err := eng.Get(ctx, "missing")
	require.Error(t, err)
}

func TestOverwriteReturnsLatestValue(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, t.TempDir())
	defer eng.Close()

	require.NoError(t, eng.Set(ctx, "foo", []byte("v1")))
	require.NoError(t, eng.Set(ctx, "foo", []byte("v2")))

	value, err := eng.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)
}

func TestRemoveThenGetErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, t.TempDir())
	defer eng.Close()

	require.NoError(t, eng.Set(ctx, "foo", []byte("bar")))
	require.NoError(t, eng.Remove(ctx, "foo"))

	_, err := eng.Get(ctx, "foo")
	require.Error(t, err)
}

func TestRemoveMissingKeyErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, t.TempDir())
	defer eng.Close()

	require.Error(t, eng.Remove(ctx, "missing"))
}

func TestReopenRecoversState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	eng := newTestEngine(t, dir)
	require.NoError(t, eng.Set(ctx, "a", []byte("1")))
	require.NoError(t, eng.Set(ctx, "b", []byte("2")))
	require.NoError(t, eng.Remove(ctx, "a"))
	require.NoError(t, eng.Close())

	reopened := newTestEngine(t, dir)
	defer reopened.Close()

	_, err := reopened.Get(ctx, "a")
	require.Error(t, err)

	value, err := reopened.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, []byte("2"), value)
}

func TestCompactionReclaimsStaleBytesAndPreservesValues(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.CompactionThreshold = 64

	eng, err := New(ctx, &Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 20; i++ {
		require.NoError(t, eng.Set(ctx, "hot", []byte("value")))
	}
	require.NoError(t, eng.Set(ctx, "cold", []byte("unchanged")))

	require.Less(t, eng.idx.StaleBytes(), uint64(64))

	value, err := eng.Get(ctx, "hot")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), value)

	value, err = eng.Get(ctx, "cold")
	require.NoError(t, err)
	require.Equal(t, []byte("unchanged"), value)
}

func TestCloseIsIdempotentError(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())
	require.NoError(t, eng.Close())
	require.ErrorIs(t, eng.Close(), ErrEngineClosed)
}
