package bolten

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = filepath.Join(t.TempDir(), "ignite.db")

	eng, err := New(context.Background(), &Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return eng
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)
	defer eng.Close()

	require.NoError(t, eng.Set(ctx, "foo", []byte("bar")))

	value, err := eng.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), value)
}

func TestGetMissingKeyErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)
	defer eng.Close()

	_, err := eng.Get(ctx, "missing")
	require.Error(t, err)
}

func TestRemoveMissingKeyErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)
	defer eng.Close()

	require.Error(t, eng.Remove(ctx, "missing"))
}

func TestRemoveThenGetErrors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)
	defer eng.Close()

	require.NoError(t, eng.Set(ctx, "foo", []byte("bar")))
	require.NoError(t, eng.Remove(ctx, "foo"))

	_, err := eng.Get(ctx, "foo")
	require.Error(t, err)
}

func TestCloseIsIdempotentError(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.Close())
	require.ErrorIs(t, eng.Close(), ErrEngineClosed)
}
