package index

import (
	"context"
	"testing"

	"github.com/iamNilotpal/ignite/internal/logio"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(context.Background(), &Config{DataDir: t.TempDir(), Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return idx
}

func TestSetThenGet(t *testing.T) {
	idx := newTestIndex(t)

	_, hadOld := idx.Set("foo", logio.Pointer{Generation: 1, Offset: 0, Length: 20})
	require.False(t, hadOld)

	ptr, ok := idx.Get("foo")
	require.True(t, ok)
	require.Equal(t, uint64(1), ptr.Generation)
	require.Equal(t, uint64(0), idx.StaleBytes())
}

func TestSetOverwriteCountsStale(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("foo", logio.Pointer{Generation: 1, Offset: 0, Length: 20})
	old, hadOld := idx.Set("foo", logio.Pointer{Generation: 1, Offset: 20, Length: 25})
	require.True(t, hadOld)
	require.Equal(t, int64(20), old.Length)
	require.Equal(t, uint64(20), idx.StaleBytes())
}

func TestRemoveUnknownKeyErrors(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Remove("missing", 10)
	require.Error(t, err)
}

func TestRemoveCountsOldValueAndRemoveRecordAsStale(t *testing.T) {
	idx := newTestIndex(t)

	idx.Set("foo", logio.Pointer{Generation: 1, Offset: 0, Length: 20})
	old, err := idx.Remove("foo", 12)
	require.NoError(t, err)
	require.Equal(t, int64(20), old.Length)
	require.Equal(t, uint64(32), idx.StaleBytes())

	_, ok := idx.Get("foo")
	require.False(t, ok)
}

func TestResetStale(t *testing.T) {
	idx := newTestIndex(t)
	idx.Set("foo", logio.Pointer{Generation: 1, Offset: 0, Length: 20})
	idx.Set("foo", logio.Pointer{Generation: 1, Offset: 20, Length: 20})
	require.NotZero(t, idx.StaleBytes())

	idx.ResetStale()
	require.Zero(t, idx.StaleBytes())
}

func TestCloseIsIdempotentError(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}
