package ignite

import (
	"context"
	"testing"

	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
)

func TestInstanceSetGetDelete(t *testing.T) {
	ctx := context.Background()

	inst, err := NewInstance(ctx, "ignite-test", options.WithDataDir(t.TempDir()))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Set(ctx, "foo", []byte("bar")))

	value, err := inst.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), value)

	require.NoError(t, inst.Delete(ctx, "foo"))

	_, err = inst.Get(ctx, "foo")
	require.Error(t, err)
}

func TestInstanceRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()

	inst, err := NewInstance(ctx, "ignite-test", options.WithDataDir(t.TempDir()))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.Error(t, inst.Set(ctx, "", []byte("bar")))
	_, err = inst.Get(ctx, "")
	require.Error(t, err)
	require.Error(t, inst.Delete(ctx, ""))
}

func TestInstanceBoltEngine(t *testing.T) {
	ctx := context.Background()

	inst, err := NewInstance(
		ctx,
		"ignite-test",
		options.WithEngineKind(options.EngineKindBolt),
		options.WithDataDir(t.TempDir()+"/ignite.db"),
	)
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Set(ctx, "foo", []byte("bar")))

	value, err := inst.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), value)
}
