package client

import (
	"context"
	"testing"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/netsrv"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startServer(t *testing.T) string {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()

	eng, err := engine.New(context.Background(), &engine.Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	srv := netsrv.New("127.0.0.1:0", eng, zap.NewNop().Sugar())

	addr, err := srv.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go srv.Serve(ctx)
	t.Cleanup(func() { srv.Close() })

	return addr.String()
}

func TestClientSetGetRemove(t *testing.T) {
	addr := startServer(t)

	c, err := Dial(addr)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("foo", "bar"))

	value, found, err := c.Get("foo")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bar", value)

	require.NoError(t, c.Remove("foo"))

	_, found, err = c.Get("foo")
	require.NoError(t, err)
	require.False(t, found)

	err = c.Remove("foo")
	require.ErrorIs(t, err, ErrKeyNotFound)
}
