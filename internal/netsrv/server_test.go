package netsrv

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/wire"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startTestServer(t *testing.T) net.Addr {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()

	eng, err := engine.New(context.Background(), &engine.Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	srv := New("127.0.0.1:0", eng, zap.NewNop().Sugar())

	addr, err := srv.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go srv.Serve(ctx)
	t.Cleanup(func() { srv.Close() })

	return addr
}

func roundTrip(t *testing.T, addr net.Addr, req wire.Request) wire.Response {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr.String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, json.NewEncoder(conn).Encode(req))

	var resp wire.Response
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	return resp
}

func TestServerSetGetRemoveOverTCP(t *testing.T) {
	addr := startTestServer(t)

	setResp := roundTrip(t, addr, wire.NewSetRequest("foo", "bar"))
	require.True(t, setResp.Ok)

	getResp := roundTrip(t, addr, wire.NewGetRequest("foo"))
	require.True(t, getResp.Ok)
	require.Equal(t, "bar", getResp.Value)

	removeResp := roundTrip(t, addr, wire.NewRemoveRequest("foo"))
	require.True(t, removeResp.Ok)

	missingResp := roundTrip(t, addr, wire.NewGetRequest("foo"))
	require.True(t, missingResp.Ok)
	require.False(t, missingResp.Found)
}

func TestServerGetMissingKeyReturnsOkNotFound(t *testing.T) {
	addr := startTestServer(t)

	resp := roundTrip(t, addr, wire.NewGetRequest("nope"))
	require.True(t, resp.Ok)
	require.False(t, resp.Found)
	require.Empty(t, resp.Error)
}
