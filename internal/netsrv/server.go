// Package netsrv implements the TCP server that exposes a store.Store over
// the network. Each accepted connection is handled by its own goroutine,
// decoding one wire.Request at a time and writing back one wire.Response
// per request until the client closes the connection.
package netsrv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/iamNilotpal/ignite/internal/store"
	"github.com/iamNilotpal/ignite/internal/wire"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
	"go.uber.org/zap"
)

// Server accepts connections and dispatches requests to a store.Store.
// The store itself serializes writes; Server adds no locking of its own,
// so concurrent connections are served concurrently.
type Server struct {
	addr  string
	store store.Store
	log   *zap.SugaredLogger

	mu       sync.Mutex
	listener net.Listener
}

// New builds a Server bound to addr, dispatching requests to s.
func New(addr string, s store.Store, log *zap.SugaredLogger) *Server {
	return &Server{addr: addr, store: s, log: log}
}

// Listen binds the server's configured address without serving any
// connections yet. Separating it from Serve lets callers (and tests) learn
// the bound address — useful when addr ends in ":0" — before traffic flows.
func (srv *Server) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", srv.addr)
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to bind listener").
			WithDetail("addr", srv.addr)
	}

	srv.mu.Lock()
	srv.listener = listener
	srv.addr = listener.Addr().String()
	srv.mu.Unlock()

	return listener.Addr(), nil
}

// Addr returns the address the server is bound to, or "" if Listen has not
// been called yet.
func (srv *Server) Addr() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.listener == nil {
		return ""
	}
	return srv.addr
}

// Serve accepts and handles connections on a listener previously opened by
// Listen, until ctx is canceled or Close is called.
func (srv *Server) Serve(ctx context.Context) error {
	srv.mu.Lock()
	listener := srv.listener
	srv.mu.Unlock()

	if listener == nil {
		return errors.New("netsrv: Serve called before Listen")
	}

	srv.log.Infow("listening", "addr", srv.addr)

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to accept connection")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			srv.handleConn(ctx, conn)
		}()
	}
}

// ListenAndServe binds addr and serves connections until ctx is canceled or
// Close is called. It is Listen followed by Serve, for callers that don't
// need the bound address in between.
func (srv *Server) ListenAndServe(ctx context.Context) error {
	if _, err := srv.Listen(); err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Close stops the listener, causing Serve to return.
func (srv *Server) Close() error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.listener == nil {
		return nil
	}
	return srv.listener.Close()
}

func (srv *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	addr := conn.RemoteAddr().String()
	srv.log.Infow("client connected", "addr", addr)
	defer srv.log.Infow("client disconnected", "addr", addr)

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req wire.Request
		if err := dec.Decode(&req); err != nil {
			if err != io.EOF {
				srv.log.Warnw("failed to decode request", "addr", addr, "error", err)
			}
			return
		}

		resp := srv.dispatch(ctx, req)
		if err := enc.Encode(resp); err != nil {
			srv.log.Warnw("failed to write response", "addr", addr, "error", err)
			return
		}
	}
}

func (srv *Server) dispatch(ctx context.Context, req wire.Request) wire.Response {
	switch {
	case req.Get != nil:
		value, err := srv.store.Get(ctx, req.Get.Key)
		if err != nil {
			if ignerrors.GetErrorCode(err) == ignerrors.ErrorCodeIndexKeyNotFound {
				return wire.OkNotFoundResponse()
			}
			return wire.ErrResponse(err.Error())
		}
		return wire.OkResponse(string(value))

	case req.Set != nil:
		if err := srv.store.Set(ctx, req.Set.Key, []byte(req.Set.Value)); err != nil {
			return wire.ErrResponse(err.Error())
		}
		return wire.OkResponse("")

	case req.Remove != nil:
		if err := srv.store.Remove(ctx, req.Remove.Key); err != nil {
			return wire.ErrResponse(err.Error())
		}
		return wire.OkResponse("")

	default:
		return wire.ErrResponse("malformed request: no operation specified")
	}
}
