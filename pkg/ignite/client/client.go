// Package client provides a TCP client for talking to an Ignite server
// over the wire protocol defined in internal/wire.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/iamNilotpal/ignite/internal/wire"
	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
)

// ErrKeyNotFound is returned by Remove when the server reports that the
// target key has no entry. The wire protocol carries only a message
// string once an error crosses the network, so the client matches on the
// message the server's "unknown key" error produces and surfaces it as
// this sentinel instead, letting callers use errors.Is.
var ErrKeyNotFound = errors.New("key not found")

const unknownKeyMessage = "unknown key"

// Client holds a single persistent connection to an Ignite server. It is
// not safe for concurrent use by multiple goroutines: each request waits
// for its response before the connection can be used again, matching the
// server's one-request-in-flight-per-connection handling.
type Client struct {
	conn net.Conn
	dec  *json.Decoder
	enc  *json.Encoder
}

// Dial connects to an Ignite server listening at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to connect to server").
			WithDetail("addr", addr)
	}

	return &Client{conn: conn, dec: json.NewDecoder(conn), enc: json.NewEncoder(conn)}, nil
}

func (c *Client) roundTrip(req wire.Request) (wire.Response, error) {
	if err := c.enc.Encode(req); err != nil {
		return wire.Response{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to send request")
	}

	var resp wire.Response
	if err := c.dec.Decode(&resp); err != nil {
		return wire.Response{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to read response")
	}

	return resp, nil
}

// Get retrieves the value stored for key. A missing key is reported via
// found == false, not an error.
func (c *Client) Get(key string) (value string, found bool, err error) {
	resp, err := c.roundTrip(wire.NewGetRequest(key))
	if err != nil {
		return "", false, err
	}
	if !resp.Ok {
		return "", false, fmt.Errorf("%s", resp.Error)
	}
	return resp.Value, resp.Found, nil
}

// Set stores value under key.
func (c *Client) Set(key, value string) error {
	resp, err := c.roundTrip(wire.NewSetRequest(key, value))
	if err != nil {
		return err
	}
	if !resp.Ok {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

// Remove deletes key. It returns ErrKeyNotFound if key has no entry.
func (c *Client) Remove(key string) error {
	resp, err := c.roundTrip(wire.NewRemoveRequest(key))
	if err != nil {
		return err
	}
	if !resp.Ok {
		if resp.Error == unknownKeyMessage {
			return ErrKeyNotFound
		}
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
