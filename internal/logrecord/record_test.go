package logrecord

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeSetWireShape(t *testing.T) {
	data, err := Encode(NewSet("foo", "bar"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Set":{"key":"foo","value":"bar"}}`, string(data))
}

func TestEncodeRemoveWireShape(t *testing.T) {
	data, err := Encode(NewRemove("foo"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Remove":{"key":"foo"}}`, string(data))
}

func TestDecodeRoundTrip(t *testing.T) {
	data, err := Encode(NewSet("k", "v"))
	require.NoError(t, err)

	cmd, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, cmd.Set)
	require.Equal(t, "k", cmd.Set.Key)
	require.Equal(t, "v", cmd.Set.Value)
}

func TestDecoderStreamsMultipleRecords(t *testing.T) {
	var buf bytes.Buffer
	for _, cmd := range []Command{NewSet("a", "1"), NewRemove("a"), NewSet("b", "2")} {
		data, err := Encode(cmd)
		require.NoError(t, err)
		buf.Write(data)
	}

	dec := NewDecoder(&buf)

	first, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, int64(0), first.Offset)
	require.NotNil(t, first.Command.Set)
	require.Equal(t, "a", first.Command.Key())

	second, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, first.Offset+first.Length, second.Offset)
	require.NotNil(t, second.Command.Remove)

	third, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, "b", third.Command.Key())

	_, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeRejectsMalformedEnvelope(t *testing.T) {
	_, err := Decode([]byte(`{"Nonsense":{}}`))
	require.Error(t, err)
}
