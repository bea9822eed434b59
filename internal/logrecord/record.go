// Package logrecord defines the on-disk command records written to Ignite's
// segment files and the codec used to read and write them.
//
// Records are newline-free, self-delimiting JSON values, one per log entry:
//
//	{"Set":{"key":"...","value":"..."}}
//	{"Remove":{"key":"..."}}
//
// The shape is deliberately exact: a generation's worth of records, when
// streamed back through a standard JSON decoder, must be byte-for-byte
// compatible with what another implementation of this wire format would
// produce, so that a data directory can be read regardless of which
// conforming implementation wrote it.
package logrecord

import (
	"bytes"
	"encoding/json"
	"io"

	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
)

// SetCommand records the assignment of value to key.
type SetCommand struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RemoveCommand records the deletion of key.
type RemoveCommand struct {
	Key string `json:"key"`
}

// Command is a single log record. Exactly one of Set or Remove is non-nil;
// MarshalJSON and UnmarshalJSON enforce the {"Set":{...}} / {"Remove":{...}}
// envelope rather than exposing both fields in one object.
type Command struct {
	Set    *SetCommand
	Remove *RemoveCommand
}

// NewSet builds a Set command record.
func NewSet(key, value string) Command {
	return Command{Set: &SetCommand{Key: key, Value: value}}
}

// NewRemove builds a Remove command record.
func NewRemove(key string) Command {
	return Command{Remove: &RemoveCommand{Key: key}}
}

// Key returns the key the command applies to, regardless of kind.
func (c Command) Key() string {
	if c.Set != nil {
		return c.Set.Key
	}
	if c.Remove != nil {
		return c.Remove.Key
	}
	return ""
}

type wireEnvelope struct {
	Set    *SetCommand    `json:"Set,omitempty"`
	Remove *RemoveCommand `json:"Remove,omitempty"`
}

// MarshalJSON renders the command as {"Set":{...}} or {"Remove":{...}}.
func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEnvelope{Set: c.Set, Remove: c.Remove})
}

// UnmarshalJSON parses a {"Set":{...}} or {"Remove":{...}} envelope.
func (c *Command) UnmarshalJSON(data []byte) error {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	if env.Set == nil && env.Remove == nil {
		return ignerrors.NewStorageError(nil, ignerrors.ErrorCodeDecode, "record envelope has neither Set nor Remove").
			WithDetail("raw", string(data))
	}

	c.Set = env.Set
	c.Remove = env.Remove
	return nil
}

// Encode returns the JSON encoding of cmd. The length of the returned slice
// is the record's on-disk length, so callers can compute the log pointer for
// the record without a second pass.
func Encode(cmd Command) ([]byte, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeDecode, "failed to encode command")
	}
	return data, nil
}

// Decode parses a single command from data, which must contain exactly one
// JSON value and nothing else. Used to re-read a record once its exact
// length is already known from a keydir pointer.
func Decode(data []byte) (Command, error) {
	var cmd Command
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cmd); err != nil {
		return Command{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeDecode, "failed to decode command").
			WithDetail("raw", string(data))
	}
	if _, err := dec.Token(); err != io.EOF {
		return Command{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeDecode, "trailing bytes after command").
			WithDetail("raw", string(data))
	}
	return cmd, nil
}

// Decoder streams commands out of a segment file, reporting the byte offset
// and length of each one so callers can build keydir pointers during
// recovery.
type Decoder struct {
	dec    *json.Decoder
	offset int64
}

// NewDecoder wraps r, which must start at the beginning of a segment.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Decoded is one record read by Decoder.Next, annotated with its position.
type Decoded struct {
	Command Command
	Offset  int64
	Length  int64
}

// Next reads the next record. It returns io.EOF (unwrapped, so callers can
// compare with ==) once every well-formed record has been consumed.
func (d *Decoder) Next() (Decoded, error) {
	start := d.dec.InputOffset()

	var cmd Command
	if err := d.dec.Decode(&cmd); err != nil {
		if err == io.EOF {
			return Decoded{}, io.EOF
		}
		return Decoded{}, ignerrors.NewStorageError(err, ignerrors.ErrorCodeDecode, "failed to decode record during recovery").
			WithOffset(int(start))
	}

	end := d.dec.InputOffset()
	d.offset = end

	return Decoded{Command: cmd, Offset: start, Length: end - start}, nil
}
