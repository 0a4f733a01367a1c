package konvert

import (
	"unicode/utf8"

	"github.com/ezraisw/konvert/codec"
	"github.com/ezraisw/konvert/codec/json"
	"github.com/ezraisw/konvert/codec/msgpack"
	"github.com/ezraisw/konvert/logger"
	"github.com/ezraisw/konvert/logger/std"
)

const (
	OpEncodeArchive    = "EncodeArchive"
	OpDecodeArchive    = "DecodeArchive"
	OpEncodeJSONBytes  = "EncodeJSONBytes"
	OpEncodeJSONString = "EncodeJSONString"
	OpDecodeJSONBytes  = "DecodeJSONBytes"
	OpDecodeJSONString = "DecodeJSONString"
)

// Converter translates values to binary archives and JSON and back.
//
// The plain methods never fail loudly: invalid input yields an absent result
// and one log entry. The Try variants return the error instead and do not log.
// A Converter is immutable and safe for concurrent use.
type Converter struct {
	archiveCodec codec.Codec
	jsonCodec    codec.JSONCodec
	logger       logger.Logger
	secure       bool
	writeOptions JSONWriteOptions
	readOptions  JSONReadOptions
}

func New(opts ...Option) *Converter {
	c := &Converter{
		archiveCodec: msgpack.NewCodec(),
		jsonCodec:    json.NewCodec(),
		logger:       std.NewLogger(),
		secure:       true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	return c
}

func (c *Converter) SecureMode() bool {
	return c.secure
}

// EncodeArchive returns the archive of v, or nil if v is nil or cannot be archived.
func (c *Converter) EncodeArchive(v Value) []byte {
	data, err := c.TryEncodeArchive(v)
	if err != nil {
		c.logger.Error(err)
		return nil
	}
	return data
}

// DecodeArchive returns the value archived in data, or nil if data is nil or invalid.
func (c *Converter) DecodeArchive(data []byte) Value {
	v, err := c.TryDecodeArchive(data)
	if err != nil {
		c.logger.Error(err)
		return nil
	}
	return v
}

func (c *Converter) EncodeJSONBytes(v any) []byte {
	return c.EncodeJSONBytesWithOptions(v, c.writeOptions)
}

func (c *Converter) EncodeJSONBytesWithOptions(v any, opts JSONWriteOptions) []byte {
	data, err := c.TryEncodeJSONBytes(v, opts)
	if err != nil {
		c.logger.Error(err)
		return nil
	}
	return data
}

func (c *Converter) EncodeJSONString(v any) (string, bool) {
	return c.EncodeJSONStringWithOptions(v, c.writeOptions)
}

func (c *Converter) EncodeJSONStringWithOptions(v any, opts JSONWriteOptions) (string, bool) {
	s, err := c.TryEncodeJSONString(v, opts)
	if err != nil {
		c.logger.Error(err)
		return "", false
	}
	if s == nil {
		return "", false
	}
	return *s, true
}

func (c *Converter) DecodeJSONBytes(data []byte) any {
	return c.DecodeJSONBytesWithOptions(data, c.readOptions)
}

func (c *Converter) DecodeJSONBytesWithOptions(data []byte, opts JSONReadOptions) any {
	v, err := c.TryDecodeJSONBytes(data, opts)
	if err != nil {
		c.logger.Error(err)
		return nil
	}
	return v
}

func (c *Converter) DecodeJSONString(text *string) any {
	return c.DecodeJSONStringWithOptions(text, c.readOptions)
}

func (c *Converter) DecodeJSONStringWithOptions(text *string, opts JSONReadOptions) any {
	v, err := c.TryDecodeJSONString(text, opts)
	if err != nil {
		c.logger.Error(err)
		return nil
	}
	return v
}

// TryEncodeArchive archives v. A nil v, typed nil pointers included, yields (nil, nil).
func (c *Converter) TryEncodeArchive(v Value) ([]byte, error) {
	if v == nil || isNilPointer(v) {
		return nil, nil
	}

	root, err := toNode(v, c.secure, 0)
	if err != nil {
		return nil, newEncodeError(OpEncodeArchive, "value cannot be archived", err)
	}

	env := envelope{
		Version: archiveVersion,
		Secure:  c.secure,
		Root:    root,
	}
	data, err := c.archiveCodec.Marshal(&env)
	if err != nil {
		return nil, newEncodeError(OpEncodeArchive, "archive codec failed", err)
	}
	return data, nil
}

// TryDecodeArchive restores the value archived in data. A nil data yields (nil, nil).
func (c *Converter) TryDecodeArchive(data []byte) (Value, error) {
	if data == nil {
		return nil, nil
	}

	var env envelope
	if err := c.archiveCodec.Unmarshal(data, &env); err != nil {
		return nil, newDecodeError(OpDecodeArchive, "malformed archive", err)
	}
	if err := checkEnvelope(env, c.secure); err != nil {
		return nil, newDecodeError(OpDecodeArchive, "incompatible archive", err)
	}

	v, err := fromNode(env.Root, c.secure, 0)
	if err != nil {
		return nil, newDecodeError(OpDecodeArchive, "archive content rejected", err)
	}
	return v, nil
}

// TryEncodeJSONBytes writes v as JSON. A nil v yields (nil, nil).
func (c *Converter) TryEncodeJSONBytes(v any, opts JSONWriteOptions) ([]byte, error) {
	return c.encodeJSON(OpEncodeJSONBytes, v, opts)
}

// TryEncodeJSONString writes v as JSON text. A nil v yields (nil, nil).
func (c *Converter) TryEncodeJSONString(v any, opts JSONWriteOptions) (*string, error) {
	data, err := c.encodeJSON(OpEncodeJSONString, v, opts)
	if err != nil || data == nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, newEncodeError(OpEncodeJSONString, "output is not valid UTF-8", nil)
	}

	s := string(data)
	return &s, nil
}

// TryDecodeJSONBytes parses data as JSON. A nil data yields (nil, nil).
func (c *Converter) TryDecodeJSONBytes(data []byte, opts JSONReadOptions) (any, error) {
	if data == nil {
		return nil, nil
	}
	return c.decodeJSON(OpDecodeJSONBytes, data, opts)
}

// TryDecodeJSONString parses text as JSON. A nil text yields (nil, nil).
func (c *Converter) TryDecodeJSONString(text *string, opts JSONReadOptions) (any, error) {
	if text == nil {
		return nil, nil
	}
	return c.decodeJSON(OpDecodeJSONString, []byte(*text), opts)
}

func (c *Converter) encodeJSON(op string, v any, opts JSONWriteOptions) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	if err := validateJSON(v, opts.FragmentsAllowed); err != nil {
		return nil, newEncodeError(op, "value is not a JSON value", err)
	}

	data, err := c.jsonCodec.Marshal(v, opts)
	if err != nil {
		return nil, newEncodeError(op, "JSON codec failed", err)
	}
	return data, nil
}

func (c *Converter) decodeJSON(op string, data []byte, opts JSONReadOptions) (any, error) {
	v, err := c.jsonCodec.Unmarshal(data, opts)
	if err != nil {
		return nil, newDecodeError(op, "malformed JSON", err)
	}
	if err := checkJSONFragment(v, opts.FragmentsAllowed); err != nil {
		return nil, newDecodeError(op, "JSON fragment rejected", err)
	}
	return v, nil
}
