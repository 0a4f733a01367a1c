package json

import (
	"bytes"
	"errors"
	"io"

	"github.com/ezraisw/konvert/codec"
	"github.com/goccy/go-json"
)

var errTrailingData = errors.New("json: invalid character after top-level value")

type jsonCodec struct {
}

func NewCodec() codec.JSONCodec {
	return &jsonCodec{}
}

func (c jsonCodec) Marshal(v any, opts codec.JSONWriteOptions) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(opts.EscapeHTML)
	if opts.Pretty {
		enc.SetIndent("", opts.IndentUnit())
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Encoder terminates every value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (c jsonCodec) Unmarshal(data []byte, opts codec.JSONReadOptions) (any, error) {
	var value any

	if !opts.UseNumber {
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}
		return value, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}

	return value, nil
}
