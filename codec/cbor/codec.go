package cbor

import (
	"github.com/ezraisw/konvert/codec"
	"github.com/fxamacker/cbor/v2"
)

// Largest nesting fxamacker/cbor accepts.
const maxNestedLevels = 65535

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec returns an archive codec writing canonical CBOR (RFC 8949 core deterministic encoding).
func NewCodec() codec.Codec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	// Every value level costs two CBOR levels; the default of 32 is far too shallow.
	dec, err := cbor.DecOptions{MaxNestedLevels: maxNestedLevels}.DecMode()
	if err != nil {
		panic(err)
	}
	return &cborCodec{enc: enc, dec: dec}
}

func (c cborCodec) Marshal(v interface{}) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v interface{}) error {
	return c.dec.Unmarshal(data, v)
}
