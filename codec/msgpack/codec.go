package msgpack

import (
	"bytes"
	"fmt"

	"github.com/ezraisw/konvert/codec"
	"github.com/vmihailenco/msgpack/v5"
)

type msgpackCodec struct {
}

func NewCodec() codec.Codec {
	return &msgpackCodec{}
}

func (c msgpackCodec) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal rejects data with bytes left over after the first value.
func (c msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(v); err != nil {
		return err
	}

	if r.Len() != 0 {
		return fmt.Errorf("msgpack: %d bytes of trailing data", r.Len())
	}
	return nil
}
