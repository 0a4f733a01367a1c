package jsoniter

import (
	"github.com/ezraisw/konvert/codec"
	jsoniter "github.com/json-iterator/go"
)

type jsoniterCodec struct {
}

func NewCodec() codec.JSONCodec {
	return &jsoniterCodec{}
}

func (c jsoniterCodec) Marshal(v any, opts codec.JSONWriteOptions) ([]byte, error) {
	api := jsoniter.Config{
		EscapeHTML:  opts.EscapeHTML,
		SortMapKeys: true,
	}.Froze()

	if opts.Pretty {
		return api.MarshalIndent(v, "", opts.IndentUnit())
	}
	return api.Marshal(v)
}

func (c jsoniterCodec) Unmarshal(data []byte, opts codec.JSONReadOptions) (any, error) {
	api := jsoniter.Config{
		UseNumber: opts.UseNumber,
	}.Froze()

	var value any
	if err := api.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
