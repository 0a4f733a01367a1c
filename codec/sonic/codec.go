package sonic

import (
	"github.com/bytedance/sonic"
	"github.com/ezraisw/konvert/codec"
)

type sonicCodec struct {
}

func NewCodec() codec.JSONCodec {
	return &sonicCodec{}
}

func (c sonicCodec) Marshal(v any, opts codec.JSONWriteOptions) ([]byte, error) {
	api := sonic.Config{
		EscapeHTML:  opts.EscapeHTML,
		SortMapKeys: true,
	}.Froze()

	if opts.Pretty {
		return api.MarshalIndent(v, "", opts.IndentUnit())
	}
	return api.Marshal(v)
}

func (c sonicCodec) Unmarshal(data []byte, opts codec.JSONReadOptions) (any, error) {
	api := sonic.Config{
		UseNumber:      opts.UseNumber,
		ValidateString: true,
	}.Froze()

	var value any
	if err := api.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
