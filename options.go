package konvert

import (
	"github.com/ezraisw/konvert/codec"
	"github.com/ezraisw/konvert/logger"
)

type (
	JSONWriteOptions = codec.JSONWriteOptions
	JSONReadOptions  = codec.JSONReadOptions

	Option func(*Converter)
)

// WithArchiveCodec sets the byte codec of binary archives.
func WithArchiveCodec(c codec.Codec) Option {
	return func(conv *Converter) {
		conv.archiveCodec = c
	}
}

func WithJSONCodec(c codec.JSONCodec) Option {
	return func(conv *Converter) {
		conv.jsonCodec = c
	}
}

func WithLogger(l logger.Logger) Option {
	return func(conv *Converter) {
		conv.logger = l
	}
}

// WithSecureMode toggles type-checked archiving.
// Secure converters refuse unregistered records and legacy archives.
func WithSecureMode(secure bool) Option {
	return func(conv *Converter) {
		conv.secure = secure
	}
}

// WithJSONWriteOptions sets the options used by EncodeJSONBytes and EncodeJSONString.
func WithJSONWriteOptions(opts JSONWriteOptions) Option {
	return func(conv *Converter) {
		conv.writeOptions = opts
	}
}

// WithJSONReadOptions sets the options used by DecodeJSONBytes and DecodeJSONString.
func WithJSONReadOptions(opts JSONReadOptions) Option {
	return func(conv *Converter) {
		conv.readOptions = opts
	}
}
