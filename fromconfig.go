package konvert

import (
	"fmt"

	"github.com/ezraisw/konvert/codec"
	"github.com/ezraisw/konvert/codec/cbor"
	"github.com/ezraisw/konvert/codec/json"
	"github.com/ezraisw/konvert/codec/jsoniter"
	"github.com/ezraisw/konvert/codec/msgpack"
	"github.com/ezraisw/konvert/codec/sonic"
	"github.com/ezraisw/konvert/config"
	"github.com/ezraisw/konvert/logger"
	logruslogger "github.com/ezraisw/konvert/logger/logrus"
	"github.com/ezraisw/konvert/logger/std"
	zaplogger "github.com/ezraisw/konvert/logger/zap"
)

// NewFromConfig resolves codecs, logger and archive mode once from cfg.
// Extra options are applied after the configured ones.
func NewFromConfig(cfg config.Config, opts ...Option) (*Converter, error) {
	archiveCodec, err := archiveCodecByName(cfg.ArchiveCodec)
	if err != nil {
		return nil, err
	}

	jsonCodec, err := jsonCodecByName(cfg.JSONCodec)
	if err != nil {
		return nil, err
	}

	l, err := loggerFromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithArchiveCodec(archiveCodec),
		WithJSONCodec(jsonCodec),
		WithLogger(l),
		WithSecureMode(cfg.SecureMode),
		WithJSONWriteOptions(JSONWriteOptions{
			Pretty:           cfg.JSON.Pretty,
			Indent:           cfg.JSON.Indent,
			EscapeHTML:       cfg.JSON.EscapeHTML,
			FragmentsAllowed: cfg.JSON.FragmentsAllowed,
		}),
		WithJSONReadOptions(JSONReadOptions{
			FragmentsAllowed: cfg.JSON.FragmentsAllowed,
			UseNumber:        cfg.JSON.UseNumber,
		}),
	}

	return New(append(base, opts...)...), nil
}

func archiveCodecByName(name string) (codec.Codec, error) {
	switch name {
	case "", "msgpack":
		return msgpack.NewCodec(), nil
	case "cbor":
		return cbor.NewCodec(), nil
	}
	return nil, fmt.Errorf("konvert: unknown archive codec %q", name)
}

func jsonCodecByName(name string) (codec.JSONCodec, error) {
	switch name {
	case "", "json":
		return json.NewCodec(), nil
	case "jsoniter":
		return jsoniter.NewCodec(), nil
	case "sonic":
		return sonic.NewCodec(), nil
	}
	return nil, fmt.Errorf("konvert: unknown JSON codec %q", name)
}

func loggerFromConfig(cfg config.Log) (logger.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	switch cfg.Backend {
	case "", "std":
		return std.NewLogger(), nil
	case "logrus":
		return logruslogger.NewLoggerWithLevel(level)
	case "zap":
		return zaplogger.NewLoggerWithLevel(level)
	case "nop":
		return logger.Nop(), nil
	}
	return nil, fmt.Errorf("konvert: unknown log backend %q", cfg.Backend)
}
