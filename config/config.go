package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "KONVERT"

type (
	Config struct {
		// Archive in type-checked mode.
		SecureMode bool `mapstructure:"secure_mode"`

		// "msgpack" or "cbor".
		ArchiveCodec string `mapstructure:"archive_codec"`

		// "json", "jsoniter" or "sonic".
		JSONCodec string `mapstructure:"json_codec"`

		JSON JSON `mapstructure:"json"`
		Log  Log  `mapstructure:"log"`
	}

	JSON struct {
		Pretty           bool   `mapstructure:"pretty"`
		Indent           string `mapstructure:"indent"`
		EscapeHTML       bool   `mapstructure:"escape_html"`
		FragmentsAllowed bool   `mapstructure:"fragments_allowed"`
		UseNumber        bool   `mapstructure:"use_number"`
	}

	Log struct {
		// "std", "logrus" or "zap".
		Backend string `mapstructure:"backend"`
		Level   string `mapstructure:"level"`
	}
)

func Default() Config {
	return Config{
		SecureMode:   true,
		ArchiveCodec: "msgpack",
		JSONCodec:    "json",
		Log: Log{
			Backend: "std",
			Level:   "info",
		},
	}
}

// Load reads the configuration from a YAML or JSON file, if path is not empty,
// then applies KONVERT_* environment overrides (KONVERT_JSON_PRETTY for json.pretty).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			v.SetConfigType("yaml")
		case ".json":
			v.SetConfigType("json")
		}

		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("secure_mode", cfg.SecureMode)
	v.SetDefault("archive_codec", cfg.ArchiveCodec)
	v.SetDefault("json_codec", cfg.JSONCodec)
	v.SetDefault("json.pretty", cfg.JSON.Pretty)
	v.SetDefault("json.indent", cfg.JSON.Indent)
	v.SetDefault("json.escape_html", cfg.JSON.EscapeHTML)
	v.SetDefault("json.fragments_allowed", cfg.JSON.FragmentsAllowed)
	v.SetDefault("json.use_number", cfg.JSON.UseNumber)
	v.SetDefault("log.backend", cfg.Log.Backend)
	v.SetDefault("log.level", cfg.Log.Level)
}
