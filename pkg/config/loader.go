package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	tserrors "github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are joined
// with a double underscore: TUBESORT_SOLVER__MAX_STATES=5000.
const EnvPrefix = "TUBESORT_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist when set. When
	// empty, the first of config.toml, config.yaml and config.yml in the
	// user config dir is used if present.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("solver.max_states").
	Overrides map[string]interface{}

	// SkipUserConfig ignores the XDG config dir lookup
	SkipUserConfig bool

	// SkipEnv ignores TUBESORT_ environment variables
	SkipEnv bool
}

// Default returns the embedded defaults
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

// Load builds the configuration from defaults, the config file, the
// environment and overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, tserrors.Wrap(err, tserrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	dirs := paths.New()
	path := paths.ExpandHome(opts.ConfigFile)
	if path == "" && !opts.SkipUserConfig {
		path = dirs.UserConfigFile()
	} else if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, tserrors.Wrapf(err, tserrors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, tserrors.Wrapf(err, tserrors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, tserrors.Wrap(err, tserrors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, tserrors.Wrap(err, tserrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, tserrors.Wrap(err, tserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Post-process
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = dirs.CacheDir()
	}
	cfg.Cache.Dir = paths.ExpandHome(cfg.Cache.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}
