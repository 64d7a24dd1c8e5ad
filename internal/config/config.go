// Package config holds the runtime configuration of the tees command:
// logging, example-builder settings and output settings. Values come from
// defaults, an optional config file, TEES_* environment variables and
// command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (TEES_BUILDER_WORKERS, ...).
const EnvPrefix = "TEES"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Builder BuilderConfig `mapstructure:"builder" yaml:"builder"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// LoggerConfig configures the global zap logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BuilderConfig configures example generation.
type BuilderConfig struct {
	// Styles are style tags such as "directed" or "headsOnly".
	Styles []string `mapstructure:"styles" yaml:"styles"`

	// Types restricts the interaction types that count; empty keeps all.
	Types []string `mapstructure:"types" yaml:"types"`

	// PathLengths restricts which path lengths get real features; empty
	// allows every length.
	PathLengths []int `mapstructure:"path_lengths" yaml:"path_lengths"`

	Workers      int    `mapstructure:"workers" yaml:"workers"`
	RandomSeed   uint64 `mapstructure:"random_seed" yaml:"random_seed"`
	OntologyFile string `mapstructure:"ontology_file" yaml:"ontology_file"`
	Parse        string `mapstructure:"parse" yaml:"parse"`
	Tokenization string `mapstructure:"tokenization" yaml:"tokenization"`
}

// OutputConfig configures where examples and id sets go.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`

	// IDSetDB is the SQLite file the feature and class sets are saved to.
	// If it already holds sets, they are loaded frozen and reused.
	IDSetDB string `mapstructure:"idset_db" yaml:"idset_db"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "tees")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Builder --
	v.SetDefault("builder.styles", []string{"typed", "directed", "headsOnly"})
	v.SetDefault("builder.types", []string{})
	v.SetDefault("builder.path_lengths", []int{})
	v.SetDefault("builder.workers", 1)
	v.SetDefault("builder.random_seed", 0)
	v.SetDefault("builder.ontology_file", "")
	v.SetDefault("builder.parse", "")
	v.SetDefault("builder.tokenization", "")

	// -- Output --
	v.SetDefault("output.format", "svmlight")
	v.SetDefault("output.path", "")
	v.SetDefault("output.idset_db", "")
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}

	return &cfg
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges. Style tags are checked by the builder.
func (c *Config) Validate() error {
	if c.Builder.Workers <= 0 {
		return fmt.Errorf("%w: builder.workers must be a positive integer", ErrInvalid)
	}
	for _, n := range c.Builder.PathLengths {
		if n < 1 {
			return fmt.Errorf("%w: builder.path_lengths must be positive, got %d", ErrInvalid, n)
		}
	}
	switch c.Output.Format {
	case "svmlight", "jsonl":
	default:
		return fmt.Errorf("%w: output.format must be svmlight or jsonl, got %q", ErrInvalid, c.Output.Format)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalid, c.Logger.Format)
	}

	return nil
}
