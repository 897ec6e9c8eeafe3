package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/viant/vecstore/index"
	"github.com/viant/vecstore/store"
)

// EnvPrefix prefixes every environment override, e.g. VECSTORE_INDEX_KIND.
const EnvPrefix = "VECSTORE"

// Config is the vecstore configuration, loaded from an optional TOML file
// with environment and flag overrides.
type Config struct {
	Index  IndexConfig  `mapstructure:"index"`
	Source SourceConfig `mapstructure:"source"`
	Query  QueryConfig  `mapstructure:"query"`
	Log    LogConfig    `mapstructure:"log"`
}

// IndexConfig selects the store backend.
type IndexConfig struct {
	Kind     string `mapstructure:"kind"`
	LeafSize int    `mapstructure:"leaf_size"`
}

// SourceConfig locates the SQLite document table.
type SourceConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
	Table      string `mapstructure:"table"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	K int `mapstructure:"k"`
}

// LogConfig selects the log handler and level.
type LogConfig struct {
	Debug  bool `mapstructure:"debug"`
	JSON   bool `mapstructure:"json"`
	Pretty bool `mapstructure:"pretty"`
}

// NewDefaultConfig returns the configuration used when nothing overrides it.
func NewDefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Kind:     string(store.DefaultOptions.Kind),
			LeafSize: store.DefaultOptions.LeafSize,
		},
		Source: SourceConfig{
			SQLitePath: "vecstore.db",
			Table:      "documents",
		},
		Query: QueryConfig{K: store.DefaultK},
	}
}

// NewViper returns a viper instance with defaults registered, the config
// file at path read (when path is non-empty) and VECSTORE_ environment
// variables bound.
//
// Precedence (highest first): bound flags, environment, config file, defaults.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the configuration at path (optional) and validates it.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("index.kind", d.Index.Kind)
	v.SetDefault("index.leaf_size", d.Index.LeafSize)

	v.SetDefault("source.sqlite_path", d.Source.SQLitePath)
	v.SetDefault("source.table", d.Source.Table)

	v.SetDefault("query.k", d.Query.K)

	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.pretty", d.Log.Pretty)
}

// Validate checks the index kind, leaf size, query k and table name.
func (c *Config) Validate() error {
	kind, err := index.ParseKind(c.Index.Kind)
	if err != nil {
		return fmt.Errorf("%w: index.kind: %w", store.ErrInvalidConfiguration, err)
	}
	if kind == index.KindBallTree && c.Index.LeafSize < 1 {
		return fmt.Errorf("%w: index.leaf_size must be positive, got %d", store.ErrInvalidConfiguration, c.Index.LeafSize)
	}
	if c.Query.K < 1 {
		return fmt.Errorf("%w: query.k must be positive, got %d", store.ErrInvalidConfiguration, c.Query.K)
	}
	if c.Source.Table == "" {
		return fmt.Errorf("%w: source.table is empty", store.ErrInvalidConfiguration)
	}
	return nil
}

// StoreOptions converts the index section to store options. It fails with
// store.ErrInvalidConfiguration when the kind does not parse.
func (c *Config) StoreOptions() ([]store.Option, error) {
	kind, err := index.ParseKind(c.Index.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: index.kind: %w", store.ErrInvalidConfiguration, err)
	}
	return []store.Option{
		store.WithIndex(kind),
		store.WithLeafSize(c.Index.LeafSize),
	}, nil
}
