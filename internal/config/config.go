package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EngineSQLite = "sqlite"
	EngineMemory = "memory"

	FormatText = "text"
	FormatJSON = "json"
)

// Config is the pizza-report runtime configuration. Flags take
// precedence over PIZZA_* environment variables, which take precedence
// over defaults.
type Config struct {
	DBPath       string        `mapstructure:"db"`
	DataDir      string        `mapstructure:"data-dir"`
	Sample       bool          `mapstructure:"sample"`
	Engine       string        `mapstructure:"engine"`
	Format       string        `mapstructure:"format"`
	RedisAddr    string        `mapstructure:"redis-addr"`
	CacheTTL     time.Duration `mapstructure:"cache-ttl"`
	OTelEndpoint string        `mapstructure:"otel-endpoint"`
	LogLevel     string        `mapstructure:"log-level"`
	LastRun      bool          `mapstructure:"last-run"`
}

// Load parses args (without the program name) and the environment.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("pizza-report", pflag.ContinueOnError)
	fs.String("db", "pizza.db", "SQLite database path")
	fs.String("data-dir", "", "directory with orders.csv, order_details.csv, pizzas.csv and pizza_types.csv to import")
	fs.Bool("sample", false, "load the built-in sample dataset")
	fs.String("engine", EngineSQLite, "report engine: sqlite or memory")
	fs.String("format", FormatText, "output format: text or json")
	fs.String("redis-addr", "", "redis address for caching report results")
	fs.Duration("cache-ttl", 10*time.Minute, "lifetime of cached report results")
	fs.String("otel-endpoint", "", "OTLP gRPC collector endpoint; tracing is off when empty")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Bool("last-run", false, "print the run log of the most recent battery run and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PIZZA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The collector endpoint follows the standard OTel variable.
	if err := v.BindEnv("otel-endpoint", "PIZZA_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: could not unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Engine {
	case EngineSQLite, EngineMemory:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Sample && c.DataDir != "" {
		return errors.New("--sample and --data-dir are mutually exclusive")
	}
	if c.LastRun && (c.Sample || c.DataDir != "") {
		return errors.New("--last-run cannot be combined with --sample or --data-dir")
	}
	if c.DBPath == "" {
		return errors.New("--db must not be empty")
	}
	return nil
}
