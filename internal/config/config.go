// Package config provides Viper-based configuration loading for the dungeon generator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

// GenerationConfig holds the parameters of a single generation run.
type GenerationConfig struct {
	Width               int     `mapstructure:"width"`
	Depth               int     `mapstructure:"depth"`
	EntranceSize        int     `mapstructure:"entrance_size"`
	MinRoomSize         int     `mapstructure:"min_room_size"`
	MaxRoomSize         int     `mapstructure:"max_room_size"`
	Tries               int     `mapstructure:"tries"`
	ExtraCorridorChance float64 `mapstructure:"extra_corridor_chance"`
	// Seed drives every random draw; 0 draws a fresh seed per run.
	Seed int64 `mapstructure:"seed"`
	// TraceRNG logs every random draw at debug level.
	TraceRNG bool `mapstructure:"trace_rng"`
}

// Params converts the section into generator parameters.
//
// Postcondition: Every numeric field is copied verbatim; TraceRNG is not part of Params.
func (g GenerationConfig) Params() dungeon.Params {
	return dungeon.Params{
		Width:               g.Width,
		Depth:               g.Depth,
		EntranceSize:        g.EntranceSize,
		MinRoomSize:         g.MinRoomSize,
		MaxRoomSize:         g.MaxRoomSize,
		Tries:               g.Tries,
		ExtraCorridorChance: g.ExtraCorridorChance,
		Seed:                g.Seed,
	}
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ScriptingConfig holds Lua room tagging settings.
type ScriptingConfig struct {
	// ScriptDir is the directory of Lua scripts defining tag_room. Empty disables tagging.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit caps the VM instructions of a single hook call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// OutputConfig selects how generated dungeons are emitted.
type OutputConfig struct {
	// Format is one of "ascii", "json", "yaml", "zone".
	Format string `mapstructure:"format"`
	// Color is one of "auto", "always", "never"; only the ascii format is coloured.
	Color string `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Generation GenerationConfig `mapstructure:"generation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Scripting  ScriptingConfig  `mapstructure:"scripting"`
	Output     OutputConfig     `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := c.Generation.Params().Validate(); err != nil {
		errs = append(errs, "generation: "+err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 1 {
		return fmt.Errorf("scripting.instruction_limit must be >= 1, got %d", s.InstructionLimit)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	var errs []string
	validFormats := map[string]bool{"ascii": true, "json": true, "yaml": true, "zone": true}
	if !validFormats[o.Format] {
		errs = append(errs, fmt.Sprintf("output.format must be one of [ascii, json, yaml, zone], got %q", o.Format))
	}
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[o.Color] {
		errs = append(errs, fmt.Sprintf("output.color must be one of [auto, always, never], got %q", o.Color))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and environment only.
//
// Precondition: path must be empty or a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance carrying the defaults and the DUNGEON_
// environment overrides, ready for flags or a config file to be layered on.
//
// Postcondition: Returns a non-nil *viper.Viper.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with DUNGEON_ prefix
	v.SetEnvPrefix("DUNGEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := dungeon.DefaultParams()
	v.SetDefault("generation.width", d.Width)
	v.SetDefault("generation.depth", d.Depth)
	v.SetDefault("generation.entrance_size", d.EntranceSize)
	v.SetDefault("generation.min_room_size", d.MinRoomSize)
	v.SetDefault("generation.max_room_size", d.MaxRoomSize)
	v.SetDefault("generation.tries", d.Tries)
	v.SetDefault("generation.extra_corridor_chance", d.ExtraCorridorChance)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.trace_rng", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "dungeon")
	v.SetDefault("database.password", "dungeon")
	v.SetDefault("database.name", "dungeon")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("scripting.script_dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)

	v.SetDefault("output.format", "ascii")
	v.SetDefault("output.color", "auto")
}
