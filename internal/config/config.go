package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "bubblejar.hcl"

// Config is the complete bubblejar configuration.
type Config struct {
	Game   GameSettings   `hcl:"game,block"`
	Server ServerSettings `hcl:"server,block"`
	Log    LogSettings    `hcl:"log,block"`
}

// GameSettings controls dealing and move rules.
type GameSettings struct {
	Seed       int64 `hcl:"seed,optional"`
	MatchColor bool  `hcl:"match_color,optional"`
}

// ServerSettings controls the websocket frontend.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults. Blocks may be omitted; omitted values take their defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw struct {
		Game   *GameSettings   `hcl:"game,block"`
		Server *ServerSettings `hcl:"server,block"`
		Log    *LogSettings    `hcl:"log,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Game != nil {
		cfg.Game = *raw.Game
	}
	if raw.Server != nil {
		cfg.Server = *raw.Server
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// ServerAddress returns host:port for the websocket server.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
