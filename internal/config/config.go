// Package config holds the server's startup configuration, loaded from
// an optional TOML file with command-line flags applied on top.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Board     BoardConfig     `toml:"board"`
	WebSocket WebSocketConfig `toml:"websocket"`
	Network   NetworkConfig   `toml:"network"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	Debug       bool   `toml:"debug"` // when on, a BOOM no longer ends the session
}

// BoardConfig selects the board source. Precedence: File, then Preset,
// then a random Width x Height board at BombDensity.
type BoardConfig struct {
	File        string  `toml:"file"`         // board definition file
	Preset      string  `toml:"preset"`       // named difficulty
	Width       int     `toml:"width"`        // random board columns
	Height      int     `toml:"height"`       // random board rows
	BombDensity float64 `toml:"bomb_density"` // per-square bomb probability (0.0-1.0)
	PresetFile  string  `toml:"preset_file"`  // extra presets on top of the built-ins
}

type WebSocketConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
	Path        string `toml:"path"`
}

type NetworkConfig struct {
	MaxLineBytes int `toml:"max_line_bytes"` // longest accepted command line
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given: a 10x10
// board at the classic quarter density on port 4444.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: ":4444",
			Debug:       false,
		},
		Board: BoardConfig{
			Width:       10,
			Height:      10,
			BombDensity: 0.25,
		},
		WebSocket: WebSocketConfig{
			Enabled:     false,
			BindAddress: ":8080",
			Path:        "/ws",
		},
		Network: NetworkConfig{
			MaxLineBytes: 512,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects values no server should start with. Board files and
// presets are validated where they are loaded; this covers the plain
// numeric knobs.
func (c *Config) Validate() error {
	if c.Board.File == "" && c.Board.Preset == "" {
		if c.Board.Width <= 0 || c.Board.Height <= 0 {
			return fmt.Errorf("board dimensions must be positive, got %dx%d", c.Board.Width, c.Board.Height)
		}
		if c.Board.BombDensity < 0 || c.Board.BombDensity > 1 {
			return fmt.Errorf("bomb density must be between 0 and 1, got %g", c.Board.BombDensity)
		}
	}
	if c.Network.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", c.Network.MaxLineBytes)
	}
	if c.WebSocket.Enabled && c.WebSocket.Path == "" {
		return fmt.Errorf("websocket enabled without a path")
	}
	return nil
}
