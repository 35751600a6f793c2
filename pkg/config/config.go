// Package config loads the arbiter's YAML configuration file and carries
// the defaults used when no file is given.
package config

import (
	"fmt"
	"os"

	"github.com/vctt94/daifugo/pkg/daifugo"
	"github.com/vctt94/daifugo/pkg/protocol"
	"gopkg.in/yaml.v3"
)

// ServerConfig is the listen section.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GameConfig is the session section.
type GameConfig struct {
	NumGames int `yaml:"num_games"`
	// Seed seeds the shuffle RNG; 0 draws entropy from the OS.
	Seed int64 `yaml:"seed"`
}

// LoggingConfig is the operator-log section.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogFile   string `yaml:"log_file"`
	ShowHands bool   `yaml:"show_hands"`
}

// GameLogConfig is the event-trace section.
type GameLogConfig struct {
	// Dir is where session JSONL files go; empty disables the trace.
	Dir string `yaml:"dir"`
}

// Config is the root of the arbiter configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
	Rules   daifugo.Rules `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
	GameLog GameLogConfig `yaml:"game_log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: protocol.DefaultPort,
		},
		Game: GameConfig{
			NumGames: 100,
		},
		Rules: daifugo.DefaultRules(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Address renders the listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
