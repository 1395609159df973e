package config

import (
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"president-sim/internal/util"
)

// Config provides configuration for the President simulator
type Config struct {
	loaded bool
	Log    struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Game struct {
		MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
		// TurnTimeout bounds how long the coordinator waits for a reply. Zero waits forever.
		TurnTimeout time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
		Transport   string        `yaml:"transport"`
		Seed        int64         `yaml:"seed"`
	} `yaml:"game"`
	Report struct {
		Format string `yaml:"format"`
	} `yaml:"report"`
	Server struct {
		Addr              string `yaml:"addr"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"server"`
}

var config Config

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Game.MaxPlayers = 10
	cfg.Game.Transport = "chan"
	cfg.Server.Addr = ":5000"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file named by PRESIDENT_CONFIG_FILE is applied over the defaults, then the environment.
// A missing file is not an error.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("PRESIDENT_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && err != io.EOF {
			return err
		}
	}

	if err := envconfig.Process("president", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
