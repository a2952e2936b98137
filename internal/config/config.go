package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game   `yaml:"game"`
	Search   Search `yaml:"search"`
	Redis    Redis  `yaml:"redis"`
}

// Game - SeatMessages announces the winner as "Player 1" or "Player 2" instead of by symbol.
type Game struct {
	Dimension    int    `yaml:"dimension" env:"GAME_DIMENSION" env-default:"3"`
	HumanSymbol  string `yaml:"human-symbol" env:"GAME_HUMAN_SYMBOL" env-default:"X"`
	BotSymbol    string `yaml:"bot-symbol" env:"GAME_BOT_SYMBOL" env-default:"O"`
	HumanFirst   bool   `yaml:"human-first" env:"GAME_HUMAN_FIRST"`
	SeatMessages bool   `yaml:"seat-messages" env:"GAME_SEAT_MESSAGES" env-default:"false"`
}

type Search struct {
	Pruning  bool `yaml:"pruning" env:"SEARCH_PRUNING"`
	MaxDepth int  `yaml:"max-depth" env:"SEARCH_MAX_DEPTH" env-default:"0"`
}

// Redis configures the optional best-move cache.
type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file, falling back to
// environment variables and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := newConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return config, nil
}

// newConfig - presets the booleans that default to true. cleanenv treats a
// false field as unset and would apply env-default over an explicit false.
func newConfig() *Config {
	return &Config{
		Game:   Game{HumanFirst: true},
		Search: Search{Pruning: true},
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
