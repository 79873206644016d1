package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis   `yaml:"redis"`
	Engine   Engine  `yaml:"engine"`
	Session  Session `yaml:"session"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Engine struct {
	// Difficulty is used when a new game does not ask for one.
	Difficulty    string        `yaml:"difficulty" env:"ENGINE_DIFFICULTY" env-default:"hard"`
	StrictHistory bool          `yaml:"strict-history" env:"ENGINE_STRICT_HISTORY" env-default:"false"`
	SearchTimeout time.Duration `yaml:"search-timeout" env:"ENGINE_SEARCH_TIMEOUT" env-default:"2s"`
}

// Session controls how long games are kept in memory after their last change.
type Session struct {
	IdleTTL       time.Duration `yaml:"idle-ttl" env:"SESSION_IDLE_TTL" env-default:"30m"`
	FinishedTTL   time.Duration `yaml:"finished-ttl" env:"SESSION_FINISHED_TTL" env-default:"5m"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
