package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string `yaml:"log-level" env-default:"info"`
	Storage  string `yaml:"storage" env-default:"memory"`
	Redis    Redis  `yaml:"redis"`
	Board    Board  `yaml:"board"`
	Rules    Rules  `yaml:"rules"`
	Teams    []Team `yaml:"teams"`
}

type Redis struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env-default:"24h"`
}

// Board - shape of new games. Rank counts the levels of sub-boards above the leaves.
type Board struct {
	Rank uint8 `yaml:"rank"`
	Side int   `yaml:"side" env-default:"3"`
	Dims int   `yaml:"dims" env-default:"2"`
	Line int   `yaml:"line" env-default:"3"`
}

// Rules - the zero value is the permissive rule set.
type Rules struct {
	NoReclaim bool `yaml:"no-reclaim"`
}

type Team struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
