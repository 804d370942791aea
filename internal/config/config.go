// Package config loads service configuration from YAML with environment
// variable overrides for deployment secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the service looks for its config file.
const DefaultPath = "config.yaml"

type ServerConfig struct {
	Port int `yaml:"port"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type TMDBConfig struct {
	APIURL   string `yaml:"api_url"`
	APIToken string `yaml:"api_token"`
}

type QueueConfig struct {
	Stream      string `yaml:"stream"`
	Group       string `yaml:"group"`
	Concurrency int    `yaml:"concurrency"`
}

type SeedAdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type Config struct {
	Env         string          `yaml:"env"`
	LogLevel    string          `yaml:"log_level"`
	Server      ServerConfig    `yaml:"server"`
	DatabaseURL string          `yaml:"database_url"`
	Redis       RedisConfig     `yaml:"redis"`
	JWTSecret   string          `yaml:"jwt_secret"`
	TMDB        TMDBConfig      `yaml:"tmdb"`
	Queue       QueueConfig     `yaml:"queue"`
	SeedAdmin   SeedAdminConfig `yaml:"seed_admin"`
}

// Load reads the YAML file at path, applies env overrides, fills defaults,
// and validates. A missing file is not an error; env vars alone can carry a
// full configuration.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TMDB_API_URL"); v != "" {
		cfg.TMDB.APIURL = v
	}
	if v := os.Getenv("TMDB_API_TOKEN"); v != "" {
		cfg.TMDB.APIToken = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.TMDB.APIURL == "" {
		cfg.TMDB.APIURL = "https://api.themoviedb.org/3"
	}
	if cfg.Queue.Stream == "" {
		cfg.Queue.Stream = "movie-enrich"
	}
	if cfg.Queue.Group == "" {
		cfg.Queue.Group = "enrichers"
	}
	if cfg.Queue.Concurrency <= 0 {
		cfg.Queue.Concurrency = 2
	}
}

func validateConfig(cfg Config) error {
	var problems []string
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port %d out of range", cfg.Server.Port))
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		problems = append(problems, "database_url is required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		problems = append(problems, "redis addr is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		problems = append(problems, "jwt_secret is required")
	}
	if cfg.Env != "development" && cfg.Env != "production" {
		problems = append(problems, fmt.Sprintf("unknown env %q", cfg.Env))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
