package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Share     ShareConfig     `yaml:"share"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

// ShareConfig controls client share links. TokenTTL is a Go duration string;
// empty means issued links never expire.
type ShareConfig struct {
	BaseURL         string `yaml:"base_url"`
	InternalSegment string `yaml:"internal_segment"`
	ClientSegment   string `yaml:"client_segment"`
	TokenTTL        string `yaml:"token_ttl"`
	SupportContact  string `yaml:"support_contact"`
}

// TokenTTLDuration parses the configured share-link TTL. Zero when unset.
func (c ShareConfig) TokenTTLDuration() (time.Duration, error) {
	if c.TokenTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid share token_ttl: %w", err)
	}
	return d, nil
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "bitacora.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Share: ShareConfig{
			BaseURL:         "https://bitacora.example.com",
			InternalSegment: "bitacora",
			ClientSegment:   "bitacora-client",
			SupportContact:  "support@example.com",
		},
	}

	if path := os.Getenv("BITACORA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("BITACORA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BITACORA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BITACORA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("BITACORA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("BITACORA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("BITACORA_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if base := os.Getenv("BITACORA_SHARE_BASE_URL"); base != "" {
		cfg.Share.BaseURL = base
	}
	if ttl := os.Getenv("BITACORA_SHARE_TOKEN_TTL"); ttl != "" {
		cfg.Share.TokenTTL = ttl
	}

	if _, err := cfg.Share.TokenTTLDuration(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
