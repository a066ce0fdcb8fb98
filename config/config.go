package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultApiURL      = "https://api.helium.io/v1"
	DefaultPageSize    = 20
	DefaultHttpPort    = 8080
	DefaultTimeout     = 10
	DefaultIdleMinutes = 30
	DefaultMaxSessions = 10000
)

type BotConfig struct {
	Token      string   `toml:"token"`
	ValidUsers []string `toml:"valid_users"`
}

type ServerConfig struct {
	HttpPort     int      `toml:"http_port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type NetConfig struct {
	ApiURL    string `toml:"api_url"`
	Timeout   int    `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

type LogConfig struct {
	Path  string `toml:"log_path"`
	File  string `toml:"log_file"`
	Level string `toml:"log_level"`
}

type ViewConfig struct {
	PageSize    int `toml:"page_size"`
	IdleMinutes int `toml:"idle_minutes"`
	MaxSessions int `toml:"max_sessions"`
}

type Config struct {
	Bot    BotConfig    `toml:"bot"`
	Server ServerConfig `toml:"server"`
	Net    NetConfig    `toml:"net"`
	Log    LogConfig    `toml:"log"`
	View   ViewConfig   `toml:"view"`
}

func (c *NetConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *ViewConfig) IdleDuration() time.Duration {
	return time.Duration(c.IdleMinutes) * time.Minute
}

// Default returns a config usable without any config.toml.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func LoadConfig(path string) *Config {
	var config Config
	data, err := toml.DecodeFile(path, &config)
	if err != nil {
		fmt.Println(data, err)
	}
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	if c.Net.ApiURL == "" {
		c.Net.ApiURL = DefaultApiURL
	}
	if c.Net.Timeout <= 0 {
		c.Net.Timeout = DefaultTimeout
	}
	if c.Server.HttpPort == 0 {
		c.Server.HttpPort = DefaultHttpPort
	}
	if c.View.PageSize <= 0 {
		c.View.PageSize = DefaultPageSize
	}
	if c.View.IdleMinutes <= 0 {
		c.View.IdleMinutes = DefaultIdleMinutes
	}
	if c.View.MaxSessions <= 0 {
		c.View.MaxSessions = DefaultMaxSessions
	}
}
