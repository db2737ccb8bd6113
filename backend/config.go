package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr     = ":8080"
	defaultTickIntervalMs = 50
)

type Config struct {
	ListenAddr     string   `json:"listen_addr" yaml:"listen_addr"`
	AiDepth        int      `json:"ai_depth" yaml:"ai_depth"`
	TickIntervalMs int      `json:"tick_interval_ms" yaml:"tick_interval_ms"`
	GhostMode      bool     `json:"ghost_mode" yaml:"ghost_mode"`
	LogSearchStats bool     `json:"log_search_stats" yaml:"log_search_stats"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:     defaultListenAddr,
		AiDepth:        DefaultSearchDepth,
		TickIntervalMs: defaultTickIntervalMs,
		GhostMode:      true,
		LogSearchStats: true,
	}
}

// LoadConfig reads path over the defaults, then applies GOBANG_LISTEN_ADDR
// and GOBANG_AI_DEPTH. An empty or missing path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[config] %s not found, using defaults", path)
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg.normalized(), nil
}

func applyEnvOverrides(cfg *Config) error {
	if addr := os.Getenv("GOBANG_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if raw := os.Getenv("GOBANG_AI_DEPTH"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("GOBANG_AI_DEPTH=%q: %w", raw, err)
		}
		cfg.AiDepth = depth
	}
	return nil
}

func (c Config) normalized() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.AiDepth <= 0 {
		c.AiDepth = DefaultSearchDepth
	}
	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = defaultTickIntervalMs
	}
	return c
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// OriginAllowed reports whether a WebSocket upgrade from origin is accepted.
// An empty allow list accepts everything.
func (c Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 || origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig.normalized()
	c.mu.Unlock()
}
