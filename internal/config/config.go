package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"checkers/internal/engine"
)

type Config struct {
	Addr           string `json:"addr"`
	WebDir         string `json:"web_dir"`
	MobileWebDir   string `json:"mobile_web_dir"`
	AIDepth        int    `json:"ai_depth"`
	AIParallel     bool   `json:"ai_parallel"`
	AIWorkers      int    `json:"ai_workers"`
	AITimeLimitMs  int    `json:"ai_time_limit_ms"` // 0 表示不限时
	LogSearchStats bool   `json:"log_search_stats"`
	DefaultMode    string `json:"default_mode"` // "pvp" / "pve"
	OpenBrowser    bool   `json:"open_browser"`
}

func DefaultConfig() Config {
	return Config{
		Addr:        ":2888",
		WebDir:      "./web",
		AIDepth:     engine.DefaultMaxDepth,
		DefaultMode: "pve",
		OpenBrowser: true,
	}
}

// Load 读取 JSON 配置，文件里没写的字段保留默认值；文件不存在时直接用默认配置
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	if c.AIDepth < 1 {
		return fmt.Errorf("%w: ai_depth must be >= 1, got %d", ErrInvalidConfig, c.AIDepth)
	}
	if c.AIWorkers < 0 || c.AITimeLimitMs < 0 {
		return fmt.Errorf("%w: negative ai_workers or ai_time_limit_ms", ErrInvalidConfig)
	}
	switch c.DefaultMode {
	case "pvp", "pve":
	default:
		return fmt.Errorf("%w: unknown default_mode %q", ErrInvalidConfig, c.DefaultMode)
	}
	return nil
}

// Search 转成引擎参数
func (c Config) Search() engine.SearchConfig {
	return engine.SearchConfig{
		MaxDepth:  c.AIDepth,
		Parallel:  c.AIParallel,
		Workers:   c.AIWorkers,
		TimeLimit: time.Duration(c.AITimeLimitMs) * time.Millisecond,
		LogStats:  c.LogSearchStats,
	}
}

type Store struct {
	mu     sync.RWMutex
	config Config
}

func NewStore(c Config) *Store {
	return &Store{config: c}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) Update(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.config = c
	s.mu.Unlock()
	return nil
}
