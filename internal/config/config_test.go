package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"checkers/internal/engine"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
	if cfg.AIDepth != engine.DefaultMaxDepth {
		t.Fatalf("default depth %d", cfg.AIDepth)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeFile(t, `{"ai_depth": 5, "ai_parallel": true, "default_mode": "pvp"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AIDepth != 5 || !cfg.AIParallel || cfg.DefaultMode != "pvp" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Addr != DefaultConfig().Addr {
		t.Fatalf("addr lost its default: %q", cfg.Addr)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"syntax":   `{"ai_depth": `,
		"depth":    `{"ai_depth": 0}`,
		"mode":     `{"default_mode": "eve"}`,
		"negative": `{"ai_time_limit_ms": -1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if cfg != DefaultConfig() {
				t.Fatalf("bad file should fall back to defaults, got %+v", cfg)
			}
		})
	}

	_, err := Load(writeFile(t, `{"ai_depth": -3}`))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}

func TestSearchConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AIDepth = 4
	cfg.AITimeLimitMs = 1500
	cfg.LogSearchStats = true
	sc := cfg.Search()
	if sc.MaxDepth != 4 || sc.TimeLimit != 1500*time.Millisecond || !sc.LogStats {
		t.Fatalf("search config %+v", sc)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(DefaultConfig())
	next := s.Get()
	next.AIDepth = 3
	if err := s.Update(next); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.Get().AIDepth != 3 {
		t.Fatalf("update not visible")
	}

	bad := next
	bad.DefaultMode = ""
	if err := s.Update(bad); err == nil {
		t.Fatalf("invalid config accepted")
	}
	if s.Get().DefaultMode != "pve" {
		t.Fatalf("invalid update leaked into store")
	}
}
