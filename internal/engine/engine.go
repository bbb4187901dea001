package engine

import (
	"runtime"
	"time"
)

// DefaultMaxDepth 搜索层数上限（ply）
const DefaultMaxDepth = 7

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply），也决定剪枝阈值
	Parallel  bool          // 根节点并行
	Workers   int           // 并行时的 goroutine 上限，0 表示 NumCPU
	TimeLimit time.Duration // 0 表示不限制；超时整次搜索作废，不落子
	LogStats  bool          // 每次落子后打印统计
}

type Engine struct {
	cfg SearchConfig
}

func NewEngine(cfg SearchConfig) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() SearchConfig {
	return e.cfg
}

// Stats 一次搜索的计数
type Stats struct {
	MovesConsidered int64 `json:"moves_considered"`
	Iterations      int64 `json:"iterations"`
	TurnsPruned     int64 `json:"turns_pruned"`
	TurnsPlayed     int64 `json:"turns_played"`
}

func (s *Stats) add(o Stats) {
	s.MovesConsidered += o.MovesConsidered
	s.Iterations += o.Iterations
	s.TurnsPruned += o.TurnsPruned
	s.TurnsPlayed += o.TurnsPlayed
}
