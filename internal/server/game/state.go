package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

type Mode string

const (
	ModePvP Mode = "pvp"
	ModePvE Mode = "pve"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePvP, ModePvE:
		return Mode(s), true
	}
	return "", false
}

var ErrNotAITurn = errors.New("not the AI's turn")

type GameState struct {
	mu sync.Mutex

	ID        string
	Mode      Mode
	HumanSide checkers.Turn // 只在 pve 下有意义
	Board     *checkers.Board
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot 对外展示用的只读快照
type Snapshot struct {
	ID        string              `json:"game_id"`
	Mode      Mode                `json:"mode"`
	HumanSide string              `json:"human_side,omitempty"`
	Tiles     []int               `json:"tiles"`
	Turn      string              `json:"turn"`
	Winner    string              `json:"winner,omitempty"`
	Position  string              `json:"position"`
	Log       []checkers.LogEntry `json:"log"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (g *GameState) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *GameState) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:        g.ID,
		Mode:      g.Mode,
		Tiles:     g.Board.Tiles(),
		Turn:      g.Board.Turn.String(),
		Position:  g.Board.Encode(),
		Log:       g.Board.History(),
		UpdatedAt: g.UpdatedAt,
	}
	if g.Mode == ModePvE {
		s.HumanSide = g.HumanSide.String()
	}
	if w, ok := g.Board.Winner(); ok {
		s.Winner = w.String()
	}
	if s.Log == nil {
		s.Log = []checkers.LogEntry{}
	}
	return s
}

func (g *GameState) LegalMoves(p checkers.Position) []checkers.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Board.LegalMoves(p)
}

// Play 人类走子；非法走法直接忽略（返回 false），不算错误
func (g *GameState) Play(from, to checkers.Position) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Mode == ModePvE && g.Board.Turn != g.HumanSide {
		return false
	}
	if !g.Board.ApplyMove(from, to) {
		return false
	}
	g.Board.DetectGameOver()
	g.UpdatedAt = time.Now()
	return true
}

// AIMove 让引擎走一步（吃子后不会自动连走）
func (g *GameState) AIMove(ctx context.Context, e *engine.Engine) (engine.SearchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Mode == ModePvE && g.Board.Turn == g.HumanSide {
		return engine.SearchResult{}, ErrNotAITurn
	}
	return g.aiMoveLocked(ctx, e)
}

func (g *GameState) aiMoveLocked(ctx context.Context, e *engine.Engine) (engine.SearchResult, error) {
	res, err := e.ChooseMoveContext(ctx, g.Board)
	if err != nil {
		return res, err
	}
	g.Board.DetectGameOver()
	if res.Applied {
		g.UpdatedAt = time.Now()
	}
	return res, nil
}

// AutoPlay pve 下轮到 AI 就一直走，吃子保留回合时会连走多步
func (g *GameState) AutoPlay(ctx context.Context, e *engine.Engine) ([]engine.SearchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []engine.SearchResult
	if g.Mode != ModePvE {
		return out, nil
	}
	for g.Board.Turn == g.HumanSide.Opposite() {
		res, err := g.aiMoveLocked(ctx, e)
		if err != nil {
			return out, err
		}
		if !res.Applied {
			break
		}
		out = append(out, res)
	}
	return out, nil
}
