// Package bridge 给宿主（wasm / gomobile / 脚本）用的扁平接口：
// 参数只有 int，返回值只有 string / bool，棋盘由 Bridge 自己持有。
package bridge

import (
	"encoding/json"
	"log"
	"sync"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

type Bridge struct {
	mu     sync.Mutex
	board  *checkers.Board
	engine *engine.Engine
}

// New 创建一个已摆好初始局面的 Bridge；depth <= 0 用默认深度
func New(depth int) *Bridge {
	return &Bridge{
		board:  checkers.NewBoard(),
		engine: engine.NewEngine(engine.SearchConfig{MaxDepth: depth}),
	}
}

// Initialize 重新开局
func (b *Bridge) Initialize() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.board = checkers.NewBoard()
	return true
}

// GetTiles 64 个格子的编码，行优先，JSON 数组
func (b *Bridge) GetTiles() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return marshal(b.board.Tiles())
}

// GetTurn "red" / "black" / "game_over"
func (b *Bridge) GetTurn() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.board.Turn.String()
}

// GetPossibleMoves [{"destination":{...},"captured":{...}|null}, ...]
func (b *Bridge) GetPossibleMoves(row, col int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	moves := b.board.LegalMoves(checkers.Pos(row, col))
	if moves == nil {
		moves = []checkers.Move{}
	}
	return marshal(moves)
}

// MovePawn 非法走法被忽略，返回 false
func (b *Bridge) MovePawn(fromRow, fromCol, toRow, toCol int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.board.ApplyMove(checkers.Pos(fromRow, fromCol), checkers.Pos(toRow, toCol)) {
		return false
	}
	b.board.DetectGameOver()
	return true
}

// MakeAMove 让 AI 替当前一方走一步；没棋可走时返回 false
func (b *Bridge) MakeAMove() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := b.engine.ChooseMove(b.board)
	b.board.DetectGameOver()
	return res.Applied
}

func (b *Bridge) GetLog() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.board.History()
	if entries == nil {
		entries = []checkers.LogEntry{}
	}
	return marshal(entries)
}

// GetWinner 对局未结束时返回空串
func (b *Bridge) GetWinner() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w, ok := b.board.Winner(); ok {
		return w.String()
	}
	return ""
}

func marshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[bridge] marshal failed: %v", err)
		return "null"
	}
	return string(data)
}
