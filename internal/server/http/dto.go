package httpserver

import (
	"checkers/internal/checkers"
	"checkers/internal/engine"
	"checkers/internal/server/game"
)

// NewGame 请求；mode 为空时用配置里的默认值
type NewGameRequest struct {
	Mode      string `json:"mode"`       // "pvp" / "pve"
	HumanSide string `json:"human_side"` // "red" / "black"，只在 pve 下用
}

// 前端用的招法结构
type MoveRequest struct {
	From checkers.Position `json:"from"`
	To   checkers.Position `json:"to"`
}

// 非法走法不算错误：applied=false，局面不变
type MoveResponse struct {
	Applied bool          `json:"applied"`
	AIMoves []AIMoveDTO   `json:"ai_moves,omitempty"`
	State   game.Snapshot `json:"state"`
}

type AIMoveDTO struct {
	From     checkers.Position  `json:"from"`
	To       checkers.Position  `json:"to"`
	Captured *checkers.Position `json:"captured,omitempty"`
	Score    int                `json:"score"`
	Stats    engine.Stats       `json:"stats"`
	TimeMs   int64              `json:"time_ms"`
}

type AIMoveResponse struct {
	Applied bool          `json:"applied"`
	Move    *AIMoveDTO    `json:"move,omitempty"`
	State   game.Snapshot `json:"state"`
}

type LegalMovesResponse struct {
	From  checkers.Position `json:"from"`
	Moves []checkers.Move   `json:"moves"`
}

type ListGamesResponse struct {
	Games []string `json:"games"`
}

type LogResponse struct {
	Log []checkers.LogEntry `json:"log"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func resultToDTO(r engine.SearchResult) AIMoveDTO {
	return AIMoveDTO{
		From:     r.Move.From,
		To:       r.Move.To,
		Captured: r.Move.Captured,
		Score:    r.Score,
		Stats:    r.Stats,
		TimeMs:   r.TimeUsed.Milliseconds(),
	}
}

func resultsToDTO(rs []engine.SearchResult) []AIMoveDTO {
	out := make([]AIMoveDTO, len(rs))
	for i, r := range rs {
		out[i] = resultToDTO(r)
	}
	return out
}
