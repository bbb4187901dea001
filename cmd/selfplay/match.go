package main

import (
	"fmt"
	"log"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

type Player struct {
	Name   string
	Engine *engine.Engine
}

func newPlayer(depth int, parallel bool) *Player {
	e := engine.NewEngine(engine.SearchConfig{MaxDepth: depth, Parallel: parallel})
	return &Player{
		Name:   fmt.Sprintf("Negamax (Depth %d)", e.Config().MaxDepth),
		Engine: e,
	}
}

type GameResult struct {
	Winner   *Player // nil 表示和棋（步数上限）
	Outcome  string
	Moves    int
	Material int
}

// playGame 吃子后同一方继续走，所以这里按"半步"计数
func playGame(red, black *Player, maxMoves int, verbose bool) GameResult {
	return playFrom(checkers.NewBoard(), red, black, maxMoves, verbose)
}

func playFrom(b *checkers.Board, red, black *Player, maxMoves int, verbose bool) GameResult {
	seen := map[uint64]int{b.Hash(): 1}
	repetition := false

	for i := 0; i < maxMoves; i++ {
		if b.DetectGameOver() {
			break
		}
		current := red
		if b.Turn == checkers.Black {
			current = black
		}
		side := b.Turn

		res := current.Engine.ChooseMove(b)
		if !res.Applied {
			// 理论上 DetectGameOver 已经处理过
			log.Printf("[selfplay] %s has no move", side)
			b.DeclareGameOver(side.Opposite())
			break
		}
		if verbose {
			log.Printf("[selfplay] %3d %-5s %v -> %v captured=%v score=%d considered=%d pruned=%d time=%v",
				i+1, side, res.Move.From, res.Move.To, res.Move.HasCapture(), res.Score,
				res.Stats.MovesConsidered, res.Stats.TurnsPruned, res.TimeUsed)
		}

		// 同一局面第三次出现判和
		h := b.Hash()
		seen[h]++
		if seen[h] >= 3 {
			repetition = true
			break
		}
	}

	// 最后一步可能刚好分出胜负
	b.DetectGameOver()

	out := GameResult{Moves: len(b.History()), Material: engine.Material(b)}
	winner, ok := b.Winner()
	switch {
	case !ok && repetition:
		out.Outcome = "Draw (repetition)"
	case !ok:
		out.Outcome = "Draw (move limit)"
	case winner == checkers.Red:
		out.Winner, out.Outcome = red, "Red wins"
	default:
		out.Winner, out.Outcome = black, "Black wins"
	}
	return out
}
