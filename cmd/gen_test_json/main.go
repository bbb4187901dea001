package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"checkers/internal/checkers"
)

// SquareMoves 某个格子的合法走法，给前端的走子提示测试用
type SquareMoves struct {
	From  checkers.Position `json:"from"`
	Moves []checkers.Move   `json:"moves"`
}

type TestCase struct {
	Position string        `json:"position"`
	Tiles    []int         `json:"tiles"`
	Turn     string        `json:"turn"`
	Legal    []SquareMoves `json:"legal"`
	Played   *MoveDTO      `json:"played,omitempty"`
}

type MoveDTO struct {
	From     checkers.Position  `json:"from"`
	To       checkers.Position  `json:"to"`
	Captured *checkers.Position `json:"captured,omitempty"`
}

func snapshot(b *checkers.Board) TestCase {
	tc := TestCase{
		Position: b.Encode(),
		Tiles:    b.Tiles(),
		Turn:     b.Turn.String(),
	}
	for r := 0; r < checkers.Size; r++ {
		for c := 0; c < checkers.Size; c++ {
			p := checkers.Pos(r, c)
			if moves := b.LegalMoves(p); len(moves) > 0 {
				tc.Legal = append(tc.Legal, SquareMoves{From: p, Moves: moves})
			}
		}
	}
	return tc
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("maxmoves", 300, "move cap per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	out := flag.String("o", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		b := checkers.NewBoard()
		for moveCount := 0; moveCount < *maxMoves; moveCount++ {
			tc := snapshot(b)
			legalMoves := b.MovesForSide()
			if len(legalMoves) == 0 {
				b.DetectGameOver()
				tc.Turn = b.Turn.String()
				testCases = append(testCases, tc)
				break
			}

			// 随机选一步
			mv := legalMoves[rng.Intn(len(legalMoves))]
			tc.Played = &MoveDTO{From: mv.From, To: mv.To, Captured: mv.Captured}
			testCases = append(testCases, tc)

			if !b.ApplyMove(mv.From, mv.To) {
				log.Fatalf("[gen] generated move rejected: %+v", mv)
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("[gen] marshal: %v", err)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		log.Fatalf("[gen] write %s: %v", *out, err)
	}
	fmt.Printf("Generated %d test cases from %d random games (seed %d) to %s\n", len(testCases), *numGames, *seed, *out)
}
