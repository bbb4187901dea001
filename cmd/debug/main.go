package main

import (
	"flag"
	"fmt"
	"log"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial position)")
	depth := flag.Int("depth", 0, "if > 0, also run a search at this depth")
	flag.Parse()

	b := checkers.NewBoard()
	if *fen != "" {
		var err error
		if b, err = checkers.DecodeBoard(*fen); err != nil {
			log.Fatalf("[debug] %v", err)
		}
	}

	fmt.Println(b)
	fmt.Println("FEN:", b.Encode())
	fmt.Println("Turn:", b.Turn)
	fmt.Println("Material (red):", engine.Material(b))

	moves := b.MovesForSide()
	fmt.Println("Legal moves:", len(moves))
	for _, mv := range moves {
		if mv.HasCapture() {
			fmt.Printf("  (%d,%d) -> (%d,%d) x (%d,%d)\n", mv.From.Row, mv.From.Col, mv.To.Row, mv.To.Col, mv.Captured.Row, mv.Captured.Col)
		} else {
			fmt.Printf("  (%d,%d) -> (%d,%d)\n", mv.From.Row, mv.From.Col, mv.To.Row, mv.To.Col)
		}
	}

	if *depth > 0 {
		e := engine.NewEngine(engine.SearchConfig{MaxDepth: *depth})
		res := e.ChooseMove(b)
		if !res.Applied {
			fmt.Println("Search: no move")
			return
		}
		fmt.Printf("Search: (%d,%d) -> (%d,%d) score=%d stats=%+v time=%v\n",
			res.Move.From.Row, res.Move.From.Col, res.Move.To.Row, res.Move.To.Col, res.Score, res.Stats, res.TimeUsed)
		fmt.Println(b)
	}
}
