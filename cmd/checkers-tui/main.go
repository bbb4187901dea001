package main

import (
	"flag"
	"log"

	"checkers/internal/checkers"
	"checkers/internal/tui"
)

func main() {
	depth := flag.Int("depth", 0, "AI search depth (0 = default)")
	parallel := flag.Bool("parallel", false, "search root moves in parallel")
	side := flag.String("side", "red", "side played by the human: red, black or none")
	flag.Parse()

	human := checkers.GameOver
	if *side != "none" {
		t, ok := checkers.ParseTurn(*side)
		if !ok || t == checkers.GameOver {
			log.Fatalf("unknown side %q", *side)
		}
		human = t
	}

	if err := tui.Run(tui.Options{Depth: *depth, Parallel: *parallel, HumanSide: human}); err != nil {
		log.Fatal(err)
	}
}
