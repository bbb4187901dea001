package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"checkers/internal/engine"
)

func main() {
	totalGames := flag.Int("games", 2, "number of games to play")
	redDepth := flag.Int("red-depth", engine.DefaultMaxDepth, "search depth for the first player")
	blackDepth := flag.Int("black-depth", engine.DefaultMaxDepth, "search depth for the second player")
	maxMoves := flag.Int("maxmoves", 200, "max moves per game before declaring a draw")
	parallel := flag.Bool("parallel", false, "search root moves in parallel")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	playerA := newPlayer(*redDepth, *parallel)
	playerB := newPlayer(*blackDepth, *parallel)
	if playerA.Name == playerB.Name {
		playerA.Name += " #1"
		playerB.Name += " #2"
	}

	aWins, bWins, draws := 0, 0, 0
	start := time.Now()
	for g := 0; g < *totalGames; g++ {
		// 每局换边
		red, black := playerA, playerB
		if g%2 == 1 {
			red, black = playerB, playerA
		}

		fmt.Printf("\n=== Game %d: Red [%s] vs Black [%s] ===\n", g+1, red.Name, black.Name)
		res := playGame(red, black, *maxMoves, *verbose)
		fmt.Printf("Result: %s after %d moves, material %+d (red perspective)\n", res.Outcome, res.Moves, res.Material)

		switch {
		case res.Winner == nil:
			draws++
		case res.Winner == playerA:
			aWins++
		default:
			bWins++
		}
	}

	fmt.Printf("\n=== Final Score (%v) ===\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s: %d\n", playerA.Name, aWins)
	fmt.Printf("%s: %d\n", playerB.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
	log.Println("Selfplay finished.")
}
