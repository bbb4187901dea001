package mobile

import (
	"log"
	"net/http"

	"checkers/internal/engine"
	"checkers/internal/server/bridge"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// depth: AI search depth, <= 0 for the default
func StartServer(webDir string, port string, depth int) {
	e := engine.NewEngine(engine.SearchConfig{MaxDepth: depth})
	h := httpserver.NewHandler(e, game.ModePvE)
	r := httpserver.NewRouter(h, webDir, webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, r); err != nil {
			log.Printf("[mobile] server error: %v", err)
		}
	}()
}

// Game is an offline game without the HTTP layer; all values cross the
// binding as ints and JSON strings.
type Game struct {
	b *bridge.Bridge
}

func NewGame(depth int) *Game {
	return &Game{b: bridge.New(depth)}
}

func (g *Game) Restart() { g.b.Initialize() }
func (g *Game) Tiles() string { return g.b.GetTiles() }
func (g *Game) Turn() string { return g.b.GetTurn() }
func (g *Game) Winner() string { return g.b.GetWinner() }
func (g *Game) PossibleMoves(row, col int) string { return g.b.GetPossibleMoves(row, col) }
func (g *Game) Move(fromRow, fromCol, toRow, toCol int) bool {
	return g.b.MovePawn(fromRow, fromCol, toRow, toCol)
}
func (g *Game) AIMove() bool { return g.b.MakeAMove() }
func (g *Game) Log() string { return g.b.GetLog() }
