package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"checkers/internal/engine"
	"checkers/internal/server/game"
)

func newTestServer(t *testing.T, mode game.Mode) (*Handler, *httptest.Server) {
	t.Helper()
	h := NewHandler(engine.NewEngine(engine.SearchConfig{}), mode)
	srv := httptest.NewServer(NewRouter(h, "", ""))
	t.Cleanup(srv.Close)
	return h, srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response of %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func newGame(t *testing.T, srv *httptest.Server, req NewGameRequest) game.Snapshot {
	t.Helper()
	var snap game.Snapshot
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/games", req, &snap); code != http.StatusCreated {
		t.Fatalf("new game: status %d", code)
	}
	return snap
}

func TestNewGameAndState(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvP)
	snap := newGame(t, srv, NewGameRequest{})
	if snap.ID == "" || snap.Turn != "red" || len(snap.Tiles) != 64 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Tiles[1] != 3 || snap.Tiles[40] != 1 {
		t.Fatalf("initial layout wrong: %v", snap.Tiles)
	}

	var again game.Snapshot
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/games/"+snap.ID, nil, &again); code != http.StatusOK {
		t.Fatalf("state: status %d", code)
	}
	if again.Position != snap.Position {
		t.Fatalf("state differs from creation")
	}

	var list ListGamesResponse
	doJSON(t, http.MethodGet, srv.URL+"/api/games", nil, &list)
	if len(list.Games) != 1 || list.Games[0] != snap.ID {
		t.Fatalf("list: %+v", list)
	}
}

func TestLegalMovesEndpoint(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvP)
	snap := newGame(t, srv, NewGameRequest{})

	var resp LegalMovesResponse
	code := doJSON(t, http.MethodGet, srv.URL+"/api/games/"+snap.ID+"/moves?row=5&col=0", nil, &resp)
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(resp.Moves) != 1 || resp.Moves[0].To.Row != 4 || resp.Moves[0].To.Col != 1 || resp.Moves[0].Captured != nil {
		t.Fatalf("moves: %+v", resp.Moves)
	}

	var raw map[string]any
	doJSON(t, http.MethodGet, srv.URL+"/api/games/"+snap.ID+"/moves?row=0&col=0", nil, &raw)
	if moves, ok := raw["moves"].([]any); !ok || len(moves) != 0 {
		t.Fatalf("light square should give an empty list, got %v", raw["moves"])
	}

	if code := doJSON(t, http.MethodGet, srv.URL+"/api/games/"+snap.ID+"/moves?row=x", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad params: status %d", code)
	}
}

func TestMoveEndpoint(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvP)
	snap := newGame(t, srv, NewGameRequest{})
	url := srv.URL + "/api/games/" + snap.ID + "/move"

	var resp MoveResponse
	illegal := map[string]any{"from": map[string]int{"row": 5, "col": 0}, "to": map[string]int{"row": 3, "col": 2}}
	if code := doJSON(t, http.MethodPost, url, illegal, &resp); code != http.StatusOK {
		t.Fatalf("illegal move status %d", code)
	}
	if resp.Applied || resp.State.Position != snap.Position {
		t.Fatalf("illegal move changed state: %+v", resp)
	}

	legal := map[string]any{"from": map[string]int{"row": 5, "col": 0}, "to": map[string]int{"row": 4, "col": 1}}
	resp = MoveResponse{}
	doJSON(t, http.MethodPost, url, legal, &resp)
	if !resp.Applied || resp.State.Turn != "black" || len(resp.State.Log) != 1 {
		t.Fatalf("legal move: %+v", resp)
	}
	if len(resp.AIMoves) != 0 {
		t.Fatalf("pvp game must not trigger AI")
	}

	var logResp LogResponse
	doJSON(t, http.MethodGet, srv.URL+"/api/games/"+snap.ID+"/log", nil, &logResp)
	if len(logResp.Log) != 1 || logResp.Log[0].From.Row != 5 || logResp.Log[0].To.Col != 1 {
		t.Fatalf("log: %+v", logResp.Log)
	}
}

func TestPvEMoveTriggersAIReply(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvE)
	snap := newGame(t, srv, NewGameRequest{Mode: "pve", HumanSide: "red"})

	var resp MoveResponse
	legal := map[string]any{"from": map[string]int{"row": 5, "col": 2}, "to": map[string]int{"row": 4, "col": 3}}
	doJSON(t, http.MethodPost, srv.URL+"/api/games/"+snap.ID+"/move", legal, &resp)
	if !resp.Applied || len(resp.AIMoves) == 0 {
		t.Fatalf("expected AI reply: %+v", resp)
	}
	if resp.State.Turn != "red" {
		t.Fatalf("turn after AI reply: %s", resp.State.Turn)
	}
}

func TestHumanBlackGetsAIOpening(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvE)
	snap := newGame(t, srv, NewGameRequest{Mode: "pve", HumanSide: "black"})
	if snap.Turn != "black" || len(snap.Log) != 1 {
		t.Fatalf("AI should open for red: %+v", snap)
	}
}

func TestAIMoveEndpoint(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvP)
	snap := newGame(t, srv, NewGameRequest{})

	var resp AIMoveResponse
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/games/"+snap.ID+"/ai", nil, &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if !resp.Applied || resp.Move == nil || resp.State.Turn != "black" {
		t.Fatalf("ai move: %+v", resp)
	}
}

func TestAIMoveOnHumanTurnConflicts(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvE)
	snap := newGame(t, srv, NewGameRequest{Mode: "pve", HumanSide: "red"})
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/games/"+snap.ID+"/ai", nil, nil); code != http.StatusConflict {
		t.Fatalf("status %d want 409", code)
	}
}

func TestNotFoundAndBadRequests(t *testing.T) {
	_, srv := newTestServer(t, game.ModePvP)
	for _, path := range []string{"/api/games/nope", "/api/games/nope/log", "/api/games/nope/moves?row=1&col=0"} {
		if code := doJSON(t, http.MethodGet, srv.URL+path, nil, nil); code != http.StatusNotFound {
			t.Fatalf("%s: status %d", path, code)
		}
	}
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/games", NewGameRequest{Mode: "zzz"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad mode: status %d", code)
	}
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/games", NewGameRequest{HumanSide: "game_over"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad side: status %d", code)
	}
	if code := doJSON(t, http.MethodDelete, srv.URL+"/api/games/nope", nil, nil); code != http.StatusNotFound {
		t.Fatalf("delete missing: status %d", code)
	}
}

func TestWebSocketReceivesUpdates(t *testing.T) {
	h, srv := newTestServer(t, game.ModePvP)
	snap := newGame(t, srv, NewGameRequest{})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/" + snap.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() game.Snapshot {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "state" {
			t.Fatalf("unexpected message type %q", msg.Type)
		}
		var s game.Snapshot
		if err := json.Unmarshal(msg.Payload, &s); err != nil {
			t.Fatalf("payload: %v", err)
		}
		return s
	}

	if first := read(); first.Position != snap.Position {
		t.Fatalf("initial push differs")
	}
	if h.Hub().ClientCount(snap.ID) != 1 {
		t.Fatalf("client not registered")
	}

	legal := map[string]any{"from": map[string]int{"row": 5, "col": 0}, "to": map[string]int{"row": 4, "col": 1}}
	doJSON(t, http.MethodPost, srv.URL+"/api/games/"+snap.ID+"/move", legal, nil)
	if pushed := read(); pushed.Turn != "black" || len(pushed.Log) != 1 {
		t.Fatalf("pushed state: %+v", pushed)
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if again := read(); again.Turn != "black" {
		t.Fatalf("requested state: %+v", again)
	}
}

func TestStaticRedirect(t *testing.T) {
	h := NewHandler(engine.NewEngine(engine.SearchConfig{}), game.ModePvP)
	srv := httptest.NewServer(NewRouter(h, t.TempDir(), ""))
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	cases := []struct {
		name, path, ua, want string
	}{
		{"phone", "/", "Mozilla/5.0 (iPhone)", "/web_mobile/"},
		{"desktop", "/", "Mozilla/5.0 (X11; Linux x86_64)", "/web/"},
		{"view overrides phone", "/?view=web", "Mozilla/5.0 (iPhone)", "/web/"},
		{"view overrides desktop", "/?view=mobile", "Mozilla/5.0 (X11; Linux x86_64)", "/web_mobile/"},
		{"bare prefix", "/web_mobile", "", "/web_mobile/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+tc.path, nil)
			req.Header.Set("User-Agent", tc.ua)
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != tc.want {
				t.Fatalf("redirect: %d %s want %s", resp.StatusCode, resp.Header.Get("Location"), tc.want)
			}
			if len(resp.Cookies()) != 0 {
				t.Fatalf("redirect set cookies: %v", resp.Cookies())
			}
		})
	}
}
