package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"checkers/internal/server/game"
)

const wsIdlePingInterval = 30 * time.Second

// Hub 按对局分组的 websocket 客户端
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*Client]struct{}
}

type Client struct {
	gameID string
	send   chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.gameID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.gameID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.gameID]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.clients, c.gameID)
	}
}

// CloseGame 对局删除后断开它的所有客户端
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		close(c.send)
	}
	delete(h.clients, gameID)
}

func (h *Hub) ClientCount(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}

// Publish 把局面推给该对局的所有客户端；慢客户端直接丢消息
func (h *Hub) Publish(gameID string, s game.Snapshot) {
	msg := wsMessage{Type: "state", Payload: mustMarshal(s)}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		c.sendJSON(msg)
	}
}

// reply 只给还在册的客户端发，避免往已关闭的 channel 写
func (h *Hub) reply(c *Client, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.gameID][c]; ok {
		c.sendJSON(msg)
	}
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func serveWS(hub *Hub, g *game.GameState, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{gameID: g.ID, send: make(chan []byte, 16)}
	hub.Register(client)
	hub.reply(client, wsMessage{Type: "state", Payload: mustMarshal(g.Snapshot())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_state":
			hub.reply(client, wsMessage{Type: "state", Payload: mustMarshal(g.Snapshot())})
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
