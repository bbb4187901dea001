package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"checkers/internal/checkers"
	"checkers/internal/engine"
	"checkers/internal/server/game"
)

// Handler 持有对局和引擎，路由见 NewRouter
type Handler struct {
	games       *game.Manager
	engine      *engine.Engine
	hub         *Hub
	defaultMode game.Mode
}

func NewHandler(e *engine.Engine, defaultMode game.Mode) *Handler {
	if _, ok := game.ParseMode(string(defaultMode)); !ok {
		defaultMode = game.ModePvE
	}
	return &Handler{
		games:       game.NewManager(),
		engine:      e,
		hub:         NewHub(),
		defaultMode: defaultMode,
	}
}

func (h *Handler) Engine() *engine.Engine { return h.engine }
func (h *Handler) Games() *game.Manager   { return h.games }
func (h *Handler) Hub() *Hub              { return h.hub }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[server] writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// 取 URL 里的对局；找不到时已经写好 404
func (h *Handler) gameFromRequest(w http.ResponseWriter, r *http.Request) (*game.GameState, bool) {
	g, err := h.games.Get(chi.URLParam(r, "gameID"))
	if err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return g, true
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
	}

	mode := h.defaultMode
	if req.Mode != "" {
		m, ok := game.ParseMode(req.Mode)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown mode")
			return
		}
		mode = m
	}
	humanSide := checkers.Red
	if req.HumanSide != "" {
		side, ok := checkers.ParseTurn(req.HumanSide)
		if !ok || side == checkers.GameOver {
			writeError(w, http.StatusBadRequest, "unknown side")
			return
		}
		humanSide = side
	}

	g := h.games.NewGame(mode, humanSide)
	log.Printf("[server] new game %s mode=%s human=%v", g.ID, mode, humanSide)

	// 人类执黑时 AI 先走
	if _, err := g.AutoPlay(r.Context(), h.engine); err != nil {
		log.Printf("[server] game %s: opening AI move failed: %v", g.ID, err)
	}
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

func (h *Handler) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListGamesResponse{Games: h.games.List()})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	if err := h.games.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.hub.CloseGame(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	if errRow != nil || errCol != nil {
		writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}
	from := checkers.Pos(row, col)
	moves := g.LegalMoves(from)
	if moves == nil {
		moves = []checkers.Move{}
	}
	writeJSON(w, http.StatusOK, LegalMovesResponse{From: from, Moves: moves})
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	resp := MoveResponse{Applied: g.Play(req.From, req.To)}
	if resp.Applied {
		h.hub.Publish(g.ID, g.Snapshot())
		results, err := g.AutoPlay(r.Context(), h.engine)
		if err != nil {
			log.Printf("[server] game %s: AI reply failed: %v", g.ID, err)
		}
		if len(results) > 0 {
			resp.AIMoves = resultsToDTO(results)
			h.hub.Publish(g.ID, g.Snapshot())
		}
	}
	resp.State = g.Snapshot()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAIMove(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}

	res, err := g.AIMove(r.Context(), h.engine)
	switch {
	case errors.Is(err, game.ErrNotAITurn):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search timed out")
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	resp := AIMoveResponse{Applied: res.Applied}
	if res.Applied {
		dto := resultToDTO(res)
		resp.Move = &dto
		h.hub.Publish(g.ID, g.Snapshot())
	}
	resp.State = g.Snapshot()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, LogResponse{Log: g.Snapshot().Log})
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}
	serveWS(h.hub, g, w, r)
}
