package game

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkers/internal/checkers"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame(mode Mode, humanSide checkers.Turn) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if humanSide != checkers.Black {
		humanSide = checkers.Red
	}
	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Mode:      mode,
		HumanSide: humanSide,
		Board:     checkers.NewBoard(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

// List 按创建时间排序的 ID
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	games := make([]*GameState, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}
