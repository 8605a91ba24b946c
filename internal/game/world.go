package game

import (
	"context"
	"sync"

	"github.com/pixil98/solace/internal/actions"
)

// DefaultRoom is where characters without a saved room enter the world.
const DefaultRoom = "limbo"

// regenRates is the percentage of each pool restored per regeneration, by
// play state. Fighting players do not regenerate.
var regenRates = map[actions.PlayState]int{
	actions.StateStanding: 2,
	actions.StateSitting:  4,
	actions.StateResting:  6,
	actions.StateSleeping: 10,
}

// World is the single source of truth for who is online and where.
// All access must go through its methods to ensure thread-safety.
type World struct {
	mu      sync.RWMutex
	players map[string]*PlayerState
	rooms   map[string]*Room
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		players: make(map[string]*PlayerState),
		rooms:   make(map[string]*Room),
	}
}

// Room returns the room with the given id, creating it if needed.
func (w *World) Room(id string) *Room {
	if id == "" {
		id = DefaultRoom
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.rooms[id]
	if !ok {
		r = NewRoom(id)
		w.rooms[id] = r
	}
	return r
}

// GetPlayer returns the player state. Returns nil if player not found.
func (w *World) GetPlayer(charId string) *PlayerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.players[charId]
}

// AddPlayer creates the player's state and places them in their room.
func (w *World) AddPlayer(charId string, char *Character) (*PlayerState, error) {
	if char == nil {
		return nil, ErrNoCharacter
	}
	room := w.Room(char.Room)

	w.mu.Lock()
	if _, exists := w.players[charId]; exists {
		w.mu.Unlock()
		return nil, ErrPlayerExists
	}
	ps := NewPlayerState(charId, char)
	w.players[charId] = ps
	w.mu.Unlock()

	room.AddPlayer(ps)
	return ps, nil
}

// RemovePlayer removes a player from the world and from their room.
func (w *World) RemovePlayer(charId string) error {
	w.mu.Lock()
	ps, exists := w.players[charId]
	if !exists {
		w.mu.Unlock()
		return ErrPlayerNotFound
	}
	delete(w.players, charId)
	w.mu.Unlock()

	if r := ps.CurrentRoom(); r != nil {
		r.RemovePlayer(charId)
	}
	ps.Kick()
	return nil
}

// ForEachPlayer calls fn for each player in the world while holding the lock.
func (w *World) ForEachPlayer(fn func(string, *PlayerState)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for id, ps := range w.players {
		fn(id, ps)
	}
}

// Count returns the number of players online.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// Tick regenerates players who are not fighting.
func (w *World) Tick(ctx context.Context) error {
	w.ForEachPlayer(func(_ string, ps *PlayerState) {
		if rate, ok := regenRates[ps.PlayState()]; ok {
			ps.Regenerate(rate)
		}
	})
	return nil
}
