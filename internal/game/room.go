package game

import (
	"slices"
	"strings"
	"sync"

	"github.com/pixil98/solace/internal/actions"
)

// Room is a location players occupy. Rooms are created on demand.
type Room struct {
	id string

	mu      sync.RWMutex
	players map[string]*PlayerState
}

// NewRoom creates an empty room.
func NewRoom(id string) *Room {
	return &Room{id: id, players: make(map[string]*PlayerState)}
}

func (r *Room) Id() string { return r.id }

// AddPlayer places the player in the room.
func (r *Room) AddPlayer(ps *PlayerState) {
	r.mu.Lock()
	r.players[ps.Id()] = ps
	r.mu.Unlock()

	ps.setRoom(r)
}

// RemovePlayer takes the player out of the room.
func (r *Room) RemovePlayer(charId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, charId)
}

// Players returns the room's occupants sorted by name.
func (r *Room) Players() []*PlayerState {
	r.mu.RLock()
	players := make([]*PlayerState, 0, len(r.players))
	for _, ps := range r.players {
		players = append(players, ps)
	}
	r.mu.RUnlock()

	slices.SortFunc(players, func(a, b *PlayerState) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})
	return players
}

// FindPlayer returns the player whose name matches, preferring an exact
// (case-insensitive) match over a prefix match.
func (r *Room) FindPlayer(name string) actions.Player {
	ps := r.find(name, func(*PlayerState) bool { return true })
	if ps == nil {
		return nil
	}
	return ps
}

// FindPlayerIfVisible is FindPlayer limited to players the viewer can see.
func (r *Room) FindPlayerIfVisible(name string, viewer actions.Player) actions.Player {
	if viewer != nil && viewer.PlayState() == actions.StateSleeping {
		return nil
	}

	ps := r.find(name, func(ps *PlayerState) bool {
		if viewer != nil && ps.Id() == viewer.Id() {
			return true
		}
		return !ps.Character().Invisible
	})
	if ps == nil {
		return nil
	}
	return ps
}

func (r *Room) find(name string, visible func(*PlayerState) bool) *PlayerState {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	var prefix *PlayerState
	for _, ps := range r.Players() {
		if !visible(ps) {
			continue
		}
		n := strings.ToLower(ps.Name())
		if n == name {
			return ps
		}
		if prefix == nil && strings.HasPrefix(n, name) {
			prefix = ps
		}
	}
	return prefix
}
