package game

import (
	"sync"
	"sync/atomic"

	"github.com/pixil98/solace/internal/actions"
)

// PlayerState holds all mutable state for an active player.
//
// The play state, global cooldown and casting flags are touched by clock
// callbacks and are atomics. Everything else is guarded by mu.
type PlayerState struct {
	charId string
	char   *Character

	mu      sync.RWMutex
	current map[actions.Resource]int
	room    *Room
	prompt  string
	combo   string
	ledger  map[string]uint64

	state   atomic.Int32
	gcd     atomic.Bool
	casting atomic.Bool

	// Closed to signal the active Play() goroutine to exit.
	done chan struct{}
}

// NewPlayerState creates a player at full resources, standing.
func NewPlayerState(charId string, char *Character) *PlayerState {
	ps := &PlayerState{
		charId:  charId,
		char:    char,
		current: make(map[actions.Resource]int, len(char.Max)),
		prompt:  char.Prompt,
		ledger:  make(map[string]uint64),
		done:    make(chan struct{}),
	}
	for r, max := range char.Max {
		ps.current[r] = max
	}
	return ps
}

func (p *PlayerState) Id() string            { return p.charId }
func (p *PlayerState) Name() string          { return p.char.Name }
func (p *PlayerState) Character() *Character { return p.char }

func (p *PlayerState) IsAlive() bool {
	return p.Resource(actions.ResourceHP) > 0
}

// SetFighting moves the player into or out of the fighting state.
func (p *PlayerState) SetFighting(fighting bool) {
	if fighting {
		p.state.Store(int32(actions.StateFighting))
		return
	}
	p.state.CompareAndSwap(int32(actions.StateFighting), int32(actions.StateStanding))
}

func (p *PlayerState) PlayState() actions.PlayState {
	return actions.PlayState(p.state.Load())
}

// SetPlayState changes what the player is doing. It will not take a player
// out of a fight; the battle does that.
func (p *PlayerState) SetPlayState(s actions.PlayState) bool {
	for {
		cur := p.state.Load()
		if actions.PlayState(cur) == actions.StateFighting {
			return false
		}
		if p.state.CompareAndSwap(cur, int32(s)) {
			return true
		}
	}
}

// Room returns the room the player is in.
func (p *PlayerState) Room() actions.Room {
	r := p.CurrentRoom()
	if r == nil {
		return nil
	}
	return r
}

// CurrentRoom returns the player's room as its concrete type.
func (p *PlayerState) CurrentRoom() *Room {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.room
}

func (p *PlayerState) setRoom(r *Room) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.room = r
}

// Prompt returns the session's prompt format, or DefaultPrompt if none is set.
func (p *PlayerState) Prompt() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.prompt == "" {
		return DefaultPrompt
	}
	return p.prompt
}

// SetPrompt changes the prompt for this session only.
func (p *PlayerState) SetPrompt(format string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompt = format
}

func (p *PlayerState) Resource(r actions.Resource) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current[r]
}

func (p *PlayerState) MaxResource(r actions.Resource) int {
	return p.char.Max[r]
}

// SetResource sets the current value of a pool, clamped to [0, max].
func (p *PlayerState) SetResource(r actions.Resource, v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current[r] = clamp(v, p.char.Max[r])
}

// Regenerate restores pct percent of each pool's maximum, at least 1 point.
func (p *PlayerState) Regenerate(pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for r, max := range p.char.Max {
		if p.current[r] >= max {
			continue
		}
		amount := max * pct / 100
		if amount < 1 {
			amount = 1
		}
		p.current[r] = clamp(p.current[r]+amount, max)
	}
}

func (p *PlayerState) HasPassive(name string) bool {
	return p.char.HasPassive(name)
}

func (p *PlayerState) HasAction(name string) bool {
	_, ok := p.char.Actions[name]
	return ok
}

func (p *PlayerState) ActionLevel(name string) int {
	return p.char.Actions[name]
}

func (p *PlayerState) CooldownAt(name string, readyAt uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ledger[name] = readyAt
}

func (p *PlayerState) CooldownReadyAt(name string) uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ledger[name]
}

func (p *PlayerState) OnGlobalCooldown() bool   { return p.gcd.Load() }
func (p *PlayerState) SetGlobalCooldown(v bool) { p.gcd.Store(v) }

func (p *PlayerState) ComboAction() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.combo
}

func (p *PlayerState) SetComboAction(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.combo = name
}

func (p *PlayerState) IsCasting() bool   { return p.casting.Load() }
func (p *PlayerState) SetCasting(v bool) { p.casting.Store(v) }

// Done returns the channel that is closed when this session is ended.
func (p *PlayerState) Done() <-chan struct{} {
	return p.done
}

// Kick closes the done channel, signaling the active Play() goroutine to exit.
// It is safe to call multiple times; subsequent calls are no-ops.
func (p *PlayerState) Kick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		// already closed
	default:
		close(p.done)
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
