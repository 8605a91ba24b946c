package combat

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrAlreadyFighting = errors.New("already engaged in a battle")
	ErrBattleOver      = errors.New("battle is over")
)

// Participant is anything that can be a member of a battle.
type Participant interface {
	Id() string
	Name() string
	IsAlive() bool
	SetFighting(bool)
}

// Battle groups participants engaged in mutual combat along with who each
// of them is attacking.
type Battle struct {
	id      string
	m       *Manager
	members map[string]Participant
	targets map[string]Participant
	over    bool
}

// Id returns the unique identifier of the battle.
func (b *Battle) Id() string { return b.id }

// Add brings p into the battle. A participant may only be in one battle.
func (b *Battle) Add(p Participant) error {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()

	if b.over {
		return ErrBattleOver
	}
	if _, ok := b.m.index[p.Id()]; ok {
		return ErrAlreadyFighting
	}

	b.join(p)
	return nil
}

// SetAttacking assigns target as the attacker's current target.
func (b *Battle) SetAttacking(attacker, target Participant) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()

	if _, ok := b.members[attacker.Id()]; !ok {
		return
	}
	b.targets[attacker.Id()] = target
}

// TargetFor returns who the given participant is attacking, or nil.
func (b *Battle) TargetFor(id string) Participant {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.targets[id]
}

// Contains reports whether the participant is a member of the battle.
func (b *Battle) Contains(id string) bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	_, ok := b.members[id]
	return ok
}

// Members returns a snapshot of the battle's participants.
func (b *Battle) Members() []Participant {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()

	members := make([]Participant, 0, len(b.members))
	for _, p := range b.members {
		members = append(members, p)
	}
	return members
}

// join must be called while holding the manager lock.
func (b *Battle) join(p Participant) {
	b.members[p.Id()] = p
	b.m.index[p.Id()] = b
	p.SetFighting(true)
}

// leave must be called while holding the manager lock.
func (b *Battle) leave(id string) {
	p, ok := b.members[id]
	if !ok {
		return
	}
	delete(b.members, id)
	delete(b.targets, id)
	delete(b.m.index, id)
	p.SetFighting(false)

	// Retarget anyone who was attacking the departed participant.
	for attackerId, target := range b.targets {
		if target.Id() == id {
			b.targets[attackerId] = b.findAttackerOf(attackerId)
			if b.targets[attackerId] == nil {
				delete(b.targets, attackerId)
			}
		}
	}
}

// findAttackerOf returns a member currently attacking the given participant.
func (b *Battle) findAttackerOf(id string) Participant {
	for attackerId, target := range b.targets {
		if target != nil && target.Id() == id {
			return b.members[attackerId]
		}
	}
	return nil
}

// Manager tracks every battle in progress and which battle each participant
// belongs to.
type Manager struct {
	mu      sync.Mutex
	battles map[string]*Battle
	index   map[string]*Battle
}

// NewManager creates a new combat Manager.
func NewManager() *Manager {
	return &Manager{
		battles: make(map[string]*Battle),
		index:   make(map[string]*Battle),
	}
}

// BattleFor returns the battle the participant is in, or nil.
func (m *Manager) BattleFor(id string) *Battle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index[id]
}

// Initiate starts a new battle between attacker and target, each attacking
// the other.
func (m *Manager) Initiate(attacker, target Participant) (*Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[attacker.Id()]; ok {
		return nil, ErrAlreadyFighting
	}
	if _, ok := m.index[target.Id()]; ok {
		return nil, ErrAlreadyFighting
	}

	b := &Battle{
		id:      uuid.New().String(),
		m:       m,
		members: make(map[string]Participant),
		targets: make(map[string]Participant),
	}
	b.join(attacker)
	b.join(target)
	b.targets[attacker.Id()] = target
	b.targets[target.Id()] = attacker
	m.battles[b.id] = b

	slog.Info("battle started", "battle", b.id, "attacker", attacker.Name(), "target", target.Name())
	return b, nil
}

// Remove takes the participant out of whatever battle it is in.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.index[id]
	if !ok {
		return
	}
	b.leave(id)
	m.endIfDecided(b)
}

// Count returns the number of battles in progress.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.battles)
}

// Tick drops dead participants and ends battles that no longer have two
// living members.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.battles {
		for id, p := range b.members {
			if !p.IsAlive() {
				b.leave(id)
			}
		}
		m.endIfDecided(b)
	}

	return nil
}

// endIfDecided must be called while holding the manager lock.
func (m *Manager) endIfDecided(b *Battle) {
	if len(b.members) >= 2 {
		return
	}
	for id := range b.members {
		b.leave(id)
	}
	b.over = true
	delete(m.battles, b.id)
	slog.Info("battle ended", "battle", b.id)
}
