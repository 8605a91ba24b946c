package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/solace/internal/actions"
	"github.com/pixil98/solace/internal/combat"
	"github.com/pixil98/solace/internal/game"
	"github.com/pixil98/solace/internal/messaging"
	"github.com/pixil98/solace/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Session subjects. Each is suffixed with the character id.
const (
	SubjectJoin  = "session.join"
	SubjectInput = "session.input"
	SubjectLeave = "session.leave"
)

// Bus is the message transport sessions arrive on and output leaves by.
type Bus interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
	Publish(subject string, data []byte) error
}

// Manager owns every connected player's command goroutine.
type Manager struct {
	bus      Bus
	ready    <-chan struct{}
	world    *game.World
	chars    storage.Storer[*game.Character]
	registry *actions.Registry
	exec     *actions.Executor
	battles  *combat.Manager
	clock    actions.Scheduler
	msgr     actions.Messenger

	mu      sync.Mutex
	ctx     context.Context
	group   *errgroup.Group
	players map[string]*Player
}

func NewManager(bus Bus, world *game.World, chars storage.Storer[*game.Character], registry *actions.Registry, exec *actions.Executor, battles *combat.Manager, clock actions.Scheduler, opts ...ManagerOpt) *Manager {
	m := &Manager{
		bus:      bus,
		world:    world,
		chars:    chars,
		registry: registry,
		exec:     exec,
		battles:  battles,
		clock:    clock,
		msgr:     messaging.NewNatsPublisher(bus),
		players:  make(map[string]*Player),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start satisfies service.Worker. It listens for sessions until ctx is done
// and then waits for every player goroutine to finish.
func (m *Manager) Start(ctx context.Context) error {
	if m.ready != nil {
		select {
		case <-m.ready:
		case <-ctx.Done():
			return nil
		}
	}

	m.mu.Lock()
	m.ctx = ctx
	m.group = &errgroup.Group{}
	m.mu.Unlock()

	var unsubs []func()
	handlers := map[string]func(string, []byte){
		SubjectJoin:  m.handleJoin,
		SubjectInput: m.handleInput,
		SubjectLeave: m.handleLeave,
	}
	for prefix, h := range handlers {
		unsub, err := m.bus.Subscribe(prefix+".*", h)
		if err != nil {
			for _, u := range unsubs {
				u()
			}
			return fmt.Errorf("subscribing to %s: %w", prefix, err)
		}
		unsubs = append(unsubs, unsub)
	}

	slog.InfoContext(ctx, "player manager accepting sessions")
	<-ctx.Done()

	for _, unsub := range unsubs {
		unsub()
	}

	// No more players can join once the group is cleared.
	m.mu.Lock()
	g := m.group
	m.group = nil
	m.mu.Unlock()

	return g.Wait()
}

// Join brings the character into the world and starts their goroutine.
func (m *Manager) Join(charId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.group == nil {
		return fmt.Errorf("player manager not started")
	}
	if _, ok := m.players[charId]; ok {
		return game.ErrPlayerExists
	}

	char := m.chars.Get(charId)
	if char == nil {
		return fmt.Errorf("character %q: %w", charId, game.ErrPlayerNotFound)
	}

	ps, err := m.world.AddPlayer(charId, char)
	if err != nil {
		return fmt.Errorf("adding %q to world: %w", charId, err)
	}

	p := &Player{
		charId:  charId,
		state:   ps,
		cmds:    m.registry.CommandsFor(ps, m.exec),
		exec:    m.exec,
		clock:   m.clock,
		battles: m.battles,
		msgr:    m.msgr,
		input:   make(chan string, inputBuffer),
	}
	m.players[charId] = p

	ctx := m.ctx
	m.group.Go(func() error {
		defer m.cleanup(charId)
		return p.Play(ctx)
	})

	slog.Info("player joined", "player", charId, "actions", len(p.cmds))
	return nil
}

// Input queues a line for the player.
func (m *Manager) Input(charId string, line string) error {
	p := m.GetPlayer(charId)
	if p == nil {
		return game.ErrPlayerNotFound
	}
	if !p.Queue(line) {
		m.msgr.Send(charId, "You are doing too much at once!")
	}
	return nil
}

// Leave ends the player's session.
func (m *Manager) Leave(charId string) error {
	if m.GetPlayer(charId) == nil {
		return game.ErrPlayerNotFound
	}
	m.cleanup(charId)
	return nil
}

// GetPlayer returns the connected player, or nil.
func (m *Manager) GetPlayer(charId string) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[charId]
}

// cleanup is safe to call more than once for the same player.
func (m *Manager) cleanup(charId string) {
	m.mu.Lock()
	_, ok := m.players[charId]
	delete(m.players, charId)
	m.mu.Unlock()

	if !ok {
		return
	}

	m.battles.Remove(charId)
	m.exec.Cooldowns().ClearPlayer(charId)
	if err := m.world.RemovePlayer(charId); err != nil && !errors.Is(err, game.ErrPlayerNotFound) {
		slog.Warn("removing player from world", "player", charId, "error", err)
	}
	slog.Info("player left", "player", charId)
}

func (m *Manager) handleJoin(subject string, _ []byte) {
	charId := subjectId(SubjectJoin, subject)
	if err := m.Join(charId); err != nil {
		slog.Warn("joining player", "player", charId, "error", err)
		m.msgr.Send(charId, "Unable to enter the game.")
	}
}

func (m *Manager) handleInput(subject string, data []byte) {
	charId := subjectId(SubjectInput, subject)
	if err := m.Input(charId, string(data)); err != nil {
		slog.Debug("input for unknown player", "player", charId)
	}
}

func (m *Manager) handleLeave(subject string, _ []byte) {
	charId := subjectId(SubjectLeave, subject)
	if err := m.Leave(charId); err != nil {
		slog.Debug("leave for unknown player", "player", charId)
	}
}

func subjectId(prefix, subject string) string {
	return strings.TrimPrefix(subject, prefix+".")
}
