package player

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/solace/internal/actions"
	"github.com/pixil98/solace/internal/clock"
	"github.com/pixil98/solace/internal/combat"
	"github.com/pixil98/solace/internal/game"
	"github.com/pixil98/solace/internal/messaging"
	"github.com/pixil98/solace/internal/storage"
)

// fakeBus delivers published data in memory and routes wildcard
// subscriptions by prefix.
type fakeBus struct {
	mu   sync.Mutex
	subs map[string]func(string, []byte)
	out  map[string][]string
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		subs: map[string]func(string, []byte){},
		out:  map[string][]string{},
	}
}

func (b *fakeBus) Subscribe(subject string, handler func(string, []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[subject] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, subject)
	}, nil
}

func (b *fakeBus) Publish(subject string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out[subject] = append(b.out[subject], string(data))
	return nil
}

func (b *fakeBus) deliver(subject string, data string) {
	b.mu.Lock()
	var handler func(string, []byte)
	for pattern, h := range b.subs {
		if strings.HasPrefix(subject, strings.TrimSuffix(pattern, "*")) {
			handler = h
		}
	}
	b.mu.Unlock()

	if handler != nil {
		handler(subject, []byte(data))
	}
}

func (b *fakeBus) subscriptions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *fakeBus) received(subject string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.out[subject]...)
}

// sawMessage reports whether any message on subject contains substr.
func (b *fakeBus) sawMessage(subject, substr string) bool {
	for _, msg := range b.received(subject) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

type env struct {
	clk     *clock.Clock
	battles *combat.Manager
	bus     *fakeBus
	exec    *actions.Executor
	reg     *actions.Registry
	chars   storage.Storer[*game.Character]
	world   *game.World
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		clk:     clock.New(),
		battles: combat.NewManager(),
		bus:     newFakeBus(),
		world:   game.NewWorld(),
	}
	e.exec = actions.NewExecutor(e.clk, e.battles, messaging.NewNatsPublisher(e.bus))

	reg, err := actions.NewRegistry(storage.NewMemoryStore(map[string]*actions.Descriptor{
		"slash": {Kind: actions.KindAttack, Cooldown: actions.GlobalCooldown, BasePotency: 100},
		"coup": {
			DisplayName:     "coup de grace",
			Kind:            actions.KindAttack,
			Cooldown:        120,
			BasePotency:     500,
			InitiatesCombat: true,
			Costs:           []actions.Cost{actions.FlatCost(actions.ResourceSP, 10)},
		},
	}))
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	e.reg = reg

	pools := func() map[actions.Resource]int {
		return map[actions.Resource]int{actions.ResourceHP: 100, actions.ResourceMP: 50, actions.ResourceSP: 20}
	}
	e.chars = storage.NewMemoryStore(map[string]*game.Character{
		"ann": {Name: "Ann", Max: pools(), Actions: map[string]int{"slash": 0, "coup": 0}},
		"bob": {Name: "Bob", Max: pools()},
	})

	return e
}

// newPlayer places the character in the world without starting a goroutine.
func (e *env) newPlayer(t *testing.T, charId string) *Player {
	t.Helper()

	ps, err := e.world.AddPlayer(charId, e.chars.Get(charId))
	if err != nil {
		t.Fatalf("adding player: %v", err)
	}
	return &Player{
		charId:  charId,
		state:   ps,
		cmds:    e.reg.CommandsFor(ps, e.exec),
		exec:    e.exec,
		clock:   e.clk,
		battles: e.battles,
		msgr:    messaging.NewNatsPublisher(e.bus),
		input:   make(chan string, inputBuffer),
	}
}

func (e *env) last(charId string) string {
	msgs := e.bus.received(messaging.PlayerSubject(charId))
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}
