package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/pixil98/solace/internal/clock"
	"github.com/pixil98/solace/internal/combat"
)

type fakePlayer struct {
	id       string
	state    PlayState
	room     *fakeRoom
	res      map[Resource]int
	max      map[Resource]int
	passives map[string]bool
	actions  map[string]int
	ledger   map[string]uint64
	gcd      bool
	casting  bool
	combo    string
}

func newFakePlayer(id string, actions ...string) *fakePlayer {
	p := &fakePlayer{
		id:       id,
		res:      map[Resource]int{ResourceHP: 1000, ResourceMP: 100, ResourceSP: 20},
		max:      map[Resource]int{ResourceHP: 1000, ResourceMP: 100, ResourceSP: 20},
		passives: map[string]bool{},
		actions:  map[string]int{},
		ledger:   map[string]uint64{},
	}
	for _, a := range actions {
		p.actions[a] = 0
	}
	return p
}

func (p *fakePlayer) Id() string    { return p.id }
func (p *fakePlayer) Name() string  { return p.id }
func (p *fakePlayer) IsAlive() bool { return p.res[ResourceHP] > 0 }
func (p *fakePlayer) SetFighting(v bool) {
	if v {
		p.state = StateFighting
	} else {
		p.state = StateStanding
	}
}
func (p *fakePlayer) PlayState() PlayState { return p.state }
func (p *fakePlayer) Room() Room {
	if p.room == nil {
		return nil
	}
	return p.room
}
func (p *fakePlayer) Resource(r Resource) int            { return p.res[r] }
func (p *fakePlayer) MaxResource(r Resource) int         { return p.max[r] }
func (p *fakePlayer) SetResource(r Resource, v int)      { p.res[r] = v }
func (p *fakePlayer) HasPassive(name string) bool        { return p.passives[name] }
func (p *fakePlayer) ActionLevel(name string) int        { return p.actions[name] }
func (p *fakePlayer) CooldownAt(name string, at uint64)  { p.ledger[name] = at }
func (p *fakePlayer) CooldownReadyAt(name string) uint64 { return p.ledger[name] }
func (p *fakePlayer) OnGlobalCooldown() bool             { return p.gcd }
func (p *fakePlayer) SetGlobalCooldown(v bool)           { p.gcd = v }
func (p *fakePlayer) ComboAction() string                { return p.combo }
func (p *fakePlayer) SetComboAction(name string)         { p.combo = name }
func (p *fakePlayer) IsCasting() bool                    { return p.casting }
func (p *fakePlayer) SetCasting(v bool)                  { p.casting = v }

func (p *fakePlayer) HasAction(name string) bool {
	_, ok := p.actions[name]
	return ok
}

type fakeRoom struct {
	players []*fakePlayer
}

func (r *fakeRoom) add(players ...*fakePlayer) {
	for _, p := range players {
		p.room = r
		r.players = append(r.players, p)
	}
}

func (r *fakeRoom) FindPlayer(name string) Player {
	for _, p := range r.players {
		if strings.HasPrefix(strings.ToLower(p.id), strings.ToLower(name)) {
			return p
		}
	}
	return nil
}

func (r *fakeRoom) FindPlayerIfVisible(name string, _ Player) Player {
	return r.FindPlayer(name)
}

type recorder struct {
	msgs map[string][]string
}

func (r *recorder) Send(playerId, msg string) {
	if r.msgs == nil {
		r.msgs = map[string][]string{}
	}
	r.msgs[playerId] = append(r.msgs[playerId], msg)
}

func (r *recorder) last(playerId string) string {
	msgs := r.msgs[playerId]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

type harness struct {
	clk     *clock.Clock
	battles *combat.Manager
	msgs    *recorder
	x       *Executor
	room    *fakeRoom
}

func newHarness() *harness {
	h := &harness{
		clk:     clock.New(),
		battles: combat.NewManager(),
		msgs:    &recorder{},
		room:    &fakeRoom{},
	}
	h.x = NewExecutor(h.clk, h.battles, h.msgs)
	return h
}

func (h *harness) tick(n int) {
	for range n {
		h.clk.Tick(context.Background())
	}
}

func (h *harness) use(t *testing.T, d *Descriptor, p *fakePlayer, target string) bool {
	t.Helper()
	return h.x.Execute(h.x.NewCommand(d, p), target)
}

func slash() *Descriptor {
	return &Descriptor{Name: "slash", Kind: KindAttack, Cooldown: GlobalCooldown, BasePotency: 100}
}

func flurry() *Descriptor {
	return &Descriptor{
		Name:        "flurry",
		DisplayName: "flurry of blows",
		Kind:        KindAttack,
		Cooldown:    GlobalCooldown,
		BasePotency: 150,
		Costs:       []Cost{FlatCost(ResourceSP, 2)},
	}
}

func riposte() *Descriptor {
	return &Descriptor{
		Name:            "riposte",
		Kind:            KindAttack,
		Cooldown:        GlobalCooldown,
		BasePotency:     150,
		Combo:           &Combo{After: "slash", Potency: 350},
		Costs:           []Cost{FlatCost(ResourceSP, 6)},
		InitiatesCombat: true,
	}
}

func coup() *Descriptor {
	return &Descriptor{
		Name:            "coup",
		DisplayName:     "coup de grace",
		Kind:            KindAttack,
		Cooldown:        120,
		BasePotency:     500,
		Costs:           []Cost{FlatCost(ResourceSP, 10)},
		InitiatesCombat: true,
	}
}
