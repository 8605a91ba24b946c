package actions

import (
	"sync"

	"github.com/pixil98/solace/internal/clock"
)

// CooldownKey identifies one player's cooldown on one action.
type CooldownKey struct {
	Player string
	Action string
}

// Cooldowns tracks which (player, action) pairs are on their own cooldown
// and the clock events that will clear them.
type Cooldowns struct {
	mu     sync.Mutex
	active map[CooldownKey]*clock.Event
}

// NewCooldowns creates an empty tracker.
func NewCooldowns() *Cooldowns {
	return &Cooldowns{active: make(map[CooldownKey]*clock.Event)}
}

// Active reports whether the key is on cooldown.
func (c *Cooldowns) Active(k CooldownKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.active[k]
	return ok
}

// start marks the key as on cooldown and schedules its expiry. The key is
// marked before scheduling so an expiry that fires immediately is not lost.
func (c *Cooldowns) start(k CooldownKey, sched Scheduler, label string, ticks int64) {
	c.mu.Lock()
	c.active[k] = nil
	c.mu.Unlock()

	e := sched.Schedule(label, ticks, &cooldownExpiry{key: k, cooldowns: c})

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[k]; !ok {
		// Cleared or already expired while scheduling.
		e.Cancel()
		return
	}
	c.active[k] = e
}

func (c *Cooldowns) expire(k CooldownKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, k)
}

// ClearPlayer cancels every cooldown held by the player.
func (c *Cooldowns) ClearPlayer(playerId string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.active {
		if k.Player != playerId {
			continue
		}
		if e != nil {
			e.Cancel()
		}
		delete(c.active, k)
	}
}

// cooldownExpiry is the clock payload that takes an action off cooldown.
type cooldownExpiry struct {
	key       CooldownKey
	cooldowns *Cooldowns
}

func (x *cooldownExpiry) Fire() {
	x.cooldowns.expire(x.key)
}

// Key returns the cooldown key the expiry clears.
func (x *cooldownExpiry) Key() CooldownKey { return x.key }

// globalCooldownExpiry is the clock payload that ends a player's global
// cooldown.
type globalCooldownExpiry struct {
	player Player
}

func (x *globalCooldownExpiry) Fire() {
	x.player.SetGlobalCooldown(false)
}

// Command is one player's instance of an action.
type Command struct {
	desc      *Descriptor
	player    Player
	cooldowns *Cooldowns
}

// NewCommand binds a descriptor to a player.
func NewCommand(d *Descriptor, p Player, cooldowns *Cooldowns) *Command {
	return &Command{desc: d, player: p, cooldowns: cooldowns}
}

func (c *Command) Name() string            { return c.desc.Name }
func (c *Command) DisplayName() string     { return c.desc.Label() }
func (c *Command) Descriptor() *Descriptor { return c.desc }
func (c *Command) Player() Player          { return c.player }

// Key returns the stable identity used for this command's cooldown.
func (c *Command) Key() CooldownKey {
	return CooldownKey{Player: c.player.Id(), Action: c.desc.Name}
}

// OnCooldown reports whether the command's own cooldown is running.
func (c *Command) OnCooldown() bool {
	return c.cooldowns.Active(c.Key())
}

// ResourceCosts returns the command's costs in declared order.
func (c *Command) ResourceCosts() []ResourceCost {
	costs := make([]ResourceCost, len(c.desc.Costs))
	for i, cost := range c.desc.Costs {
		costs[i] = cost
	}
	return costs
}
