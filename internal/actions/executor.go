package actions

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/solace/internal/combat"
	"github.com/pixil98/solace/internal/display"
)

// DefaultGlobalCooldown is how many ticks the shared global cooldown lasts.
const DefaultGlobalCooldown int64 = 2

// Executor runs the action pipeline: it validates a command, pays its
// costs, applies its effect and starts whatever cooldowns and combat
// follow from it.
type Executor struct {
	clock     Scheduler
	battles   Battles
	msgr      Messenger
	cooldowns *Cooldowns
	effects   map[Kind]Effect
	gcdTicks  int64
}

// NewExecutor creates an Executor with the built-in attack and restore
// effects registered.
func NewExecutor(sched Scheduler, battles Battles, msgr Messenger, opts ...ExecutorOpt) *Executor {
	x := &Executor{
		clock:     sched,
		battles:   battles,
		msgr:      msgr,
		cooldowns: NewCooldowns(),
		effects:   make(map[Kind]Effect),
		gcdTicks:  DefaultGlobalCooldown,
	}
	x.effects[KindAttack] = &attackEffect{msgr: msgr}
	x.effects[KindRestore] = &restoreEffect{msgr: msgr}

	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Cooldowns returns the tracker of per-action cooldowns.
func (x *Executor) Cooldowns() *Cooldowns {
	return x.cooldowns
}

// RegisterEffect installs or replaces the effect for an action kind.
func (x *Executor) RegisterEffect(k Kind, e Effect) {
	x.effects[k] = e
}

// NewCommand binds a descriptor to a player using this executor's
// cooldown tracker.
func (x *Executor) NewCommand(d *Descriptor, p Player) *Command {
	return NewCommand(d, p, x.cooldowns)
}

// Execute attempts the command against the named target. targetName may be
// empty. It returns true if the action was used (or began casting).
func (x *Executor) Execute(cmd *Command, targetName string) bool {
	p := cmd.Player()
	d := cmd.Descriptor()

	if p.IsCasting() {
		return x.reject(p, "You are focusing on casting and cannot act further!")
	}
	if !p.HasAction(d.Name) {
		return x.reject(p, "You do not possess the %s action.", d.Label())
	}
	if s := p.PlayState(); s != StateStanding && s != StateFighting {
		return x.reject(p, "You must be standing and alert to use %s.", d.Label())
	}
	if cmd.OnCooldown() || (d.UsesGlobalCooldown() && p.OnGlobalCooldown()) {
		return x.reject(p, "%s is not ready yet.", display.Capitalize(d.Label()))
	}

	target, ok := x.resolveTarget(cmd, targetName)
	if !ok {
		return false
	}

	if x.inOtherBattle(p, target) {
		return x.reject(p, "%s is already engaged in combat!", target.Name())
	}

	effect, ok := x.effects[d.Kind]
	if !ok {
		slog.Error("no effect registered for action kind", "action", d.Name, "kind", d.Kind)
		return false
	}

	ec := &EffectContext{
		Command: cmd,
		Actor:   p,
		Target:  target,
		Level:   p.ActionLevel(d.Name),
		Potency: d.Potency(p.ComboAction()),
	}
	if msg := effect.Check(ec); msg != "" {
		return x.reject(p, "%s", msg)
	}

	if c, ok := affordable(p, d.Costs); !ok {
		return x.reject(p, "%s", c.InsufficientMessage())
	}
	for _, c := range cmd.ResourceCosts() {
		c.Withdraw(p)
	}

	if d.CastTime > 0 {
		p.SetCasting(true)
		x.clock.Schedule(fmt.Sprintf("cast %s for %s", d.Name, p.Name()), d.CastTime, &castCompletion{x: x, ec: ec})
		x.msgr.Send(p.Id(), fmt.Sprintf("You begin casting %s.", d.Label()))
		return true
	}

	return x.land(ec)
}

// land applies the effect and, on success, runs the post-effect steps.
func (x *Executor) land(ec *EffectContext) bool {
	if !x.effects[ec.Command.Descriptor().Kind].Apply(ec) {
		return false
	}
	x.afterSuccess(ec)
	return true
}

func (x *Executor) afterSuccess(ec *EffectContext) {
	p := ec.Actor
	d := ec.Command.Descriptor()

	if d.UsesGlobalCooldown() {
		p.SetGlobalCooldown(true)
		x.clock.Schedule(fmt.Sprintf("global cooldown for %s", p.Name()), x.gcdTicks, &globalCooldownExpiry{player: p})
		p.SetComboAction(d.Name)
	} else {
		x.cooldowns.start(ec.Command.Key(), x.clock, fmt.Sprintf("cooldown %s for %s", d.Name, p.Name()), d.Cooldown)
		p.CooldownAt(d.Name, x.clock.Now()+uint64(d.Cooldown))
	}

	if d.InitiatesCombat && ec.Target != nil && ec.Target.Id() != p.Id() {
		x.engage(p, ec.Target)
	}
}

// engage puts the player and target into combat with each other, merging
// into an existing battle when either side is already fighting.
func (x *Executor) engage(p, target Player) {
	pb := x.battleFor(p)
	tb := x.battleFor(target)

	switch {
	case pb == nil && tb == nil:
		if _, err := x.battles.Initiate(p, target); err != nil {
			slog.Warn("starting battle", "attacker", p.Name(), "target", target.Name(), "error", err)
		}
	case pb == nil:
		if err := tb.Add(p); err != nil {
			slog.Warn("joining battle", "player", p.Name(), "battle", tb.Id(), "error", err)
			return
		}
		tb.SetAttacking(p, target)
	case tb == nil:
		if err := pb.Add(target); err != nil {
			slog.Warn("joining battle", "player", target.Name(), "battle", pb.Id(), "error", err)
			return
		}
		pb.SetAttacking(target, p)
	case pb == tb:
		pb.SetAttacking(p, target)
	default:
		slog.Warn("player and target are in different battles", "player", p.Name(), "target", target.Name())
	}
}

// inOtherBattle reports whether the player and target are both fighting, in
// different battles.
func (x *Executor) inOtherBattle(p, target Player) bool {
	if target == nil || target.Id() == p.Id() {
		return false
	}
	pb := x.battleFor(p)
	tb := x.battleFor(target)
	return pb != nil && tb != nil && pb != tb
}

// battleFor returns the player's battle. A player flagged as fighting
// without a battle is logged and treated as not in one.
func (x *Executor) battleFor(p Player) *combat.Battle {
	b := x.battles.BattleFor(p.Id())
	if b == nil && p.PlayState() == StateFighting {
		slog.Error("player is fighting but not in a battle", "player", p.Name())
	}
	return b
}

// resolveTarget finds the action's target. It returns false if the action
// must not proceed.
func (x *Executor) resolveTarget(cmd *Command, targetName string) (Player, bool) {
	p := cmd.Player()
	d := cmd.Descriptor()
	mode := d.TargetMode()

	if mode == TargetNone {
		return nil, true
	}

	if targetName == "" {
		if d.Kind == KindAttack {
			if t := x.currentOpponent(p); t != nil {
				return t, true
			}
		}
		if mode == TargetRequired {
			return nil, x.reject(p, "Who would you like to use %s on?", d.Label())
		}
		return nil, true
	}

	var t Player
	if room := p.Room(); room != nil {
		t = room.FindPlayerIfVisible(targetName, p)
	}
	if t == nil && mode == TargetRequired {
		return nil, x.reject(p, "You do not see %s here.", targetName)
	}
	return t, true
}

// currentOpponent returns who the player is attacking in their battle.
func (x *Executor) currentOpponent(p Player) Player {
	b := x.battleFor(p)
	if b == nil {
		return nil
	}
	t, ok := b.TargetFor(p.Id()).(Player)
	if !ok {
		return nil
	}
	return t
}

func (x *Executor) reject(p Player, format string, args ...any) bool {
	x.msgr.Send(p.Id(), fmt.Sprintf(format, args...))
	return false
}

// castCompletion is the clock payload that lands a cast once its cast time
// has elapsed.
type castCompletion struct {
	x  *Executor
	ec *EffectContext
}

func (c *castCompletion) Fire() {
	p := c.ec.Actor
	p.SetCasting(false)

	if !p.IsAlive() {
		return
	}
	if msg := c.x.effects[c.ec.Command.Descriptor().Kind].Check(c.ec); msg != "" {
		c.x.reject(p, "%s", msg)
		return
	}
	if t := c.ec.Target; c.x.inOtherBattle(p, t) {
		c.x.reject(p, "%s is already engaged in combat!", t.Name())
		return
	}
	c.x.land(c.ec)
}
