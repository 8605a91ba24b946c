package actions

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/solace/internal/combat"
)

// EffectContext describes one landing of an action.
type EffectContext struct {
	Command *Command
	Actor   Player
	Target  Player
	Level   int
	Potency int
}

// Effect is the logic behind an action kind.
type Effect interface {
	// Check returns a message explaining why the action cannot be used on
	// the resolved target, or "" if it can.
	Check(ec *EffectContext) string
	// Apply performs the action and reports whether it succeeded.
	Apply(ec *EffectContext) bool
}

// attackEffect damages the target in proportion to potency.
type attackEffect struct {
	msgr Messenger
}

func (e *attackEffect) Check(ec *EffectContext) string {
	if ec.Target == nil {
		return fmt.Sprintf("Who would you like to use %s on?", ec.Command.Descriptor().Label())
	}
	if ec.Target.Id() == ec.Actor.Id() {
		return "You cannot attack yourself."
	}
	if !ec.Target.IsAlive() {
		return fmt.Sprintf("%s is already dead!", ec.Target.Name())
	}
	return ""
}

func (e *attackEffect) Apply(ec *EffectContext) bool {
	if ec.Target == nil {
		return false
	}

	dmg := combat.Damage(ec.Potency, ec.Level)
	hp := ec.Target.Resource(ResourceHP) - dmg
	if hp < 0 {
		hp = 0
	}
	ec.Target.SetResource(ResourceHP, hp)

	announce(e.msgr, ec, MessageData{
		Amount: dmg,
		Verb:   combat.DamageVerb(dmg),
	}, map[string]string{
		MessageActor:  "Your {{ .Action }} {{ .Verb }} {{ .Target }}!",
		MessageTarget: "{{ .Actor }}'s {{ .Action }} {{ .Verb }} you!",
	})
	return true
}

// restoreEffect heals the target, or the actor when no target was given.
type restoreEffect struct {
	msgr Messenger
}

func (e *restoreEffect) Check(ec *EffectContext) string {
	r := recipient(ec)
	if !r.IsAlive() {
		return fmt.Sprintf("%s is beyond help.", r.Name())
	}
	if r.Resource(ResourceHP) >= r.MaxResource(ResourceHP) {
		if r.Id() == ec.Actor.Id() {
			return "You are already at full health."
		}
		return fmt.Sprintf("%s is already at full health.", r.Name())
	}
	return ""
}

func (e *restoreEffect) Apply(ec *EffectContext) bool {
	r := recipient(ec)

	max := r.MaxResource(ResourceHP)
	current := r.Resource(ResourceHP)
	if current >= max {
		return false
	}

	amount := combat.Damage(ec.Potency, ec.Level)
	if current+amount > max {
		amount = max - current
	}
	r.SetResource(ResourceHP, current+amount)

	announce(e.msgr, ec, MessageData{Amount: amount}, map[string]string{
		MessageActor:  "Your {{ .Action }} restores {{ .Amount }} health to {{ .Target }}.",
		MessageTarget: "{{ .Actor }}'s {{ .Action }} restores {{ .Amount }} of your health.",
	})
	return true
}

func recipient(ec *EffectContext) Player {
	if ec.Target != nil {
		return ec.Target
	}
	return ec.Actor
}

// announce expands the action's messages, falling back to defaults, and
// sends them to the actor and the target.
func announce(msgr Messenger, ec *EffectContext, data MessageData, defaults map[string]string) {
	d := ec.Command.Descriptor()
	data.Actor = ec.Actor.Name()
	data.Action = d.Label()
	data.Potency = ec.Potency
	data.Target = "yourself"
	if ec.Target != nil && ec.Target.Id() != ec.Actor.Id() {
		data.Target = ec.Target.Name()
	}

	send := func(key, playerId string) {
		tmpl, ok := d.Messages[key]
		if !ok {
			tmpl = defaults[key]
		}
		if tmpl == "" {
			return
		}
		msg, err := ExpandTemplate(tmpl, data)
		if err != nil {
			slog.Error("expanding action message", "action", d.Name, "key", key, "error", err)
			return
		}
		msgr.Send(playerId, msg)
	}

	send(MessageActor, ec.Actor.Id())
	if ec.Target != nil && ec.Target.Id() != ec.Actor.Id() {
		data.Target = "you"
		send(MessageTarget, ec.Target.Id())
	}
}
