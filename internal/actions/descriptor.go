package actions

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// GlobalCooldown is the cooldown value of actions gated by the shared
// global cooldown instead of their own timer.
const GlobalCooldown int64 = -1

// Kind selects the effect an action applies.
type Kind string

const (
	KindAttack  Kind = "attack"
	KindRestore Kind = "restore"
)

// Targeting declares whether an action needs a target.
type Targeting string

const (
	TargetNone     Targeting = "none"
	TargetOptional Targeting = "optional"
	TargetRequired Targeting = "required"
)

// Message keys understood in Descriptor.Messages.
const (
	MessageActor  = "actor"  // sent to the acting player
	MessageTarget = "target" // sent to the target, if any
)

// Combo raises an action's potency when it directly follows another action.
type Combo struct {
	// After is the name of the prerequisite action.
	After string `json:"after"`
	// Potency replaces the base potency when the combo applies.
	Potency int `json:"potency"`
}

// Descriptor declares an action. It is loaded from asset files and
// interpreted by the Executor.
type Descriptor struct {
	// Name is the command word. Defaults to the asset id.
	Name string `json:"name,omitempty"`

	// DisplayName is used in messages (e.g., "flurry of blows").
	DisplayName string `json:"display_name,omitempty"`

	Kind Kind `json:"kind"`

	// Cooldown is the number of ticks before the action can be reused, or
	// GlobalCooldown.
	Cooldown int64 `json:"cooldown"`

	InitiatesCombat bool `json:"initiates_combat,omitempty"`

	// CastTime is the number of ticks between paying for the action and its
	// effect landing. Zero means instant.
	CastTime int64 `json:"cast_time,omitempty"`

	BasePotency int    `json:"base_potency"`
	Combo       *Combo `json:"combo,omitempty"`

	// Costs are checked and paid in order.
	Costs []Cost `json:"costs,omitempty"`

	Targeting Targeting `json:"targeting,omitempty"`

	// Messages are text/template strings keyed by MessageActor/MessageTarget.
	Messages map[string]string `json:"messages,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (d *Descriptor) Validate() error {
	el := errors.NewErrorList()

	switch d.Kind {
	case KindAttack, KindRestore:
	default:
		el.Add(fmt.Errorf("unknown kind %q", d.Kind))
	}

	if d.Cooldown != GlobalCooldown && d.Cooldown < 1 {
		el.Add(fmt.Errorf("cooldown must be positive or %d for the global cooldown", GlobalCooldown))
	}
	if d.CastTime < 0 {
		el.Add(fmt.Errorf("cast_time must not be negative"))
	}
	if d.BasePotency < 0 {
		el.Add(fmt.Errorf("base_potency must not be negative"))
	}

	if d.Combo != nil {
		if d.Combo.After == "" {
			el.Add(fmt.Errorf("combo: after is required"))
		}
		if d.Combo.Potency <= 0 {
			el.Add(fmt.Errorf("combo: potency must be positive"))
		}
	}

	switch d.Targeting {
	case "", TargetNone, TargetOptional, TargetRequired:
	default:
		el.Add(fmt.Errorf("unknown targeting %q", d.Targeting))
	}
	if d.Kind == KindAttack && d.Targeting == TargetNone {
		el.Add(fmt.Errorf("attack actions must accept a target"))
	}

	for i, c := range d.Costs {
		if err := c.Validate(); err != nil {
			el.Add(fmt.Errorf("cost %d: %w", i, err))
		}
	}

	for key, msg := range d.Messages {
		if _, err := parseTemplate(msg); err != nil {
			el.Add(fmt.Errorf("message %q: %w", key, err))
		}
	}

	return el.Err()
}

// UsesGlobalCooldown reports whether the action is gated by the shared
// global cooldown.
func (d *Descriptor) UsesGlobalCooldown() bool {
	return d.Cooldown == GlobalCooldown
}

// Label returns the name used when talking to players about the action.
func (d *Descriptor) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// TargetMode returns the declared targeting, defaulting to optional.
func (d *Descriptor) TargetMode() Targeting {
	if d.Targeting == "" {
		return TargetOptional
	}
	return d.Targeting
}

// Potency returns the potency the action has when the player's recorded
// combo action is comboAction.
func (d *Descriptor) Potency(comboAction string) int {
	if d.Combo != nil && comboAction != "" && comboAction == d.Combo.After {
		return d.Combo.Potency
	}
	return d.BasePotency
}
