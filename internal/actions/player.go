package actions

import (
	"github.com/pixil98/solace/internal/clock"
	"github.com/pixil98/solace/internal/combat"
)

// PlayState is what a player is currently doing.
type PlayState int32

const (
	StateStanding PlayState = iota
	StateSitting
	StateResting
	StateSleeping
	StateFighting
)

func (s PlayState) String() string {
	switch s {
	case StateStanding:
		return "standing"
	case StateSitting:
		return "sitting"
	case StateResting:
		return "resting"
	case StateSleeping:
		return "sleeping"
	case StateFighting:
		return "fighting"
	default:
		return "unknown"
	}
}

// Resource names one of a player's pools.
type Resource string

const (
	ResourceHP Resource = "hp"
	ResourceMP Resource = "mp"
	ResourceSP Resource = "sp"
)

// Valid reports whether r names a known pool.
func (r Resource) Valid() bool {
	switch r {
	case ResourceHP, ResourceMP, ResourceSP:
		return true
	default:
		return false
	}
}

// Player is the acting or targeted character as seen by the pipeline.
type Player interface {
	combat.Participant

	PlayState() PlayState
	Room() Room

	Resource(Resource) int
	MaxResource(Resource) int
	SetResource(Resource, int)

	HasPassive(name string) bool
	HasAction(name string) bool
	ActionLevel(name string) int

	// CooldownAt records the tick at which the named action is ready again.
	CooldownAt(name string, readyAt uint64)
	CooldownReadyAt(name string) uint64

	OnGlobalCooldown() bool
	SetGlobalCooldown(bool)

	ComboAction() string
	SetComboAction(string)

	IsCasting() bool
	SetCasting(bool)
}

// Room resolves other players in the actor's locality.
type Room interface {
	FindPlayer(name string) Player
	FindPlayerIfVisible(name string, viewer Player) Player
}

// Messenger delivers player-facing text.
type Messenger interface {
	Send(playerId string, msg string)
}

// Scheduler is the part of the game clock the pipeline needs.
type Scheduler interface {
	Schedule(label string, delay int64, action clock.Action) *clock.Event
	Now() uint64
}

// Battles is the battle membership collaborator.
type Battles interface {
	BattleFor(id string) *combat.Battle
	Initiate(attacker, target combat.Participant) (*combat.Battle, error)
}
