package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/solace/internal/actions"
)

// DefaultPrompt is used when a character has not set their own prompt.
const DefaultPrompt = "<%hhp %mmp %ssp>%t "

// Character represents a player character in the game.
type Character struct {
	// Name is the character's display name
	Name string `json:"name"`

	// Title is displayed after the character's name (e.g., "Bob the Brave")
	Title string `json:"title,omitempty"`

	Level int `json:"level"`

	// Prompt is the character's custom prompt. See player.ExpandPrompt.
	Prompt string `json:"prompt,omitempty"`

	// Room is where the character enters the world.
	Room string `json:"room,omitempty"`

	// Invisible characters cannot be found by other players.
	Invisible bool `json:"invisible,omitempty"`

	// Max holds the character's maximum for each resource pool.
	Max map[actions.Resource]int `json:"max"`

	// Actions maps each learned action to the character's skill level in it.
	Actions map[string]int `json:"actions,omitempty"`

	Passives []string `json:"passives,omitempty"`
}

// MatchName returns true if name matches this character's name (case-insensitive).
func (c *Character) MatchName(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// HasPassive reports whether the character has the named passive ability.
func (c *Character) HasPassive(name string) bool {
	for _, p := range c.Passives {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec.
func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if c.Level < 0 {
		el.Add(fmt.Errorf("level must not be negative"))
	}

	if c.Max[actions.ResourceHP] <= 0 {
		el.Add(fmt.Errorf("max hp must be positive"))
	}
	for r, v := range c.Max {
		if !r.Valid() {
			el.Add(fmt.Errorf("unknown resource %q", r))
		}
		if v < 0 {
			el.Add(fmt.Errorf("max %s must not be negative", r))
		}
	}

	for name, level := range c.Actions {
		if level < 0 {
			el.Add(fmt.Errorf("action %s: level must not be negative", name))
		}
	}

	return el.Err()
}
