package actions

import (
	"slices"
	"strings"
)

// Availability is how long until one of a player's actions can be used.
type Availability struct {
	Name        string
	DisplayName string
	// Remaining is the number of ticks left on the action's own cooldown.
	Remaining uint64
	// Global is set when the action is waiting on the global cooldown.
	Global bool
}

// Ready reports whether the action can be used now.
func (a Availability) Ready() bool {
	return a.Remaining == 0 && !a.Global
}

// CooldownReport lists the availability of each command, sorted by name.
func CooldownReport(p Player, cmds map[string]*Command, now uint64) []Availability {
	report := make([]Availability, 0, len(cmds))
	for _, cmd := range cmds {
		d := cmd.Descriptor()
		a := Availability{Name: d.Name, DisplayName: d.Label()}

		if d.UsesGlobalCooldown() {
			a.Global = p.OnGlobalCooldown()
		} else if cmd.OnCooldown() {
			if readyAt := p.CooldownReadyAt(d.Name); readyAt > now {
				a.Remaining = readyAt - now
			} else {
				a.Remaining = 1
			}
		}
		report = append(report, a)
	}

	slices.SortFunc(report, func(a, b Availability) int {
		return strings.Compare(a.Name, b.Name)
	})
	return report
}
