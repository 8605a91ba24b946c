package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/solace/internal/actions"
)

func TestCharacter_Validate(t *testing.T) {
	tests := map[string]struct {
		char   *Character
		expErr string
	}{
		"valid": {
			char: &Character{Name: "Ann", Max: map[actions.Resource]int{actions.ResourceHP: 100}},
		},
		"missing name": {
			char:   &Character{Max: map[actions.Resource]int{actions.ResourceHP: 100}},
			expErr: "name is required",
		},
		"no hp": {
			char:   &Character{Name: "Ann"},
			expErr: "max hp must be positive",
		},
		"unknown resource": {
			char:   &Character{Name: "Ann", Max: map[actions.Resource]int{actions.ResourceHP: 100, "ki": 5}},
			expErr: `unknown resource "ki"`,
		},
		"negative pool": {
			char:   &Character{Name: "Ann", Max: map[actions.Resource]int{actions.ResourceHP: 100, actions.ResourceMP: -1}},
			expErr: "max mp must not be negative",
		},
		"negative action level": {
			char: &Character{
				Name:    "Ann",
				Max:     map[actions.Resource]int{actions.ResourceHP: 100},
				Actions: map[string]int{"slash": -2},
			},
			expErr: "action slash: level must not be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.char.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestCharacter_HasPassive(t *testing.T) {
	c := &Character{Passives: []string{"Metamagical"}}
	testutil.AssertEqual(t, "case-insensitive", c.HasPassive("metamagical"), true)
	testutil.AssertEqual(t, "missing", c.HasPassive("stoneskin"), false)
}
