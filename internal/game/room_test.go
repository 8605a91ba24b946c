package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/solace/internal/actions"
)

func TestRoom_FindPlayerIfVisible(t *testing.T) {
	tests := map[string]struct {
		name      string
		asleep    bool
		invisible bool
		exp       string
	}{
		"exact match": {
			name: "bo",
			exp:  "bo",
		},
		"prefix match": {
			name: "bob",
			exp:  "bobby",
		},
		"case insensitive": {
			name: "BOBBY",
			exp:  "bobby",
		},
		"no match": {
			name: "zed",
		},
		"empty name": {
			name: "  ",
		},
		"viewer asleep": {
			name:   "bo",
			asleep: true,
		},
		"invisible": {
			name:      "bobby",
			invisible: true,
		},
		"self": {
			name: "ann",
			exp:  "ann",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorld()
			ann, _ := w.AddPlayer("ann", newTestCharacter("Ann"))
			w.AddPlayer("bo", newTestCharacter("Bo"))
			bobby := newTestCharacter("Bobby")
			bobby.Invisible = tt.invisible
			w.AddPlayer("bobby", bobby)

			if tt.asleep {
				ann.SetPlayState(actions.StateSleeping)
			}

			found := ann.CurrentRoom().FindPlayerIfVisible(tt.name, ann)
			var got string
			if found != nil {
				got = found.Id()
			}
			testutil.AssertEqual(t, "found", got, tt.exp)
		})
	}
}

func TestRoom_FindPlayerIgnoresVisibility(t *testing.T) {
	w := NewWorld()
	ghost := newTestCharacter("Ghost")
	ghost.Invisible = true
	ps, _ := w.AddPlayer("ghost", ghost)

	found := ps.CurrentRoom().FindPlayer("gho")
	if found == nil {
		t.Fatal("expected to find ghost")
	}
	testutil.AssertEqual(t, "found", found.Id(), "ghost")
}

func TestRoom_Players(t *testing.T) {
	r := NewRoom("hall")
	for _, name := range []string{"cy", "Ann", "bo"} {
		r.AddPlayer(NewPlayerState(name, newTestCharacter(name)))
	}
	r.RemovePlayer("bo")

	players := r.Players()
	testutil.AssertEqual(t, "count", len(players), 2)
	testutil.AssertEqual(t, "first", players[0].Name(), "Ann")
	testutil.AssertEqual(t, "second", players[1].Name(), "cy")
	if players[0].CurrentRoom() != r {
		t.Error("expected room to be set on the player")
	}
}
