package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/solace/internal/actions"
)

// ExpandPrompt fills in a prompt format:
//
//	%h %H  current and max hp
//	%m %M  current and max mp
//	%s %S  current and max sp
//	%t     the current opponent's remaining health, e.g. " 85%"
//	%%     a literal percent sign
func ExpandPrompt(format string, p actions.Player, target actions.Player) string {
	res := func(r actions.Resource) string { return strconv.Itoa(p.Resource(r)) }
	max := func(r actions.Resource) string { return strconv.Itoa(p.MaxResource(r)) }

	var health string
	if target != nil {
		if m := target.MaxResource(actions.ResourceHP); m > 0 {
			health = fmt.Sprintf(" %d%%", 100*target.Resource(actions.ResourceHP)/m)
		}
	}

	return strings.NewReplacer(
		"%%", "%",
		"%h", res(actions.ResourceHP),
		"%H", max(actions.ResourceHP),
		"%m", res(actions.ResourceMP),
		"%M", max(actions.ResourceMP),
		"%s", res(actions.ResourceSP),
		"%S", max(actions.ResourceSP),
		"%t", health,
	).Replace(format)
}
