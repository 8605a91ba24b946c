package actions

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// ResourceCost is a cost policy for a single resource pool.
type ResourceCost interface {
	// CanWithdraw reports whether the player can currently pay the cost.
	CanWithdraw(p Player) bool
	// Withdraw pays the cost. Only call after CanWithdraw succeeded.
	Withdraw(p Player)
	// InsufficientMessage is shown to the player when CanWithdraw fails.
	InsufficientMessage() string
}

// CostType selects how a Cost computes its amount.
type CostType string

const (
	CostPercent CostType = "percent" // percentage of the pool's maximum
	CostFlat    CostType = "flat"
)

// discount is a passive ability that reduces what a resource costs.
type discount struct {
	passive string
	percent int
}

var passiveDiscounts = map[Resource]discount{
	ResourceMP: {passive: "metamagical", percent: 10},
}

// Cost is the ResourceCost declared by action descriptors.
type Cost struct {
	Resource Resource `json:"resource"`
	Type     CostType `json:"type"`
	Amount   int      `json:"amount"`
}

// PercentCost costs a percentage of the resource's maximum.
func PercentCost(r Resource, pct int) Cost {
	return Cost{Resource: r, Type: CostPercent, Amount: pct}
}

// FlatCost costs a fixed amount of the resource.
func FlatCost(r Resource, amount int) Cost {
	return Cost{Resource: r, Type: CostFlat, Amount: amount}
}

func (c Cost) Validate() error {
	el := errors.NewErrorList()

	if !c.Resource.Valid() {
		el.Add(fmt.Errorf("unknown resource %q", c.Resource))
	}
	switch c.Type {
	case CostPercent:
		if c.Amount > 100 {
			el.Add(fmt.Errorf("percent cost must be at most 100"))
		}
	case CostFlat:
	default:
		el.Add(fmt.Errorf("unknown cost type %q", c.Type))
	}
	if c.Amount < 0 {
		el.Add(fmt.Errorf("cost amount must not be negative"))
	}

	return el.Err()
}

// amount computes the undiscounted cost against the player's current maximum.
func (c Cost) amount(p Player) int {
	if c.Type == CostPercent {
		return p.MaxResource(c.Resource) * c.Amount / 100
	}
	return c.Amount
}

func (c Cost) CanWithdraw(p Player) bool {
	return p.Resource(c.Resource) >= c.amount(p)
}

func (c Cost) Withdraw(p Player) {
	if !c.CanWithdraw(p) {
		return
	}

	cost := c.amount(p)
	if d, ok := passiveDiscounts[c.Resource]; ok && p.HasPassive(d.passive) {
		cost = cost * (100 - d.percent) / 100
	}

	remaining := p.Resource(c.Resource) - cost
	if remaining < 0 {
		remaining = 0
	}
	p.SetResource(c.Resource, remaining)
}

// affordable checks the costs together, so that costs drawing on the same
// pool must fit its current value in total. It returns the first cost that
// cannot be paid.
func affordable(p Player, costs []Cost) (Cost, bool) {
	owed := make(map[Resource]int, len(costs))
	for _, c := range costs {
		owed[c.Resource] += c.amount(p)
		if p.Resource(c.Resource) < owed[c.Resource] {
			return c, false
		}
	}
	return Cost{}, true
}

func (c Cost) InsufficientMessage() string {
	return fmt.Sprintf("Not enough %s.", c.Resource)
}
