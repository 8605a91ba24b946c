package combat

// Damage converts an action's potency into hit points for an actor of the
// given skill level. Each skill level adds five percent; the result is at
// least 1.
func Damage(potency, level int) int {
	if potency <= 0 {
		return 0
	}
	dmg := potency * (100 + 5*level) / 1000
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

var damageMessages = []struct {
	maxDamage int
	verb      string // "{attacker}'s {action} {verb} {target}!"
}{
	{0, "misses"},
	{2, "barely scratches"},
	{4, "tickles"},
	{6, "barely hurts"},
	{10, "hits"},
	{14, "hits hard"},
	{19, "pummels"},
	{24, "thrashes"},
	{30, "mauls"},
	{40, "decimates"},
	{50, "devastates"},
	{65, "obliterates"},
	{80, "annihilates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb
		}
	}
	return "does UNSPEAKABLE things to"
}
