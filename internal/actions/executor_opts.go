package actions

type ExecutorOpt func(*Executor)

// WithGlobalCooldown overrides how many ticks the global cooldown lasts.
func WithGlobalCooldown(ticks int64) ExecutorOpt {
	return func(x *Executor) {
		if ticks > 0 {
			x.gcdTicks = ticks
		}
	}
}
