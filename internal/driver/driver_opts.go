package driver

type MudDriverOpt func(*MudDriver)

// WithTicker runs t every `every` clock ticks.
func WithTicker(name string, every int64, t Ticker) MudDriverOpt {
	return func(d *MudDriver) {
		if every < 1 {
			every = 1
		}
		d.jobs = append(d.jobs, job{name: name, every: every, ticker: t})
	}
}
