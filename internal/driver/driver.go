package driver

import (
	"context"
	"log/slog"

	"github.com/pixil98/solace/internal/clock"
)

// Ticker is game state that advances periodically.
type Ticker interface {
	Tick(context.Context) error
}

type job struct {
	name   string
	every  int64
	ticker Ticker
}

// MudDriver runs the game clock for the lifetime of the service and drives
// registered tickers from it.
type MudDriver struct {
	clock *clock.Clock
	jobs  []job
	errs  chan error
}

func NewMudDriver(c *clock.Clock, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		clock: c,
		errs:  make(chan error, 1),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start satisfies service.Worker. It blocks until ctx is done or a ticker
// fails, stopping the clock on the way out.
func (d *MudDriver) Start(ctx context.Context) error {
	events := make([]*clock.Event, 0, len(d.jobs))
	for _, j := range d.jobs {
		events = append(events, d.clock.Interval(j.name, j.every, &tickerRun{ctx: ctx, job: j, errs: d.errs}))
	}
	defer func() {
		for _, e := range events {
			e.Cancel()
		}
		d.clock.Stop()
	}()

	slog.InfoContext(ctx, "starting game driver", "jobs", len(d.jobs))
	d.clock.Start()

	select {
	case <-ctx.Done():
		return nil
	case err := <-d.errs:
		return err
	}
}

// tickerRun is the clock payload that runs one job.
type tickerRun struct {
	ctx  context.Context
	job  job
	errs chan<- error
}

func (r *tickerRun) Fire() {
	err := r.job.ticker.Tick(r.ctx)
	if err == nil {
		return
	}

	slog.ErrorContext(r.ctx, "ticker failed", "job", r.job.name, "error", err)
	select {
	case r.errs <- err:
	default:
	}
}
