package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval   string        `json:"tick_interval"`
	GlobalCooldown int64         `json:"global_cooldown"`
	RegenInterval  int64         `json:"regen_interval"`
	Storage        StorageConfig `json:"storage"`
	Nats           NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 100*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 100ms"))
		}
	}

	if c.GlobalCooldown < 0 {
		el.Add(fmt.Errorf("global_cooldown must not be negative"))
	}
	if c.RegenInterval < 0 {
		el.Add(fmt.Errorf("regen_interval must not be negative"))
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

// tickLength returns the configured tick interval, or zero to use the
// clock's default.
func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

// regenEvery returns how many ticks pass between regeneration passes.
func (c *Config) regenEvery() int64 {
	if c.RegenInterval == 0 {
		return defaultRegenInterval
	}
	return c.RegenInterval
}
