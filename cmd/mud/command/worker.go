package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/solace/internal/actions"
	"github.com/pixil98/solace/internal/clock"
	"github.com/pixil98/solace/internal/combat"
	"github.com/pixil98/solace/internal/driver"
	"github.com/pixil98/solace/internal/game"
	"github.com/pixil98/solace/internal/messaging"
	"github.com/pixil98/solace/internal/player"
)

// defaultRegenInterval is the number of ticks between regeneration passes.
const defaultRegenInterval = 5

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	var clockOpts []clock.ClockOpt
	if d := cfg.tickLength(); d > 0 {
		clockOpts = append(clockOpts, clock.WithTickLength(d))
	}
	clk := clock.New(clockOpts...)

	chars, err := cfg.Storage.Characters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	registry, err := cfg.Storage.BuildRegistry()
	if err != nil {
		return nil, err
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	battles := combat.NewManager()
	world := game.NewWorld()

	var execOpts []actions.ExecutorOpt
	if cfg.GlobalCooldown > 0 {
		execOpts = append(execOpts, actions.WithGlobalCooldown(cfg.GlobalCooldown))
	}
	exec := actions.NewExecutor(clk, battles, messaging.NewNatsPublisher(natsServer), execOpts...)

	mudDriver := driver.NewMudDriver(clk,
		driver.WithTicker("battles", 1, battles),
		driver.WithTicker("regen", cfg.regenEvery(), world),
	)

	players := player.NewManager(natsServer, world, chars, registry, exec, battles, clk,
		player.WithReady(natsServer.Ready()),
	)

	return service.WorkerList{
		"nats":    natsServer,
		"driver":  mudDriver,
		"players": players,
	}, nil
}
