package command

import (
	"fmt"
	"time"

	"github.com/Oipo/IdleBossHunter/internal/auth"
	"github.com/Oipo/IdleBossHunter/internal/dispatch"
	"github.com/Oipo/IdleBossHunter/internal/driver"
	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/game"
	"github.com/Oipo/IdleBossHunter/internal/listener"
	"github.com/Oipo/IdleBossHunter/internal/messaging"
	"github.com/Oipo/IdleBossHunter/internal/outbound"
	"github.com/Oipo/IdleBossHunter/internal/queue"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/systems"
	"github.com/Oipo/IdleBossHunter/internal/telemetry"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load the data-driven definitions
	stats, err := cfg.Storage.BuildStatRegistry()
	if err != nil {
		return nil, fmt.Errorf("building stat registry: %w", err)
	}
	bestiary, err := cfg.Storage.BuildBestiary(stats)
	if err != nil {
		return nil, fmt.Errorf("building bestiary: %w", err)
	}

	// Simulation state and the queues crossing into it
	world := ecs.NewWorld()
	sessions := session.NewRegistry()
	inbound := queue.New[game.Inbound]()
	outQueue := queue.New[outbound.Envelope]()

	metrics := telemetry.New(sessions.Len, inbound.Len)
	fanout := outbound.NewFanout(outQueue, sessions,
		outbound.WithSentCounter(metrics.CountSent))

	// Messaging bridge
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Systems
	battle := systems.NewBattleSystem(world, stats, bestiary, fanout,
		systems.WithResolvedCounter(metrics.CountBattleResolved))
	resource := systems.NewResourceSystem(world, stats, fanout)

	var runnerOpts []systems.RunnerOpt
	if cfg.Game.BattleWorkers > 0 {
		runnerOpts = append(runnerOpts, systems.WithWorkers(cfg.Game.BattleWorkers))
	}
	runner := systems.NewRunner(world, battle, resource, runnerOpts...)

	// Dispatch
	table := dispatch.NewDefaultTable(dispatch.WithDispatchCounter(metrics.CountDispatch))
	deps := &dispatch.Context{
		World:      world,
		Provider:   cfg.Persistence.BuildProvider(),
		Out:        fanout,
		Sessions:   sessions,
		Stats:      stats,
		Encounters: battle,
		Hasher:     auth.NewBcryptHasher(),
		Bridge:     messaging.NewBridge(nats),
		Motd:       cfg.Game.Motd,
	}
	pump := game.NewPump(inbound, table, deps)

	// Simulation driver: drain inbound, run systems, fan out
	driverOpts := []driver.SimDriverOpt{
		driver.WithTickObserver(metrics.ObserveTick),
	}
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	sim := driver.NewSimDriver([]driver.Manager{pump, runner, fanout}, driverOpts...)

	// Listeners
	cm := listener.NewConnectionManager(sessions, inbound)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		wl, err := l.BuildListener(cm, metrics.Handler())
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = wl
	}

	return service.WorkerList{
		"driver":    sim,
		"listeners": &listeners,
		"nats":      nats,
	}, nil
}
