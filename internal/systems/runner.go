package systems

import (
	"context"
	"sync"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
)

// Runner ticks the systems in one driver slot. Battles shard across a
// bounded worker pool over the dense battle column; the runner waits for
// every worker before touching anything else, so a tick is fully resolved
// before fan-out ever sees it.
type Runner struct {
	world    *ecs.World
	battle   *BattleSystem
	resource *ResourceSystem
	workers  int
}

// RunnerOpt configures a Runner.
type RunnerOpt func(*Runner)

// WithWorkers bounds the battle worker pool.
func WithWorkers(n int) RunnerOpt {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner creates a runner over a world's systems.
func NewRunner(world *ecs.World, battle *BattleSystem, resource *ResourceSystem, opts ...RunnerOpt) *Runner {
	r := &Runner{
		world:    world,
		battle:   battle,
		resource: resource,
		workers:  4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tick runs one simulation step: battles in parallel, then gathering.
func (r *Runner) Tick(ctx context.Context) error {
	r.tickBattles()
	r.resource.tick()
	return nil
}

func (r *Runner) tickBattles() {
	n := r.world.Battles.Len()
	if n == 0 {
		return
	}

	workers := r.workers
	if workers > n {
		workers = n
	}

	// Workers stride the dense column. Slots are disjoint and the column
	// is not resized during the tick, so no synchronization beyond the
	// barrier is needed.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += workers {
				id, b := r.world.Battles.At(i)
				r.battle.TickOne(id, b)
			}
		}(w)
	}
	wg.Wait()
}
