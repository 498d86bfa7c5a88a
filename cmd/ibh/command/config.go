package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors/errors"
)

type Config struct {
	TickInterval string            `json:"tick_interval"`
	Listeners    []ListenerConfig  `json:"listeners"`
	Storage      StorageConfig     `json:"storage"`
	Nats         NatsConfig        `json:"nats"`
	Game         GameConfig        `json:"game"`
	Persistence  PersistenceConfig `json:"persistence"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 50*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 50ms"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Game.validate())
	el.Add(c.Persistence.validate())

	return el.Err()
}

type GameConfig struct {
	Motd          string `json:"motd"`
	BattleWorkers int    `json:"battle_workers"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()

	if c.BattleWorkers < 0 {
		el.Add(fmt.Errorf("battle_workers must not be negative"))
	}

	return el.Err()
}
