package command

import (
	"fmt"
	"os"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/storage"
	"github.com/pixil98/go-errors/errors"
)

type StorageConfig struct {
	Stats    AssetConfig[*ecs.StatSpec]    `json:"stats"`
	Monsters AssetConfig[*ecs.MonsterSpec] `json:"monsters"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Stats.Validate("stats"))
	el.Add(c.Monsters.Validate("monsters"))
	return el.Err()
}

// BuildStatRegistry loads the stat dictionary and freezes it. Every stat
// the simulation itself depends on must be defined.
func (c *StorageConfig) BuildStatRegistry() (*ecs.StatRegistry, error) {
	store, err := c.Stats.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating stat store: %w", err)
	}

	reg := ecs.NewStatRegistry()
	for id, spec := range store.GetAll() {
		if err := reg.Add(spec.Name, spec.ID); err != nil {
			return nil, fmt.Errorf("stat %s: %w", id, err)
		}
	}

	for _, name := range ecs.CoreStatNames() {
		if _, ok := reg.ID(name); !ok {
			return nil, fmt.Errorf("stat dictionary is missing required stat %q", name)
		}
	}

	reg.Freeze()
	return reg, nil
}

// BuildBestiary loads the monster definitions against the stat dictionary.
func (c *StorageConfig) BuildBestiary(stats *ecs.StatRegistry) (*ecs.Bestiary, error) {
	store, err := c.Monsters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating monster store: %w", err)
	}

	return ecs.NewBestiary(store.GetAll(), stats)
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
