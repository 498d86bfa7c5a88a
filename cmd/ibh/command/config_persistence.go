package command

import (
	"fmt"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/pixil98/go-errors/errors"
)

// PersistenceConfig configures the in-process store the binary ships with.
// Deployments backed by a real database construct a repo.SQLProvider around
// their own connector instead.
type PersistenceConfig struct {
	Companies []CompanySeed `json:"companies"`
}

type CompanySeed struct {
	Name    string           `json:"name"`
	Members uint64           `json:"members"`
	Bonuses map[string]int64 `json:"bonuses"`
}

func (c *PersistenceConfig) validate() error {
	el := errors.NewErrorList()

	for i, co := range c.Companies {
		if co.Name == "" {
			el.Add(fmt.Errorf("company %d: name is required", i))
		}
	}

	return el.Err()
}

func (c *PersistenceConfig) BuildProvider() repo.Provider {
	p := repo.NewMemoryProvider()
	for _, co := range c.Companies {
		p.SeedCompany(&repo.Company{
			Name:    co.Name,
			Members: co.Members,
			Bonuses: co.Bonuses,
		})
	}
	return p
}
