package dispatch

import (
	"context"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

func handleCompanyListing(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	if _, ok := wire.DeserializeCompanyListingRequest(d); !ok {
		return ErrMalformed
	}

	if s.Username == "" {
		return Errorf("not_logged_in", "log in before listing companies")
	}

	companies, err := u.Companies().GetAll()
	if err != nil {
		return err
	}

	entries := make([]wire.CompanyEntry, 0, len(companies))
	for _, co := range companies {
		bonuses := co.Bonuses
		if bonuses == nil {
			bonuses = map[string]int64{}
		}
		entries = append(entries, wire.CompanyEntry{
			Name:    co.Name,
			Members: co.Members,
			Bonuses: bonuses,
		})
	}

	c.Out.Send(s.ID, &wire.CompanyListingResponse{Companies: entries})
	return nil
}
