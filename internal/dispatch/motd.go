package dispatch

import (
	"context"
	"log/slog"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

func handleSetMotd(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeSetMotdRequest(d)
	if !ok {
		return ErrMalformed
	}

	if !s.GameMaster {
		return Errorf("unauthorized", "only game masters may set the message of the day")
	}

	c.Motd = req.Motd
	c.Out.Broadcast(&wire.UpdateMotdResponse{Motd: req.Motd})

	if c.Bridge != nil {
		if err := c.Bridge.PublishMotd(req.Motd); err != nil {
			slog.WarnContext(ctx, "publishing motd to bridge", "error", err)
		}
	}

	return nil
}
