package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

func handleChat(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeChatRequest(d)
	if !ok {
		return ErrMalformed
	}

	if !s.Playing {
		return Errorf("not_playing", "select a character before chatting")
	}
	if req.Content == "" {
		return Errorf("empty_message", "nothing to say")
	}

	p, ok := c.World.Players.Get(s.Entity)
	if !ok {
		return Errorf("not_playing", "select a character before chatting")
	}

	c.Out.Broadcast(&wire.ChatResponse{
		Sender:    p.Name,
		Content:   req.Content,
		Source:    "chat",
		Timestamp: time.Now().UnixMilli(),
	})

	// Chat is mirrored onto the bridge for out-of-process consumers. A
	// bridge failure never fails the chat itself.
	if c.Bridge != nil {
		if err := c.Bridge.PublishChat(p.Name, req.Content); err != nil {
			slog.WarnContext(ctx, "publishing chat to bridge", "error", err)
		}
	}

	return nil
}
