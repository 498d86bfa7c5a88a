package dispatch

import (
	"context"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// defaultMaxCharacters caps a fresh account's character slots.
const defaultMaxCharacters = 8

func handleRegister(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeRegisterRequest(d)
	if !ok {
		return ErrMalformed
	}

	if s.Username != "" {
		return Errorf("already_logged_in", "this connection is already logged in")
	}
	if req.Username == "" {
		return Errorf("invalid_username", "username must not be empty")
	}
	if len(req.Password) < 8 {
		return Errorf("invalid_password", "password must be at least 8 characters")
	}

	hash, err := c.Hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	user := &repo.User{
		Username:      req.Username,
		Password:      hash,
		Email:         req.Email,
		MaxCharacters: defaultMaxCharacters,
	}

	inserted, err := u.Users().InsertIfNotExists(user)
	if err != nil {
		return err
	}
	if !inserted {
		return Errorf("user_exists", "username %q is taken", req.Username)
	}

	s.Username = user.Username

	c.Out.Send(s.ID, &wire.LoginResponse{
		Username:   user.Username,
		Motd:       c.Motd,
		Characters: []wire.CharacterInfo{},
	})
	return nil
}
