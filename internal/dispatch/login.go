package dispatch

import (
	"context"

	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

func handleLogin(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeLoginRequest(d)
	if !ok {
		return ErrMalformed
	}

	if s.Username != "" {
		return Errorf("already_logged_in", "this connection is already logged in")
	}

	user, err := u.Users().GetByUsername(req.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return &Error{
			Code:       "invalid_credentials",
			Msg:        "unknown username or wrong password",
			ClearLogin: true,
		}
	}

	if err := c.Hasher.Compare(user.Password, req.Password); err != nil {
		return &Error{
			Code:       "invalid_credentials",
			Msg:        "unknown username or wrong password",
			ClearLogin: true,
		}
	}

	if user.LoginAttempts > 0 {
		user.LoginAttempts = 0
		if err := u.Users().Update(user); err != nil {
			return err
		}
	}

	chars, err := u.Characters().GetByUser(user.ID)
	if err != nil {
		return err
	}

	s.Username = user.Username
	s.GameMaster = user.GameMaster

	c.Out.Send(s.ID, &wire.LoginResponse{
		Username:   user.Username,
		GameMaster: user.GameMaster,
		Motd:       c.Motd,
		Characters: characterInfos(chars),
	})
	return nil
}

func characterInfos(chars []*repo.Character) []wire.CharacterInfo {
	infos := make([]wire.CharacterInfo, 0, len(chars))
	for _, ch := range chars {
		infos = append(infos, wire.CharacterInfo{
			Name:  ch.Name,
			Race:  ch.Race,
			Class: ch.Class,
			Level: ch.Level,
		})
	}
	return infos
}
