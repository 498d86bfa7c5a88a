package dispatch

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

var nameCaser = cases.Title(language.English)

// normalizeName folds character names to a canonical Title Case form so
// "crixus" and "CRIXUS" are the same character.
func normalizeName(name string) string {
	return nameCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// startingStats is the baseline every new character begins with.
func startingStats() map[string]int64 {
	return map[string]int64{
		ecs.StatHP:      50,
		ecs.StatMaxHP:   50,
		ecs.StatDamage:  10,
		ecs.StatDefense: 5,
		ecs.StatXP:      0,
		ecs.StatGold:    0,
	}
}

func handleCreateCharacter(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeCreateCharacterRequest(d)
	if !ok {
		return ErrMalformed
	}

	if s.Username == "" {
		return Errorf("not_logged_in", "log in before creating a character")
	}

	name := normalizeName(req.Name)
	if name == "" {
		return Errorf("invalid_name", "character name must not be empty")
	}

	user, err := u.Users().GetByUsername(s.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return Errorf("not_logged_in", "account no longer exists")
	}

	existing, err := u.Characters().GetByUser(user.ID)
	if err != nil {
		return err
	}
	if len(existing) >= int(user.MaxCharacters) {
		return Errorf("too_many_characters", "account is limited to %d characters", user.MaxCharacters)
	}

	ch := &repo.Character{
		UserID:      user.ID,
		Name:        name,
		Race:        req.Race,
		Class:       req.Class,
		Level:       1,
		Stats:       startingStats(),
		SkillPoints: 0,
	}

	inserted, err := u.Characters().InsertIfNotExists(ch)
	if err != nil {
		return err
	}
	if !inserted {
		return Errorf("character_exists", "a character named %q already exists", name)
	}

	c.Out.Send(s.ID, &wire.OkResponse{Message: "character created"})
	return nil
}

func handlePlayCharacter(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializePlayCharacterRequest(d)
	if !ok {
		return ErrMalformed
	}

	if s.Username == "" {
		return Errorf("not_logged_in", "log in before selecting a character")
	}
	if s.Playing {
		return Errorf("already_playing", "this connection is already in the world")
	}

	user, err := u.Users().GetByUsername(s.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return Errorf("not_logged_in", "account no longer exists")
	}

	ch, err := u.Characters().GetByName(normalizeName(req.Name))
	if err != nil {
		return err
	}
	if ch == nil || ch.UserID != user.ID {
		return Errorf("character_not_found", "no such character on this account")
	}

	// One entity per character. A second connection on the same account must
	// not mint a duplicate that would double-earn and clobber saves.
	if _, _, inWorld := c.World.PlayerByName(ch.Name); inWorld {
		return Errorf("already_playing", "that character is already in the world")
	}

	stats := make(ecs.StatMap, len(ch.Stats))
	for name, v := range ch.Stats {
		if id, ok := c.Stats.ID(name); ok {
			stats[id] = v
		}
	}

	entity := c.World.NewEntity()
	c.World.Players.Set(entity, ecs.PlayerComponent{
		ID:           ch.ID,
		ConnectionID: uint64(s.ID),
		Name:         ch.Name,
		Race:         ch.Race,
		Class:        ch.Class,
		Level:        ch.Level,
		SkillPoints:  ch.SkillPoints,
		Stats:        stats,
	})

	// Characters idle-battle from the moment they enter the world.
	p, _ := c.World.Players.Get(entity)
	c.World.Battles.Set(entity, c.Encounters.Spawn(p))

	s.Playing = true
	s.Entity = entity

	c.Out.Send(s.ID, &wire.PlayCharacterResponse{
		Name:  ch.Name,
		Race:  ch.Race,
		Class: ch.Class,
		Level: ch.Level,
		Stats: c.Stats.Named(stats),
	})
	return nil
}

func handleDeleteCharacter(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeDeleteCharacterRequest(d)
	if !ok {
		return ErrMalformed
	}

	if s.Username == "" {
		return Errorf("not_logged_in", "log in before deleting a character")
	}

	user, err := u.Users().GetByUsername(s.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return Errorf("not_logged_in", "account no longer exists")
	}

	name := normalizeName(req.Name)
	ch, err := u.Characters().GetByName(name)
	if err != nil {
		return err
	}
	if ch == nil || ch.UserID != user.ID {
		return Errorf("character_not_found", "no such character on this account")
	}

	if s.Playing {
		if p, ok := c.World.Players.Get(s.Entity); ok && p.ID == ch.ID {
			c.World.RemoveEntity(s.Entity)
			s.Playing = false
			s.Entity = 0
		}
	}

	// Still in world after the self-removal above means another connection
	// is playing this character; its save on disconnect would resurrect it.
	if _, _, inWorld := c.World.PlayerByName(ch.Name); inWorld {
		return Errorf("character_in_use", "that character is being played on another connection")
	}

	if err := u.Characters().Delete(ch.ID); err != nil {
		return err
	}

	c.Out.Send(s.ID, &wire.OkResponse{Message: "character deleted"})
	return nil
}
