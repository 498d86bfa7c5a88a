package repo

import (
	"context"
	"fmt"
	"log/slog"
)

// SQLProvider opens SQL units over an injected Connector.
type SQLProvider struct {
	connector Connector
}

// NewSQLProvider wraps a database connector.
func NewSQLProvider(c Connector) *SQLProvider {
	return &SQLProvider{connector: c}
}

func (p *SQLProvider) Begin(ctx context.Context) (Unit, error) {
	tx, err := p.connector.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &sqlUnit{tx: tx}, nil
}

type sqlUnit struct {
	tx Transaction
}

func (u *sqlUnit) Users() UserRepository           { return &sqlUsers{tx: u.tx} }
func (u *sqlUnit) Characters() CharacterRepository { return &sqlCharacters{tx: u.tx} }
func (u *sqlUnit) Bosses() BossRepository          { return &sqlBosses{tx: u.tx} }
func (u *sqlUnit) Companies() CompanyRepository    { return &sqlCompanies{tx: u.tx} }
func (u *sqlUnit) Commit() error                   { return u.tx.Commit() }
func (u *sqlUnit) Rollback() error                 { return u.tx.Rollback() }

type sqlUsers struct {
	tx Transaction
}

func (r *sqlUsers) InsertIfNotExists(u *User) (bool, error) {
	result, err := r.tx.Execute(fmt.Sprintf(
		"INSERT INTO users (username, password, email, login_attempts, is_game_master, max_characters) VALUES ('%s', '%s', '%s', %d, %t, %d) ON CONFLICT DO NOTHING RETURNING id",
		r.tx.Escape(u.Username), r.tx.Escape(u.Password), r.tx.Escape(u.Email), u.LoginAttempts, u.GameMaster, u.MaxCharacters))
	if err != nil {
		return false, err
	}

	slog.Debug("insert user", "rows", len(result))

	if len(result) == 0 {
		// already exists
		return false, nil
	}

	u.ID = result[0].Uint64("id")
	return true, nil
}

func (r *sqlUsers) GetByUsername(username string) (*User, error) {
	result, err := r.tx.Execute(fmt.Sprintf("SELECT id, username, password, email, login_attempts, is_game_master, max_characters FROM users WHERE username = '%s'", r.tx.Escape(username)))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return userFromRow(result[0]), nil
}

func (r *sqlUsers) Update(u *User) error {
	_, err := r.tx.Execute(fmt.Sprintf(
		"UPDATE users SET password = '%s', email = '%s', login_attempts = %d, is_game_master = %t, max_characters = %d WHERE id = %d",
		r.tx.Escape(u.Password), r.tx.Escape(u.Email), u.LoginAttempts, u.GameMaster, u.MaxCharacters, u.ID))
	return err
}

func userFromRow(row Row) *User {
	return &User{
		ID:            row.Uint64("id"),
		Username:      row.String("username"),
		Password:      row.String("password"),
		Email:         row.String("email"),
		LoginAttempts: uint16(row.Uint64("login_attempts")),
		MaxCharacters: uint16(row.Uint64("max_characters")),
		GameMaster:    row.Bool("is_game_master"),
	}
}

type sqlCharacters struct {
	tx Transaction
}

func (r *sqlCharacters) InsertIfNotExists(c *Character) (bool, error) {
	result, err := r.tx.Execute(fmt.Sprintf(
		"INSERT INTO characters (user_id, name, race, class, level, skill_points) VALUES (%d, '%s', '%s', '%s', %d, %d) ON CONFLICT DO NOTHING RETURNING id",
		c.UserID, r.tx.Escape(c.Name), r.tx.Escape(c.Race), r.tx.Escape(c.Class), c.Level, c.SkillPoints))
	if err != nil {
		return false, err
	}

	if len(result) == 0 {
		// already exists
		return false, nil
	}

	c.ID = result[0].Uint64("id")
	if err := r.saveStats(c); err != nil {
		return false, err
	}
	return true, nil
}

func (r *sqlCharacters) GetByUser(userID uint64) ([]*Character, error) {
	result, err := r.tx.Execute(fmt.Sprintf("SELECT id, user_id, name, race, class, level, skill_points FROM characters WHERE user_id = %d", userID))
	if err != nil {
		return nil, err
	}

	chars := make([]*Character, 0, len(result))
	for _, row := range result {
		c := characterFromRow(row)
		if c.Stats, err = r.loadStats(c.ID); err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, nil
}

func (r *sqlCharacters) GetByName(name string) (*Character, error) {
	result, err := r.tx.Execute(fmt.Sprintf("SELECT id, user_id, name, race, class, level, skill_points FROM characters WHERE name = '%s'", r.tx.Escape(name)))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	c := characterFromRow(result[0])
	if c.Stats, err = r.loadStats(c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *sqlCharacters) Update(c *Character) error {
	_, err := r.tx.Execute(fmt.Sprintf(
		"UPDATE characters SET level = %d, skill_points = %d WHERE id = %d",
		c.Level, c.SkillPoints, c.ID))
	if err != nil {
		return err
	}
	return r.saveStats(c)
}

func (r *sqlCharacters) Delete(id uint64) error {
	if _, err := r.tx.Execute(fmt.Sprintf("DELETE FROM character_stats WHERE character_id = %d", id)); err != nil {
		return err
	}
	_, err := r.tx.Execute(fmt.Sprintf("DELETE FROM characters WHERE id = %d", id))
	return err
}

func (r *sqlCharacters) loadStats(characterID uint64) (map[string]int64, error) {
	result, err := r.tx.Execute(fmt.Sprintf("SELECT stat_name, value FROM character_stats WHERE character_id = %d", characterID))
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(result))
	for _, row := range result {
		stats[row.String("stat_name")] = row.Int64("value")
	}
	return stats, nil
}

func (r *sqlCharacters) saveStats(c *Character) error {
	for name, value := range c.Stats {
		_, err := r.tx.Execute(fmt.Sprintf(
			"INSERT INTO character_stats (character_id, stat_name, value) VALUES (%d, '%s', %d) ON CONFLICT (character_id, stat_name) DO UPDATE SET value = %d",
			c.ID, r.tx.Escape(name), value, value))
		if err != nil {
			return err
		}
	}
	return nil
}

func characterFromRow(row Row) *Character {
	return &Character{
		ID:          row.Uint64("id"),
		UserID:      row.Uint64("user_id"),
		Name:        row.String("name"),
		Race:        row.String("race"),
		Class:       row.String("class"),
		Level:       row.Uint64("level"),
		SkillPoints: row.Uint64("skill_points"),
	}
}

type sqlBosses struct {
	tx Transaction
}

func (r *sqlBosses) InsertIfNotExists(b *Boss) (bool, error) {
	result, err := r.tx.Execute(fmt.Sprintf("INSERT INTO bosses (name) VALUES ('%s') ON CONFLICT DO NOTHING RETURNING id", r.tx.Escape(b.Name)))
	if err != nil {
		return false, err
	}

	slog.Debug("insert boss", "rows", len(result))

	if len(result) == 0 {
		// already exists
		return false, nil
	}

	b.ID = result[0].Uint64("id")
	return true, nil
}

func (r *sqlBosses) Get(id uint64) (*Boss, error) {
	result, err := r.tx.Execute(fmt.Sprintf("SELECT id, name FROM bosses WHERE id = %d", id))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return &Boss{ID: result[0].Uint64("id"), Name: result[0].String("name")}, nil
}

func (r *sqlBosses) Update(b *Boss) error {
	_, err := r.tx.Execute(fmt.Sprintf("UPDATE bosses SET name = '%s' WHERE id = %d", r.tx.Escape(b.Name), b.ID))
	return err
}

type sqlCompanies struct {
	tx Transaction
}

func (r *sqlCompanies) GetAll() ([]*Company, error) {
	result, err := r.tx.Execute("SELECT c.id, c.name, COUNT(cm.id) AS members FROM companies c LEFT JOIN company_members cm ON cm.company_id = c.id GROUP BY c.id, c.name")
	if err != nil {
		return nil, err
	}

	companies := make([]*Company, 0, len(result))
	for _, row := range result {
		c := &Company{
			ID:      row.Uint64("id"),
			Name:    row.String("name"),
			Members: row.Uint64("members"),
			Bonuses: map[string]int64{},
		}

		bonuses, err := r.tx.Execute(fmt.Sprintf("SELECT stat_name, value FROM company_bonuses WHERE company_id = %d", c.ID))
		if err != nil {
			return nil, err
		}
		for _, b := range bonuses {
			c.Bonuses[b.String("stat_name")] = b.Int64("value")
		}

		companies = append(companies, c)
	}
	return companies, nil
}
