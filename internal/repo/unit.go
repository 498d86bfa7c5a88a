package repo

import "context"

// UserRepository persists accounts.
type UserRepository interface {
	// InsertIfNotExists inserts the user and fills in its id. It returns
	// false without error when the username is already taken.
	InsertIfNotExists(u *User) (bool, error)
	GetByUsername(username string) (*User, error)
	Update(u *User) error
}

// CharacterRepository persists characters and their stats.
type CharacterRepository interface {
	InsertIfNotExists(c *Character) (bool, error)
	GetByUser(userID uint64) ([]*Character, error)
	GetByName(name string) (*Character, error)
	Update(c *Character) error
	Delete(id uint64) error
}

// BossRepository persists world bosses.
type BossRepository interface {
	InsertIfNotExists(b *Boss) (bool, error)
	Get(id uint64) (*Boss, error)
	Update(b *Boss) error
}

// CompanyRepository reads player companies.
type CompanyRepository interface {
	GetAll() ([]*Company, error)
}

// Unit is one handler invocation's view of persistence. Every repository
// obtained from it shares the same transaction; Commit or Rollback must be
// called before the handler returns.
type Unit interface {
	Users() UserRepository
	Characters() CharacterRepository
	Bosses() BossRepository
	Companies() CompanyRepository
	Commit() error
	Rollback() error
}

// Provider opens units of work, one per handler invocation.
type Provider interface {
	Begin(ctx context.Context) (Unit, error)
}
