package repo

import (
	"context"
	"sync"
)

// MemoryProvider is a map-backed Provider for development and tests. Writes
// apply immediately; Commit and Rollback are accepted and ignored, so a
// handler that rolls back keeps its memory-mode writes. That is an accepted
// dev-mode difference from a real database.
type MemoryProvider struct {
	mu         sync.RWMutex
	nextID     uint64
	users      map[string]*User
	characters map[string]*Character
	bosses     map[uint64]*Boss
	companies  []*Company
}

// NewMemoryProvider creates an empty in-memory store.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		users:      make(map[string]*User),
		characters: make(map[string]*Character),
		bosses:     make(map[uint64]*Boss),
	}
}

// SeedCompany adds a company to the listing, for dev setups.
func (p *MemoryProvider) SeedCompany(c *Company) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	c.ID = p.nextID
	p.companies = append(p.companies, c)
}

func (p *MemoryProvider) Begin(ctx context.Context) (Unit, error) {
	return &memUnit{p: p}, nil
}

type memUnit struct {
	p *MemoryProvider
}

func (u *memUnit) Users() UserRepository           { return &memUsers{p: u.p} }
func (u *memUnit) Characters() CharacterRepository { return &memCharacters{p: u.p} }
func (u *memUnit) Bosses() BossRepository          { return &memBosses{p: u.p} }
func (u *memUnit) Companies() CompanyRepository    { return &memCompanies{p: u.p} }
func (u *memUnit) Commit() error                   { return nil }
func (u *memUnit) Rollback() error                 { return nil }

type memUsers struct {
	p *MemoryProvider
}

func (r *memUsers) InsertIfNotExists(u *User) (bool, error) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, exists := r.p.users[u.Username]; exists {
		return false, nil
	}

	r.p.nextID++
	u.ID = r.p.nextID
	stored := *u
	r.p.users[u.Username] = &stored
	return true, nil
}

func (r *memUsers) GetByUsername(username string) (*User, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	u, ok := r.p.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUsers) Update(u *User) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	stored := *u
	r.p.users[u.Username] = &stored
	return nil
}

type memCharacters struct {
	p *MemoryProvider
}

func (r *memCharacters) InsertIfNotExists(c *Character) (bool, error) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, exists := r.p.characters[c.Name]; exists {
		return false, nil
	}

	r.p.nextID++
	c.ID = r.p.nextID
	r.p.characters[c.Name] = copyCharacter(c)
	return true, nil
}

func (r *memCharacters) GetByUser(userID uint64) ([]*Character, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	var chars []*Character
	for _, c := range r.p.characters {
		if c.UserID == userID {
			chars = append(chars, copyCharacter(c))
		}
	}
	return chars, nil
}

func (r *memCharacters) GetByName(name string) (*Character, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	c, ok := r.p.characters[name]
	if !ok {
		return nil, nil
	}
	return copyCharacter(c), nil
}

func (r *memCharacters) Update(c *Character) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	r.p.characters[c.Name] = copyCharacter(c)
	return nil
}

func (r *memCharacters) Delete(id uint64) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	for name, c := range r.p.characters {
		if c.ID == id {
			delete(r.p.characters, name)
			return nil
		}
	}
	return nil
}

func copyCharacter(c *Character) *Character {
	copied := *c
	copied.Stats = make(map[string]int64, len(c.Stats))
	for k, v := range c.Stats {
		copied.Stats[k] = v
	}
	return &copied
}

type memBosses struct {
	p *MemoryProvider
}

func (r *memBosses) InsertIfNotExists(b *Boss) (bool, error) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	for _, existing := range r.p.bosses {
		if existing.Name == b.Name {
			return false, nil
		}
	}

	r.p.nextID++
	b.ID = r.p.nextID
	stored := *b
	r.p.bosses[b.ID] = &stored
	return true, nil
}

func (r *memBosses) Get(id uint64) (*Boss, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	b, ok := r.p.bosses[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *memBosses) Update(b *Boss) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	stored := *b
	r.p.bosses[b.ID] = &stored
	return nil
}

type memCompanies struct {
	p *MemoryProvider
}

func (r *memCompanies) GetAll() ([]*Company, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	companies := make([]*Company, 0, len(r.p.companies))
	for _, c := range r.p.companies {
		copied := *c
		companies = append(companies, &copied)
	}
	return companies, nil
}
