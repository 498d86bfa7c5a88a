package repo

// User is an account row.
type User struct {
	ID            uint64
	Username      string
	Password      string
	Email         string
	LoginAttempts uint16
	MaxCharacters uint16
	GameMaster    bool
}

// Character is a playable character row plus its name-keyed stats.
type Character struct {
	ID          uint64
	UserID      uint64
	Name        string
	Race        string
	Class       string
	Level       uint64
	SkillPoints uint64
	Stats       map[string]int64
}

// Boss is a world boss row.
type Boss struct {
	ID    uint64
	Name  string
	Stats map[string]int64
}

// Company is a player company row with its stat bonuses.
type Company struct {
	ID      uint64
	Name    string
	Members uint64
	Bonuses map[string]int64
}
