package wire

import "encoding/json"

func init() {
	register(TypeCreateCharacterRequest, "create_character_request")
	register(TypePlayCharacterRequest, "play_character_request")
	register(TypeDeleteCharacterRequest, "delete_character_request")
	register(TypePlayCharacterResponse, "play_character_response")
}

// CreateCharacterRequest creates a new character on the logged-in account.
type CreateCharacterRequest struct {
	Name  string
	Race  string
	Class string
}

func (m *CreateCharacterRequest) Type() uint64 { return TypeCreateCharacterRequest }

func (m *CreateCharacterRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type  uint64 `json:"type"`
		Name  string `json:"name"`
		Race  string `json:"race"`
		Class string `json:"class"`
	}{TypeCreateCharacterRequest, m.Name, m.Race, m.Class})
}

func DeserializeCreateCharacterRequest(d *Document) (*CreateCharacterRequest, bool) {
	if !d.requires("create_character_request", "name", "race", "class") ||
		!d.matches("create_character_request", TypeCreateCharacterRequest) {
		return nil, false
	}
	return &CreateCharacterRequest{
		Name:  d.String("name"),
		Race:  d.String("race"),
		Class: d.String("class"),
	}, true
}

// PlayCharacterRequest selects a character and enters the world with it.
type PlayCharacterRequest struct {
	Name string
}

func (m *PlayCharacterRequest) Type() uint64 { return TypePlayCharacterRequest }

func (m *PlayCharacterRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
		Name string `json:"name"`
	}{TypePlayCharacterRequest, m.Name})
}

func DeserializePlayCharacterRequest(d *Document) (*PlayCharacterRequest, bool) {
	if !d.requires("play_character_request", "name") ||
		!d.matches("play_character_request", TypePlayCharacterRequest) {
		return nil, false
	}
	return &PlayCharacterRequest{Name: d.String("name")}, true
}

// DeleteCharacterRequest permanently removes a character from the account.
type DeleteCharacterRequest struct {
	Name string
}

func (m *DeleteCharacterRequest) Type() uint64 { return TypeDeleteCharacterRequest }

func (m *DeleteCharacterRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
		Name string `json:"name"`
	}{TypeDeleteCharacterRequest, m.Name})
}

func DeserializeDeleteCharacterRequest(d *Document) (*DeleteCharacterRequest, bool) {
	if !d.requires("delete_character_request", "name") ||
		!d.matches("delete_character_request", TypeDeleteCharacterRequest) {
		return nil, false
	}
	return &DeleteCharacterRequest{Name: d.String("name")}, true
}

// PlayCharacterResponse confirms world entry and carries the character's
// current state keyed by stat name.
type PlayCharacterResponse struct {
	Name  string
	Race  string
	Class string
	Level uint64
	Stats map[string]int64
}

func (m *PlayCharacterResponse) Type() uint64 { return TypePlayCharacterResponse }

func (m *PlayCharacterResponse) Serialize() ([]byte, error) {
	stats := m.Stats
	if stats == nil {
		stats = map[string]int64{}
	}
	return json.Marshal(struct {
		Type  uint64           `json:"type"`
		Name  string           `json:"name"`
		Race  string           `json:"race"`
		Class string           `json:"class"`
		Level uint64           `json:"level"`
		Stats map[string]int64 `json:"stats"`
	}{TypePlayCharacterResponse, m.Name, m.Race, m.Class, m.Level, stats})
}

func DeserializePlayCharacterResponse(d *Document) (*PlayCharacterResponse, bool) {
	if !d.requires("play_character_response", "name", "race", "class", "level", "stats") ||
		!d.matches("play_character_response", TypePlayCharacterResponse) {
		return nil, false
	}
	m := &PlayCharacterResponse{
		Name:  d.String("name"),
		Race:  d.String("race"),
		Class: d.String("class"),
		Level: d.Uint64("level"),
		Stats: map[string]int64{},
	}
	d.decode("stats", &m.Stats)
	return m, true
}
