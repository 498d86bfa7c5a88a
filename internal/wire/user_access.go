package wire

import "encoding/json"

func init() {
	register(TypeLoginRequest, "login_request")
	register(TypeLoginResponse, "login_response")
	register(TypeRegisterRequest, "register_request")
}

// LoginRequest asks to authenticate an existing user.
type LoginRequest struct {
	Username string
	Password string
}

func (m *LoginRequest) Type() uint64 { return TypeLoginRequest }

func (m *LoginRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type     uint64 `json:"type"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{TypeLoginRequest, m.Username, m.Password})
}

func DeserializeLoginRequest(d *Document) (*LoginRequest, bool) {
	if !d.requires("login_request", "username", "password") ||
		!d.matches("login_request", TypeLoginRequest) {
		return nil, false
	}
	return &LoginRequest{
		Username: d.String("username"),
		Password: d.String("password"),
	}, true
}

// RegisterRequest asks to create a new user account.
type RegisterRequest struct {
	Username string
	Password string
	Email    string
}

func (m *RegisterRequest) Type() uint64 { return TypeRegisterRequest }

func (m *RegisterRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type     uint64 `json:"type"`
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}{TypeRegisterRequest, m.Username, m.Password, m.Email})
}

func DeserializeRegisterRequest(d *Document) (*RegisterRequest, bool) {
	if !d.requires("register_request", "username", "password", "email") ||
		!d.matches("register_request", TypeRegisterRequest) {
		return nil, false
	}
	return &RegisterRequest{
		Username: d.String("username"),
		Password: d.String("password"),
		Email:    d.String("email"),
	}, true
}

// CharacterInfo is one playable character on the account, sent as part of a
// LoginResponse.
type CharacterInfo struct {
	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`
	Level uint64 `json:"level"`
}

// LoginResponse reports a successful login together with the account's
// characters and the current message of the day.
type LoginResponse struct {
	Username   string
	GameMaster bool
	Motd       string
	Characters []CharacterInfo
}

func (m *LoginResponse) Type() uint64 { return TypeLoginResponse }

func (m *LoginResponse) Serialize() ([]byte, error) {
	chars := m.Characters
	if chars == nil {
		chars = []CharacterInfo{}
	}
	return json.Marshal(struct {
		Type       uint64          `json:"type"`
		Username   string          `json:"username"`
		GameMaster bool            `json:"is_game_master"`
		Motd       string          `json:"motd"`
		Characters []CharacterInfo `json:"characters"`
	}{TypeLoginResponse, m.Username, m.GameMaster, m.Motd, chars})
}

func DeserializeLoginResponse(d *Document) (*LoginResponse, bool) {
	if !d.requires("login_response", "username", "is_game_master", "motd", "characters") ||
		!d.matches("login_response", TypeLoginResponse) {
		return nil, false
	}
	m := &LoginResponse{
		Username:   d.String("username"),
		GameMaster: d.Bool("is_game_master"),
		Motd:       d.String("motd"),
		Characters: []CharacterInfo{},
	}
	d.decode("characters", &m.Characters)
	return m, true
}
