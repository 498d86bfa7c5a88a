package wire

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pixil98/go-testutil"
)

// deserializeAny routes a document to its catalog deserializer, mirroring
// what the dispatch table does in production.
func deserializeAny(d *Document) (Message, bool) {
	switch d.Type {
	case TypeLoginRequest:
		return orNil(DeserializeLoginRequest(d))
	case TypeLoginResponse:
		return orNil(DeserializeLoginResponse(d))
	case TypeRegisterRequest:
		return orNil(DeserializeRegisterRequest(d))
	case TypeCreateCharacterRequest:
		return orNil(DeserializeCreateCharacterRequest(d))
	case TypePlayCharacterRequest:
		return orNil(DeserializePlayCharacterRequest(d))
	case TypeDeleteCharacterRequest:
		return orNil(DeserializeDeleteCharacterRequest(d))
	case TypePlayCharacterResponse:
		return orNil(DeserializePlayCharacterResponse(d))
	case TypeChatRequest:
		return orNil(DeserializeChatRequest(d))
	case TypeChatResponse:
		return orNil(DeserializeChatResponse(d))
	case TypeSetMotdRequest:
		return orNil(DeserializeSetMotdRequest(d))
	case TypeUpdateMotdResponse:
		return orNil(DeserializeUpdateMotdResponse(d))
	case TypeOkResponse:
		return orNil(DeserializeOkResponse(d))
	case TypeErrorResponse:
		return orNil(DeserializeErrorResponse(d))
	case TypeCompanyListingRequest:
		return orNil(DeserializeCompanyListingRequest(d))
	case TypeCompanyListingResponse:
		return orNil(DeserializeCompanyListingResponse(d))
	case TypeBattleUpdateResponse:
		return orNil(DeserializeBattleUpdateResponse(d))
	case TypeBattleFinishedResponse:
		return orNil(DeserializeBattleFinishedResponse(d))
	case TypeStartGatheringRequest:
		return orNil(DeserializeStartGatheringRequest(d))
	case TypeStopGatheringRequest:
		return orNil(DeserializeStopGatheringRequest(d))
	case TypeResourceUpdateResponse:
		return orNil(DeserializeResourceUpdateResponse(d))
	}
	return nil, false
}

func orNil[T Message](m T, ok bool) (Message, bool) {
	if !ok {
		return nil, false
	}
	return m, true
}

func TestRoundTrip(t *testing.T) {
	tests := map[string]Message{
		"login request":          &LoginRequest{Username: "ibh", Password: "hunter2"},
		"login request empty":    &LoginRequest{},
		"register request":       &RegisterRequest{Username: "ibh", Password: "hunter2", Email: "ibh@example.com"},
		"login response":         &LoginResponse{Username: "ibh", GameMaster: true, Motd: "welcome", Characters: []CharacterInfo{{Name: "Crixus", Race: "dwarf", Class: "warrior", Level: 12}}},
		"login response empty":   &LoginResponse{Characters: []CharacterInfo{}},
		"create character":       &CreateCharacterRequest{Name: "Crixus", Race: "dwarf", Class: "warrior"},
		"play character":         &PlayCharacterRequest{Name: "Crixus"},
		"delete character":       &DeleteCharacterRequest{Name: "Crixus"},
		"play character resp":    &PlayCharacterResponse{Name: "Crixus", Race: "dwarf", Class: "warrior", Level: 12, Stats: map[string]int64{"hp": 120, "xp": -5}},
		"chat request":           &ChatRequest{Content: "hello there"},
		"chat request empty":     &ChatRequest{Content: ""},
		"chat response":          &ChatResponse{Sender: "ibh", Content: "hello", Source: "game", Timestamp: 1700000000000},
		"set motd":               &SetMotdRequest{Motd: "be excellent"},
		"update motd":            &UpdateMotdResponse{Motd: "be excellent"},
		"ok response":            &OkResponse{Message: "done"},
		"error response":         &ErrorResponse{Code: "not_playing", Error: "not playing", Pretty: "Select a character first.", ClearLoginData: true},
		"company listing req":    &CompanyListingRequest{},
		"company listing resp":   &CompanyListingResponse{Companies: []CompanyEntry{{Name: "Acme", Members: 3, Bonuses: map[string]int64{"gold": 10}}}},
		"battle update":          &BattleUpdateResponse{MonsterName: "rat king", MonsterLevel: 4, MonsterHP: -3, PlayerHP: 99, DamageDealt: 7, DamageTaken: 2},
		"battle finished":        &BattleFinishedResponse{MonsterName: "rat king", MonsterLevel: 4, XPGained: 40, GoldGained: 12},
		"start gathering":        &StartGatheringRequest{Resource: "wood"},
		"stop gathering":         &StopGatheringRequest{},
		"resource update":        &ResourceUpdateResponse{Resource: "wood", Gained: 2, Total: 44},
		"boundary int positive":  &ResourceUpdateResponse{Resource: "ore", Gained: 9223372036854775807, Total: 1},
		"boundary int negative":  &BattleUpdateResponse{MonsterName: "x", MonsterHP: -9223372036854775808},
	}

	for name, msg := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := msg.Serialize()
			if err != nil {
				t.Fatalf("unexpected serialize error: %v", err)
			}

			doc, err := ParseDocument(data)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			testutil.AssertEqual(t, "discriminator", doc.Type, msg.Type())

			got, ok := deserializeAny(doc)
			if !ok {
				t.Fatalf("deserialize returned absent")
			}
			if !reflect.DeepEqual(got, msg) {
				t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, msg)
			}
		})
	}
}

func TestDeserializeWrongDiscriminator(t *testing.T) {
	// A well-formed login request handed to a different type's deserializer
	// must come back absent even though the other fields look plausible.
	data, err := (&LoginRequest{Username: "ibh", Password: "hunter2"}).Serialize()
	if err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if _, ok := DeserializeRegisterRequest(doc); ok {
		t.Error("register deserialize accepted a login request")
	}
	if _, ok := DeserializeChatRequest(doc); ok {
		t.Error("chat deserialize accepted a login request")
	}
	if _, ok := DeserializeCompanyListingRequest(doc); ok {
		t.Error("company listing deserialize accepted a login request")
	}
}

func TestDeserializeMissingField(t *testing.T) {
	tests := map[string]struct {
		msg    Message
		fields []string
	}{
		"login request":   {&LoginRequest{Username: "a", Password: "b"}, []string{"username", "password"}},
		"register":        {&RegisterRequest{Username: "a", Password: "b", Email: "c"}, []string{"username", "password", "email"}},
		"chat request":    {&ChatRequest{Content: "hi"}, []string{"content"}},
		"set motd":        {&SetMotdRequest{Motd: "m"}, []string{"motd"}},
		"error response":  {&ErrorResponse{Code: "x", Error: "y"}, []string{"code", "error", "pretty_error", "clear_login_data"}},
		"battle finished": {&BattleFinishedResponse{MonsterName: "m"}, []string{"monster_name", "monster_level", "xp_gained", "gold_gained"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := tc.msg.Serialize()
			if err != nil {
				t.Fatalf("unexpected serialize error: %v", err)
			}

			for _, field := range tc.fields {
				var obj map[string]json.RawMessage
				if err := json.Unmarshal(data, &obj); err != nil {
					t.Fatalf("unexpected unmarshal error: %v", err)
				}
				delete(obj, field)
				partial, err := json.Marshal(obj)
				if err != nil {
					t.Fatalf("unexpected marshal error: %v", err)
				}

				doc, err := ParseDocument(partial)
				if err != nil {
					t.Fatalf("unexpected parse error: %v", err)
				}
				if _, ok := deserializeAny(doc); ok {
					t.Errorf("deserialize accepted document missing %q", field)
				}
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	tests := map[string]struct {
		data   string
		expErr bool
	}{
		"valid":            {`{"type":1,"username":"a","password":"b"}`, false},
		"not json":         {`{{{`, true},
		"not an object":    {`[1,2,3]`, true},
		"no type field":    {`{"username":"a"}`, true},
		"non numeric type": {`{"type":"login"}`, true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.data))
			if tc.expErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCatalogNames(t *testing.T) {
	testutil.AssertEqual(t, "login request name", Name(TypeLoginRequest), "login_request")
	testutil.AssertEqual(t, "unknown name", Name(9999), "unknown(9999)")
	testutil.AssertEqual(t, "known", Known(TypeChatRequest), true)
	testutil.AssertEqual(t, "not known", Known(9999), false)
}
