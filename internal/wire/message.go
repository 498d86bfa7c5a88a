package wire

import "fmt"

// Message is a value carried on the wire in either direction. Every message
// has a globally unique numeric discriminator and a deterministic JSON
// encoding that embeds it as the "type" field.
type Message interface {
	Type() uint64
	Serialize() ([]byte, error)
}

// Discriminators are assigned once and never reused. Grouped by concern with
// gaps left for future messages within each group.
const (
	// user access
	TypeLoginRequest    uint64 = 1
	TypeLoginResponse   uint64 = 2
	TypeRegisterRequest uint64 = 3

	// character lifecycle
	TypeCreateCharacterRequest uint64 = 10
	TypePlayCharacterRequest   uint64 = 11
	TypeDeleteCharacterRequest uint64 = 12
	TypePlayCharacterResponse  uint64 = 13

	// chat
	TypeChatRequest  uint64 = 20
	TypeChatResponse uint64 = 21

	// moderation
	TypeSetMotdRequest     uint64 = 30
	TypeUpdateMotdResponse uint64 = 31

	// generic envelopes
	TypeOkResponse    uint64 = 40
	TypeErrorResponse uint64 = 41

	// companies
	TypeCompanyListingRequest  uint64 = 50
	TypeCompanyListingResponse uint64 = 51

	// battle
	TypeBattleUpdateResponse   uint64 = 60
	TypeBattleFinishedResponse uint64 = 61

	// resource gathering
	TypeStartGatheringRequest  uint64 = 70
	TypeStopGatheringRequest   uint64 = 71
	TypeResourceUpdateResponse uint64 = 72
)

var catalog = map[uint64]string{}

// register claims a discriminator for a message name. Claiming the same
// discriminator twice is a programming error caught at init.
func register(t uint64, name string) {
	if existing, ok := catalog[t]; ok {
		panic(fmt.Sprintf("wire: discriminator %d claimed by both %q and %q", t, existing, name))
	}
	catalog[t] = name
}

// Name returns the registered name for a discriminator, for logging.
func Name(t uint64) string {
	if name, ok := catalog[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", t)
}

// Known reports whether a discriminator belongs to the catalog.
func Known(t uint64) bool {
	_, ok := catalog[t]
	return ok
}
