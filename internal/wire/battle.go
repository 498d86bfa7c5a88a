package wire

import "encoding/json"

func init() {
	register(TypeBattleUpdateResponse, "battle_update_response")
	register(TypeBattleFinishedResponse, "battle_finished_response")
}

// BattleUpdateResponse reports one simulated exchange of an ongoing battle.
type BattleUpdateResponse struct {
	MonsterName  string
	MonsterLevel uint64
	MonsterHP    int64
	PlayerHP     int64
	DamageDealt  int64
	DamageTaken  int64
}

func (m *BattleUpdateResponse) Type() uint64 { return TypeBattleUpdateResponse }

func (m *BattleUpdateResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type         uint64 `json:"type"`
		MonsterName  string `json:"monster_name"`
		MonsterLevel uint64 `json:"monster_level"`
		MonsterHP    int64  `json:"monster_hp"`
		PlayerHP     int64  `json:"player_hp"`
		DamageDealt  int64  `json:"damage_dealt"`
		DamageTaken  int64  `json:"damage_taken"`
	}{TypeBattleUpdateResponse, m.MonsterName, m.MonsterLevel, m.MonsterHP, m.PlayerHP, m.DamageDealt, m.DamageTaken})
}

func DeserializeBattleUpdateResponse(d *Document) (*BattleUpdateResponse, bool) {
	if !d.requires("battle_update_response", "monster_name", "monster_level", "monster_hp", "player_hp", "damage_dealt", "damage_taken") ||
		!d.matches("battle_update_response", TypeBattleUpdateResponse) {
		return nil, false
	}
	return &BattleUpdateResponse{
		MonsterName:  d.String("monster_name"),
		MonsterLevel: d.Uint64("monster_level"),
		MonsterHP:    d.Int64("monster_hp"),
		PlayerHP:     d.Int64("player_hp"),
		DamageDealt:  d.Int64("damage_dealt"),
		DamageTaken:  d.Int64("damage_taken"),
	}, true
}

// BattleFinishedResponse reports a defeated monster and the rewards earned.
type BattleFinishedResponse struct {
	MonsterName  string
	MonsterLevel uint64
	XPGained     int64
	GoldGained   int64
}

func (m *BattleFinishedResponse) Type() uint64 { return TypeBattleFinishedResponse }

func (m *BattleFinishedResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type         uint64 `json:"type"`
		MonsterName  string `json:"monster_name"`
		MonsterLevel uint64 `json:"monster_level"`
		XPGained     int64  `json:"xp_gained"`
		GoldGained   int64  `json:"gold_gained"`
	}{TypeBattleFinishedResponse, m.MonsterName, m.MonsterLevel, m.XPGained, m.GoldGained})
}

func DeserializeBattleFinishedResponse(d *Document) (*BattleFinishedResponse, bool) {
	if !d.requires("battle_finished_response", "monster_name", "monster_level", "xp_gained", "gold_gained") ||
		!d.matches("battle_finished_response", TypeBattleFinishedResponse) {
		return nil, false
	}
	return &BattleFinishedResponse{
		MonsterName:  d.String("monster_name"),
		MonsterLevel: d.Uint64("monster_level"),
		XPGained:     d.Int64("xp_gained"),
		GoldGained:   d.Int64("gold_gained"),
	}, true
}
