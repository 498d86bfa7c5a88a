package wire

import "encoding/json"

func init() {
	register(TypeSetMotdRequest, "set_motd_request")
	register(TypeUpdateMotdResponse, "update_motd_response")
}

// SetMotdRequest changes the message of the day. Game masters only.
type SetMotdRequest struct {
	Motd string
}

func (m *SetMotdRequest) Type() uint64 { return TypeSetMotdRequest }

func (m *SetMotdRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
		Motd string `json:"motd"`
	}{TypeSetMotdRequest, m.Motd})
}

func DeserializeSetMotdRequest(d *Document) (*SetMotdRequest, bool) {
	if !d.requires("set_motd_request", "motd") ||
		!d.matches("set_motd_request", TypeSetMotdRequest) {
		return nil, false
	}
	return &SetMotdRequest{Motd: d.String("motd")}, true
}

// UpdateMotdResponse broadcasts the new message of the day to everyone.
type UpdateMotdResponse struct {
	Motd string
}

func (m *UpdateMotdResponse) Type() uint64 { return TypeUpdateMotdResponse }

func (m *UpdateMotdResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
		Motd string `json:"motd"`
	}{TypeUpdateMotdResponse, m.Motd})
}

func DeserializeUpdateMotdResponse(d *Document) (*UpdateMotdResponse, bool) {
	if !d.requires("update_motd_response", "motd") ||
		!d.matches("update_motd_response", TypeUpdateMotdResponse) {
		return nil, false
	}
	return &UpdateMotdResponse{Motd: d.String("motd")}, true
}
