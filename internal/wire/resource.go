package wire

import "encoding/json"

func init() {
	register(TypeStartGatheringRequest, "start_gathering_request")
	register(TypeStopGatheringRequest, "stop_gathering_request")
	register(TypeResourceUpdateResponse, "resource_update_response")
}

// StartGatheringRequest switches the playing character to gathering the
// named resource instead of fighting.
type StartGatheringRequest struct {
	Resource string
}

func (m *StartGatheringRequest) Type() uint64 { return TypeStartGatheringRequest }

func (m *StartGatheringRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type     uint64 `json:"type"`
		Resource string `json:"resource"`
	}{TypeStartGatheringRequest, m.Resource})
}

func DeserializeStartGatheringRequest(d *Document) (*StartGatheringRequest, bool) {
	if !d.requires("start_gathering_request", "resource") ||
		!d.matches("start_gathering_request", TypeStartGatheringRequest) {
		return nil, false
	}
	return &StartGatheringRequest{Resource: d.String("resource")}, true
}

// StopGatheringRequest returns the character to idle battling.
type StopGatheringRequest struct{}

func (m *StopGatheringRequest) Type() uint64 { return TypeStopGatheringRequest }

func (m *StopGatheringRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
	}{TypeStopGatheringRequest})
}

func DeserializeStopGatheringRequest(d *Document) (*StopGatheringRequest, bool) {
	if !d.matches("stop_gathering_request", TypeStopGatheringRequest) {
		return nil, false
	}
	return &StopGatheringRequest{}, true
}

// ResourceUpdateResponse reports one tick's gathering yield.
type ResourceUpdateResponse struct {
	Resource string
	Gained   int64
	Total    int64
}

func (m *ResourceUpdateResponse) Type() uint64 { return TypeResourceUpdateResponse }

func (m *ResourceUpdateResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type     uint64 `json:"type"`
		Resource string `json:"resource"`
		Gained   int64  `json:"gained"`
		Total    int64  `json:"total"`
	}{TypeResourceUpdateResponse, m.Resource, m.Gained, m.Total})
}

func DeserializeResourceUpdateResponse(d *Document) (*ResourceUpdateResponse, bool) {
	if !d.requires("resource_update_response", "resource", "gained", "total") ||
		!d.matches("resource_update_response", TypeResourceUpdateResponse) {
		return nil, false
	}
	return &ResourceUpdateResponse{
		Resource: d.String("resource"),
		Gained:   d.Int64("gained"),
		Total:    d.Int64("total"),
	}, true
}
