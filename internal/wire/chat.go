package wire

import "encoding/json"

func init() {
	register(TypeChatRequest, "chat_request")
	register(TypeChatResponse, "chat_response")
}

// ChatRequest is a public chat line from a playing character.
type ChatRequest struct {
	Content string
}

func (m *ChatRequest) Type() uint64 { return TypeChatRequest }

func (m *ChatRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type    uint64 `json:"type"`
		Content string `json:"content"`
	}{TypeChatRequest, m.Content})
}

func DeserializeChatRequest(d *Document) (*ChatRequest, bool) {
	if !d.requires("chat_request", "content") ||
		!d.matches("chat_request", TypeChatRequest) {
		return nil, false
	}
	return &ChatRequest{Content: d.String("content")}, true
}

// ChatResponse is a chat line fanned out to every live connection.
type ChatResponse struct {
	Sender    string
	Content   string
	Source    string
	Timestamp int64
}

func (m *ChatResponse) Type() uint64 { return TypeChatResponse }

func (m *ChatResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type      uint64 `json:"type"`
		Sender    string `json:"sender"`
		Content   string `json:"content"`
		Source    string `json:"source"`
		Timestamp int64  `json:"timestamp"`
	}{TypeChatResponse, m.Sender, m.Content, m.Source, m.Timestamp})
}

func DeserializeChatResponse(d *Document) (*ChatResponse, bool) {
	if !d.requires("chat_response", "sender", "content", "source", "timestamp") ||
		!d.matches("chat_response", TypeChatResponse) {
		return nil, false
	}
	return &ChatResponse{
		Sender:    d.String("sender"),
		Content:   d.String("content"),
		Source:    d.String("source"),
		Timestamp: d.Int64("timestamp"),
	}, true
}
