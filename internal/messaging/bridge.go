package messaging

import (
	"encoding/json"
	"time"
)

// Subjects the bridge publishes on. External tooling (moderation bots,
// web widgets) subscribes to these.
const (
	SubjectChat = "ibh.chat"
	SubjectMotd = "ibh.motd"
)

// publisher is the slice of NatsServer the bridge needs.
type publisher interface {
	Publish(subject string, data []byte) error
}

// Bridge mirrors public game events onto NATS subjects.
type Bridge struct {
	pub publisher
	now func() time.Time
}

// NewBridge creates a bridge over a running NATS server.
func NewBridge(pub publisher) *Bridge {
	return &Bridge{
		pub: pub,
		now: time.Now,
	}
}

// PublishChat mirrors one public chat line.
func (b *Bridge) PublishChat(sender, content string) error {
	data, err := json.Marshal(struct {
		Sender    string `json:"sender"`
		Content   string `json:"content"`
		Timestamp int64  `json:"timestamp"`
	}{sender, content, b.now().Unix()})
	if err != nil {
		return err
	}
	return b.pub.Publish(SubjectChat, data)
}

// PublishMotd mirrors a message-of-the-day change.
func (b *Bridge) PublishMotd(motd string) error {
	data, err := json.Marshal(struct {
		Motd      string `json:"motd"`
		Timestamp int64  `json:"timestamp"`
	}{motd, b.now().Unix()})
	if err != nil {
		return err
	}
	return b.pub.Publish(SubjectMotd, data)
}
