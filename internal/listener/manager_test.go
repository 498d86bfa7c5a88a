package listener

import (
	"context"
	"testing"

	"github.com/Oipo/IdleBossHunter/internal/game"
	"github.com/Oipo/IdleBossHunter/internal/queue"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
	"github.com/pixil98/go-testutil"
)

type fakeTransport struct{}

func (fakeTransport) Send(data []byte) error { return nil }
func (fakeTransport) Expired() bool          { return false }

func TestHandleFrame(t *testing.T) {
	reg := session.NewRegistry()
	q := queue.New[game.Inbound]()
	cm := NewConnectionManager(reg, q)

	s := cm.Accept(fakeTransport{})
	testutil.AssertEqual(t, "registered", reg.Len(), 1)

	cm.HandleFrame(context.Background(), s, []byte(`{"type": 20, "content": "hi"}`))
	in, ok := q.TryDequeue()
	if !ok {
		t.Fatal("expected a queued frame")
	}
	testutil.AssertEqual(t, "session", in.Session.ID, s.ID)
	testutil.AssertEqual(t, "type", in.Doc.Type, wire.TypeChatRequest)

	// Garbage never reaches the queue.
	cm.HandleFrame(context.Background(), s, []byte(`not json`))
	cm.HandleFrame(context.Background(), s, []byte(`{"no_type": true}`))
	testutil.AssertEqual(t, "queued after garbage", q.Len(), 0)
}

func TestClose(t *testing.T) {
	reg := session.NewRegistry()
	q := queue.New[game.Inbound]()
	cm := NewConnectionManager(reg, q)

	s := cm.Accept(fakeTransport{})
	cm.Close(s)

	testutil.AssertEqual(t, "registered", reg.Len(), 0)
	in, ok := q.TryDequeue()
	if !ok {
		t.Fatal("expected a disconnect item")
	}
	testutil.AssertEqual(t, "disconnect", in.Disconnect, true)
	testutil.AssertEqual(t, "session", in.Session.ID, s.ID)
}
