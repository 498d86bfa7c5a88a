package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposed(t *testing.T) {
	m := New(func() int { return 3 }, func() int { return 7 })
	m.ObserveTick(5 * time.Millisecond)
	m.CountDispatch("ok")
	m.CountDispatch("error")
	m.CountSent(4)
	m.CountBattleResolved()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"ibh_sessions 3",
		"ibh_inbound_queue_depth 7",
		`ibh_messages_dispatched_total{result="ok"} 1`,
		`ibh_messages_dispatched_total{result="error"} 1`,
		"ibh_messages_sent_total 4",
		"ibh_battles_resolved_total 1",
		"ibh_tick_duration_seconds_count 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}
