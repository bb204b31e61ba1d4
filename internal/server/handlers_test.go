package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aimrange/internal/analytics"
	"aimrange/internal/config"
	"aimrange/internal/events"
	"aimrange/internal/ledger"
	"aimrange/internal/sessions"
	"aimrange/internal/stats"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(config.DefaultTuning(), ledger.NewMemory(), events.NewBus(), sessions.Options{TickRate: 30, Seed: 1})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func seedRounds(t *testing.T, store ledger.Store) {
	t.Helper()
	rounds := []stats.Summary{
		{ID: "11111111-1111-1111-1111-111111111111", PlayerID: "p1", PlayerName: "Alice", Mode: "static", Shots: 20, Hits: 18, Accuracy: 90, BestReactionMs: 240, BestStreak: 12, Score: 420},
		{ID: "22222222-2222-2222-2222-222222222222", PlayerID: "p2", PlayerName: "Bob", Mode: "static", Shots: 20, Hits: 10, Accuracy: 50, BestReactionMs: 310, BestStreak: 4, Score: 610},
	}
	if err := store.RecordBatch(context.Background(), rounds); err != nil {
		t.Fatalf("RecordBatch() error: %v", err)
	}
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func wsURL(ts *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?" + query
}

type wireMessage struct {
	Type      string `json:"t"`
	SessionID string `json:"sid"`
	PlayerID  string `json:"id"`
	Frame     *struct {
		Scene string `json:"scene"`
		Mode  string `json:"mode"`
	} `json:"f"`
}

func readUntil(ctx context.Context, t *testing.T, c *websocket.Conn, match func(wireMessage) bool) wireMessage {
	t.Helper()
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error: %v", err)
		}
		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decoding %s: %v", data, err)
		}
		if match(msg) {
			return msg
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleWS_SessionLifecycle(t *testing.T) {
	srv, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, wsURL(ts, "id=p1&name=Alice"), nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer c.CloseNow()

	welcome := readUntil(ctx, t, c, func(m wireMessage) bool { return m.Type == "welcome" })
	if welcome.SessionID == "" {
		t.Error("welcome should carry a session ID")
	}
	if welcome.PlayerID != "p1" {
		t.Errorf("PlayerID = %q, want p1", welcome.PlayerID)
	}
	if srv.Sessions.Len() != 1 || srv.Hub.Len() != 1 {
		t.Errorf("sessions/clients = %d/%d, want 1/1", srv.Sessions.Len(), srv.Hub.Len())
	}

	if err := c.Write(ctx, websocket.MessageText, []byte(`{"t":"mode","k":"static"}`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	snap := readUntil(ctx, t, c, func(m wireMessage) bool {
		return m.Type == "snapshot" && m.Frame != nil && m.Frame.Scene == "running"
	})
	if snap.Frame.Mode != "static" {
		t.Errorf("Mode = %q, want static", snap.Frame.Mode)
	}

	c.Close(websocket.StatusNormalClosure, "")
	waitFor(t, func() bool { return srv.Sessions.Len() == 0 && srv.Hub.Len() == 0 })
}

func TestHandleWS_MsgpackEncoding(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, wsURL(ts, "enc=msgpack"), nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer c.CloseNow()

	typ, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if typ != websocket.MessageBinary {
		t.Fatalf("message type = %v, want binary", typ)
	}
	var msg map[string]any
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		t.Fatalf("msgpack decode: %v", err)
	}
	if msg["t"] != "welcome" {
		t.Errorf("t = %v, want welcome", msg["t"])
	}
}

func TestHandleModes(t *testing.T) {
	srv, ts := newTestServer(t)

	var list []map[string]any
	if code := getJSON(t, ts.URL+"/api/modes", &list); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(list) != len(srv.Modes) || len(list) == 0 {
		t.Errorf("modes = %d, want %d", len(list), len(srv.Modes))
	}
}

func TestHandleLeaderboard(t *testing.T) {
	srv, ts := newTestServer(t)
	seedRounds(t, srv.Ledger)

	tests := []struct {
		name  string
		query string
		first string
	}{
		{"default score", "", "p2"},
		{"accuracy", "?cat=accuracy", "p1"},
		{"reaction", "?cat=reaction&mode=static", "p1"},
		{"streak", "?cat=streak&limit=1", "p1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []ledger.Entry
			if code := getJSON(t, ts.URL+"/api/leaderboard"+tt.query, &entries); code != http.StatusOK {
				t.Fatalf("status = %d, want 200", code)
			}
			if len(entries) == 0 {
				t.Fatal("no entries")
			}
			if entries[0].PlayerID != tt.first || entries[0].Rank != 1 {
				t.Errorf("first = %+v, want %s ranked 1", entries[0], tt.first)
			}
		})
	}
}

func TestHandleLeaderboard_EmptyMode(t *testing.T) {
	srv, ts := newTestServer(t)
	seedRounds(t, srv.Ledger)

	resp, err := http.Get(ts.URL + "/api/leaderboard?mode=peek")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestHandleLeaderboard_BadRequest(t *testing.T) {
	_, ts := newTestServer(t)

	for _, q := range []string{"?cat=luck", "?limit=abc", "?limit=0"} {
		if code := getJSON(t, ts.URL+"/api/leaderboard"+q, nil); code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, code)
		}
	}
}

func TestHandlePlayer(t *testing.T) {
	srv, ts := newTestServer(t)
	seedRounds(t, srv.Ledger)

	var profile analytics.Profile
	if code := getJSON(t, ts.URL+"/api/players/p1", &profile); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if profile.Lifetime.Rounds != 1 || profile.Lifetime.PlayerName != "Alice" {
		t.Errorf("lifetime = %+v, want one round for Alice", profile.Lifetime)
	}
	if len(profile.Modes) != 1 || profile.Modes[0].Mode != "static" {
		t.Errorf("modes = %+v, want static", profile.Modes)
	}
}

func TestHandlePlayer_NotFound(t *testing.T) {
	_, ts := newTestServer(t)
	if code := getJSON(t, ts.URL+"/api/players/nobody", nil); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t)

	var status map[string]any
	if code := getJSON(t, ts.URL+"/health", &status); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if status["status"] != "ok" {
		t.Errorf("status = %v, want ok", status["status"])
	}
	if status["database"] != false {
		t.Errorf("database = %v, want false", status["database"])
	}
}

func TestHandleMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "aimrange_active_sessions") {
		t.Error("metrics output missing aimrange_active_sessions")
	}
}

func TestHandleEvents(t *testing.T) {
	srv, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	srv.Broadcaster.Broadcast("ping", `{"ok":true}`)

	sc := bufio.NewScanner(resp.Body)
	var event, data string
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	if event != "ping" || data != `{"ok":true}` {
		t.Errorf("got event %q data %q, want ping {\"ok\":true}", event, data)
	}
}

func TestAnnounce(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	sum := stats.Summary{
		ID: "33333333-3333-3333-3333-333333333333", PlayerID: "p3", PlayerName: "Cara",
		Mode: "peek", Shots: 30, Hits: 28, CenterHits: 12, Score: 640, DurationS: 30,
	}
	if err := srv.Ledger.Record(ctx, sum); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	ch := srv.Broadcaster.Subscribe()
	defer srv.Broadcaster.Unsubscribe(ch)

	srv.announce(ctx, sum)

	msg := <-ch
	for msg.Event != "roundEnded" {
		msg = <-ch
	}
	if !strings.Contains(msg.Data, string(analytics.BadgeCenturion)) {
		t.Errorf("data = %s, want centurion badge", msg.Data)
	}

	badges, err := srv.Ledger.Badges(ctx, "p3")
	if err != nil {
		t.Fatalf("Badges() error: %v", err)
	}
	if len(badges) == 0 {
		t.Error("announce should store earned badges")
	}
}
