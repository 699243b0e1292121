package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/status"
)

type fakeGame struct {
	mu       sync.Mutex
	poses    []string
	starts   []int
	stops    int
	state    engine.GameState
	startErr error
}

func (g *fakeGame) Pose(signal string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.poses = append(g.poses, signal)
}

func (g *fakeGame) Start(timeLimit int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.startErr != nil {
		return g.startErr
	}
	g.starts = append(g.starts, timeLimit)
	g.state.Active = true
	return nil
}

func (g *fakeGame) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stops++
	g.state.Active = false
	return nil
}

func (g *fakeGame) State() (engine.GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, nil
}

func (g *fakeGame) snapshotPoses() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.poses...)
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	return cfg
}

func newTestServer(t *testing.T, game Game, stats *status.Registry) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(testConfig(), game, stats)

	ctx, cancel := context.WithCancel(context.Background())
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return s, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, &fakeGame{}, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestStateEndpoint(t *testing.T) {
	game := &fakeGame{state: engine.GameState{Active: true, Score: 300, Level: 2, Remaining: 35, Lane: engine.LaneRight}}
	_, ts := newTestServer(t, game, nil)

	var got map[string]any
	if code := getJSON(t, ts.URL+"/state", &got); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if got["score"] != float64(300) || got["level"] != float64(2) || got["lane"] != "Right" {
		t.Errorf("Unexpected state %v", got)
	}
}

func TestStatsEndpoint(t *testing.T) {
	reg := status.NewRegistry()
	reg.Counter("items.caught").Add(3)
	_, ts := newTestServer(t, &fakeGame{}, reg)

	var got map[string]any
	getJSON(t, ts.URL+"/stats", &got)
	if got["items.caught"] != float64(3) {
		t.Errorf("items.caught = %v, want 3", got["items.caught"])
	}
	if got["bridge.clients"] != float64(0) {
		t.Errorf("bridge.clients = %v, want 0", got["bridge.clients"])
	}
}

func TestStartStopEndpoints(t *testing.T) {
	game := &fakeGame{}
	_, ts := newTestServer(t, game, nil)

	code, body := postJSON(t, ts.URL+"/start", `{"time_limit":30}`)
	if code != http.StatusOK || body["active"] != true {
		t.Fatalf("Start: %d %v", code, body)
	}
	code, _ = postJSON(t, ts.URL+"/start", "")
	if code != http.StatusOK {
		t.Errorf("Start without body: %d", code)
	}
	game.mu.Lock()
	starts := append([]int(nil), game.starts...)
	game.mu.Unlock()
	if len(starts) != 2 || starts[0] != 30 || starts[1] != 0 {
		t.Errorf("Unexpected starts %v", starts)
	}

	code, body = postJSON(t, ts.URL+"/stop", "")
	if code != http.StatusOK || body["active"] != false {
		t.Errorf("Stop: %d %v", code, body)
	}

	if code, _ := postJSON(t, ts.URL+"/start", "{"); code != http.StatusBadRequest {
		t.Errorf("Bad JSON: expected 400, got %d", code)
	}

	game.mu.Lock()
	game.startErr = engine.ErrInvalidTimeLimit
	game.mu.Unlock()
	if code, body := postJSON(t, ts.URL+"/start", `{"time_limit":-5}`); code != http.StatusBadRequest || body["error"] == nil {
		t.Errorf("Invalid limit: %d %v", code, body)
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Read: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebsocketSession(t *testing.T) {
	game := &fakeGame{state: engine.GameState{Level: 1, Lane: engine.LaneCenter}}
	s, ts := newTestServer(t, game, nil)
	conn := dial(t, ts)

	first := readMessage(t, conn)
	if first["type"] != MsgState {
		t.Fatalf("First message should be state, got %v", first)
	}
	waitFor(t, "client registration", func() bool { return s.Hub().Count() == 1 })

	if err := conn.WriteJSON(Command{Type: MsgPose, Lane: "Left"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "pose", func() bool {
		p := game.snapshotPoses()
		return len(p) == 1 && p[0] == "Left"
	})

	b := s.Bridge()
	b.ScoreChanged(100, 1)
	msg := readMessage(t, conn)
	if msg["type"] != MsgScore || msg["score"] != float64(100) {
		t.Errorf("Unexpected score message %v", msg)
	}

	b.ItemSpawned(engine.Item{ID: 7, Kind: engine.KindBanana, Points: 200, Lane: engine.LaneRight})
	msg = readMessage(t, conn)
	item, _ := msg["item"].(map[string]any)
	if msg["type"] != MsgSpawn || item["kind"] != "Banana" || item["lane"] != "Right" {
		t.Errorf("Unexpected spawn message %v", msg)
	}

	b.GameEnded(engine.GameResult{Score: 100, Level: 1, Reason: engine.ReasonBomb})
	msg = readMessage(t, conn)
	result, _ := msg["result"].(map[string]any)
	if msg["type"] != MsgEnd || result["reason"] != "Bomb" {
		t.Errorf("Unexpected end message %v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"jump"}`)); err != nil {
		t.Fatal(err)
	}
	msg = readMessage(t, conn)
	if msg["type"] != MsgError {
		t.Errorf("Expected error reply, got %v", msg)
	}
}

func TestStateArrivesBeforeConcurrentBroadcasts(t *testing.T) {
	game := &fakeGame{state: engine.GameState{Active: true, Level: 2}}
	s, ts := newTestServer(t, game, nil)

	score, err := json.Marshal(scoreMessage{Type: MsgScore, Score: 10, Level: 2})
	if err != nil {
		t.Fatal(err)
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				s.Hub().Broadcast(score)
				time.Sleep(100 * time.Microsecond)
			}
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for i := 0; i < 5; i++ {
		conn := dial(t, ts)
		if msg := readMessage(t, conn); msg["type"] != MsgState {
			t.Fatalf("Connection %d: first message should be state, got %v", i, msg)
		}
		conn.Close()
	}
}

func TestWebsocketStartStop(t *testing.T) {
	game := &fakeGame{}
	_, ts := newTestServer(t, game, nil)
	conn := dial(t, ts)
	readMessage(t, conn)

	_ = conn.WriteJSON(Command{Type: MsgStart, TimeLimit: 45})
	_ = conn.WriteJSON(Command{Type: MsgStop})
	waitFor(t, "start and stop", func() bool {
		game.mu.Lock()
		defer game.mu.Unlock()
		return len(game.starts) == 1 && game.stops == 1
	})
	game.mu.Lock()
	if game.starts[0] != 45 {
		t.Errorf("Expected time limit 45, got %d", game.starts[0])
	}
	game.mu.Unlock()

	game.mu.Lock()
	game.startErr = errors.New("boom")
	game.mu.Unlock()
	_ = conn.WriteJSON(Command{Type: MsgStart})
	if msg := readMessage(t, conn); msg["type"] != MsgError || msg["error"] != "boom" {
		t.Errorf("Expected start error reply, got %v", msg)
	}
}

func TestClientLimit(t *testing.T) {
	s := NewServer(testConfig(), &fakeGame{}, nil)
	s.cfg.MaxClients = 1
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	dial(t, ts)
	waitFor(t, "first client", func() bool { return s.Hub().Count() == 1 })

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Expected second client to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %v", resp)
	}
}

func TestBridgeSkipsEncodingWithoutClients(t *testing.T) {
	reg := status.NewRegistry()
	s := NewServer(testConfig(), &fakeGame{}, reg)
	b := s.Bridge()

	// hub is not running; queue fills only if publish does not short-circuit
	for i := 0; i < s.cfg.BroadcastQueueSize+10; i++ {
		b.TimeUpdated(i)
	}
	if got := reg.Counter("bridge.dropped").Load(); got != 0 {
		t.Errorf("Expected no drops without clients, got %d", got)
	}
}
