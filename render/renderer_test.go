package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/status"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Screen init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

// startSession replays the notifications the engine emits on Start
func startSession(r *Renderer, limit int) {
	r.EffectsChanged(engine.EffectState{})
	r.ScoreChanged(0, 1)
	r.TimeUpdated(limit)
	r.BasketMoved(engine.LaneCenter)
}

func TestRendererTitleBeforeFirstGame(t *testing.T) {
	screen := newTestScreen(t, 60, 30)
	r := NewRenderer(screen)
	r.Draw()

	if !strings.Contains(screenText(screen), "Press Enter to start") {
		t.Error("Expected start prompt before the first session")
	}
}

func TestRendererHUD(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen)
	startSession(r, 60)
	r.ScoreChanged(12300, 2)
	r.TimeUpdated(35)
	r.EffectsChanged(engine.EffectState{Shield: true, TimeSlow: true})
	r.Draw()

	hud := rowText(screen, 0)
	for _, want := range []string{"SCORE 12,300", "LEVEL 2", "TIME 0:35", "SHIELD", "SLOW"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if strings.Contains(hud, "MAGNET") {
		t.Error("Inactive magnet badge drawn")
	}
	if strings.Contains(screenText(screen), "Press Enter") {
		t.Error("Start prompt drawn during a session")
	}
}

func TestRendererItemsAndBasket(t *testing.T) {
	screen := newTestScreen(t, 60, 30)
	r := NewRenderer(screen)
	startSession(r, 60)

	lay := newLayout(60, 30)
	apple := engine.Item{ID: 1, Kind: engine.KindApple, Lane: engine.LaneLeft, Y: 0}
	bomb := engine.Item{ID: 2, Kind: engine.KindBomb, Lane: engine.LaneRight, Y: 50}
	r.ItemSpawned(apple)
	r.Render([]engine.Item{apple, bomb})
	r.BasketMoved(engine.LaneRight)
	r.Draw()

	if ch, _, _, _ := screen.GetContent(lay.laneCenter(engine.LaneLeft), lay.top); ch != glyphs[engine.KindApple].r {
		t.Errorf("Expected apple at top of left lane, got %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(lay.laneCenter(engine.LaneRight), lay.row(50)); ch != glyphs[engine.KindBomb].r {
		t.Errorf("Expected bomb mid right lane, got %q", ch)
	}

	basketRow := rowText(screen, lay.row(constants.CatchBandBottom))
	idx := strings.Index(basketRow, string(basketRunes))
	if idx < 0 {
		t.Fatalf("Basket not drawn on row %q", basketRow)
	}
	if center := len([]rune(basketRow[:idx])) + len(basketRunes)/2; center != lay.laneCenter(engine.LaneRight) {
		t.Errorf("Basket centered at %d, want %d", center, lay.laneCenter(engine.LaneRight))
	}

	r.ItemRemoved(1)
	r.Draw()
	if ch, _, _, _ := screen.GetContent(lay.laneCenter(engine.LaneLeft), lay.top); ch == glyphs[engine.KindApple].r {
		t.Error("Removed apple still drawn")
	}
}

func TestRendererGameOver(t *testing.T) {
	screen := newTestScreen(t, 60, 30)
	r := NewRenderer(screen)
	startSession(r, 60)
	r.GameEnded(engine.GameResult{Score: 4500, Level: 3, Reason: engine.ReasonBomb})
	r.Draw()

	text := screenText(screen)
	for _, want := range []string{"BOOM! GAME OVER", "Score 4,500", "Level 3", "Enter to play again"} {
		if !strings.Contains(text, want) {
			t.Errorf("Game over overlay missing %q", want)
		}
	}

	// Next session hides the overlay
	startSession(r, 60)
	r.Draw()
	if strings.Contains(screenText(screen), "GAME OVER") {
		t.Error("Overlay survived a new session")
	}
}

func TestRendererPauseAndFooter(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	reg := status.NewRegistry()
	reg.Counter("items.caught").Add(1234)
	r := NewRenderer(screen, WithStats(reg), WithBridgeAddr(":8080"))
	startSession(r, 60)
	r.SetPaused(true)
	r.SetMuted(true)
	r.Draw()

	if !strings.Contains(screenText(screen), "PAUSED") {
		t.Error("Pause overlay missing")
	}
	footer := rowText(screen, 29)
	for _, want := range []string{"muted", "caught 1,234", "missed 0", "bridge :8080"} {
		if !strings.Contains(footer, want) {
			t.Errorf("Footer %q missing %q", footer, want)
		}
	}
}

func TestRendererTooSmall(t *testing.T) {
	screen := newTestScreen(t, 20, 8)
	r := NewRenderer(screen)
	r.Draw()

	if !strings.Contains(screenText(screen), "Terminal too small") {
		t.Error("Expected size warning")
	}
}

func TestLayoutRowClamps(t *testing.T) {
	lay := newLayout(60, 30)
	if got := lay.row(0); got != lay.top {
		t.Errorf("row(0) = %d, want %d", got, lay.top)
	}
	if got := lay.row(100); got != lay.top+lay.rows-1 {
		t.Errorf("row(100) = %d, want %d", got, lay.top+lay.rows-1)
	}
	if got := lay.row(140); got != lay.top+lay.rows-1 {
		t.Errorf("row(140) = %d, want clamp to last row", got)
	}
}
