// Package render draws the lane-catcher view on a tcell screen
package render

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/status"
)

const (
	hudRows      = 2
	footerRows   = 1
	maxLaneWidth = 15
	minWidth     = 24
	minHeight    = 12
)

var basketRunes = []rune(`\___/`)

// Renderer is an engine.Observer that keeps a view model and paints it on Draw
// Every method must run on the loop goroutine that drives the engine
type Renderer struct {
	screen tcell.Screen
	stats  *status.Registry
	bridge string

	// view model
	inSession bool
	played    bool
	score     int
	level     int
	remaining int
	timeLimit int
	lane      engine.Lane
	effects   engine.EffectState
	items     []engine.Item
	result    *engine.GameResult

	paused bool
	muted  bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithStats shows session counters in the footer
func WithStats(r *status.Registry) Option {
	return func(rd *Renderer) {
		rd.stats = r
	}
}

// WithBridgeAddr shows the remote bridge address in the footer
func WithBridgeAddr(addr string) Option {
	return func(rd *Renderer) {
		rd.bridge = addr
	}
}

// NewRenderer creates a renderer for an initialized screen
func NewRenderer(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		level:  1,
		lane:   engine.LaneCenter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) ScoreChanged(score, level int) {
	r.score, r.level = score, level
}

// TimeUpdated also marks the start of a session: the first update after an end carries the full limit
func (r *Renderer) TimeUpdated(remaining int) {
	if !r.inSession {
		r.inSession = true
		r.played = true
		r.timeLimit = remaining
		r.result = nil
		r.items = nil
	}
	r.remaining = remaining
}

func (r *Renderer) BasketMoved(lane engine.Lane) {
	r.lane = lane
}

func (r *Renderer) ItemSpawned(item engine.Item) {
	r.items = append(r.items, item)
}

func (r *Renderer) ItemRemoved(id uint64) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

func (r *Renderer) Render(items []engine.Item) {
	r.items = items
}

func (r *Renderer) EffectsChanged(effects engine.EffectState) {
	r.effects = effects
}

func (r *Renderer) GameEnded(result engine.GameResult) {
	r.inSession = false
	r.result = &result
}

// SetPaused toggles the pause overlay
func (r *Renderer) SetPaused(paused bool) {
	r.paused = paused
}

// SetMuted toggles the mute marker
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// Draw paints the full frame and shows it
func (r *Renderer) Draw() {
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', bg)

	w, h := r.screen.Size()
	if w < minWidth || h < minHeight {
		drawCentered(r.screen, h/2, w, "Terminal too small", bg.Foreground(RgbHUDText))
		r.screen.Show()
		return
	}

	lay := newLayout(w, h)
	r.drawHUD(w, bg)
	r.drawTrack(lay, bg)
	r.drawItems(lay, bg)
	r.drawBasket(lay, bg)
	r.drawFooter(w, h, bg)
	r.drawOverlay(w, h, bg)

	r.screen.Show()
}

func (r *Renderer) drawHUD(w int, bg tcell.Style) {
	text := bg.Foreground(RgbHUDText).Bold(true)
	x := 1
	x = drawText(r.screen, x, 0, "SCORE "+humanize.Comma(int64(r.score)), text) + 3
	x = drawText(r.screen, x, 0, fmt.Sprintf("LEVEL %d", r.level), text) + 3

	progress := 0.0
	if r.timeLimit > 0 {
		progress = float64(r.remaining) / float64(r.timeLimit)
	}
	drawText(r.screen, x, 0, "TIME "+formatClock(r.remaining), bg.Foreground(GetTimeColor(progress)).Bold(true))

	// Badges from the right edge
	bx := w - 1
	for _, b := range []struct {
		on    bool
		label string
		color tcell.Color
	}{
		{r.effects.TimeSlow, " SLOW ", RgbTimeSlowBg},
		{r.effects.Magnet, " MAGNET ", RgbMagnetBg},
		{r.effects.Shield, " SHIELD ", RgbShieldBg},
	} {
		if !b.on {
			continue
		}
		bx -= len(b.label)
		drawText(r.screen, bx, 0, b.label, tcell.StyleDefault.Background(b.color).Foreground(RgbBadgeText).Bold(true))
		bx--
	}

	guide := bg.Foreground(RgbLaneGuide)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 1, '─', nil, guide)
	}
}

func (r *Renderer) drawTrack(lay layout, bg tcell.Style) {
	guide := bg.Foreground(RgbLaneGuide)
	band := tcell.StyleDefault.Background(RgbCatchBand)
	bandTop, bandBottom := lay.row(constants.CatchBandTop), lay.row(constants.CatchBandBottom)

	for y := lay.top; y < lay.top+lay.rows; y++ {
		if y >= bandTop && y <= bandBottom {
			for x := lay.left; x < lay.left+3*lay.laneWidth; x++ {
				r.screen.SetContent(x, y, ' ', nil, band)
			}
		}
		for i := 0; i <= len(engine.Lanes); i++ {
			r.screen.SetContent(lay.left+i*lay.laneWidth-1, y, '│', nil, guide)
		}
	}
}

func (r *Renderer) drawItems(lay layout, bg tcell.Style) {
	bandTop, bandBottom := lay.row(constants.CatchBandTop), lay.row(constants.CatchBandBottom)
	for _, it := range r.items {
		g, ok := glyphs[it.Kind]
		if !ok || !it.Lane.Valid() {
			continue
		}
		y := lay.row(it.Y)
		style := bg.Foreground(g.color).Bold(true)
		if y >= bandTop && y <= bandBottom {
			style = style.Background(RgbCatchBand)
		}
		r.screen.SetContent(lay.laneCenter(it.Lane), y, g.r, nil, style)
	}
}

func (r *Renderer) drawBasket(lay layout, bg tcell.Style) {
	color := RgbBasket
	if r.effects.Shield {
		color = RgbShieldRing
	}
	style := bg.Background(RgbCatchBand).Foreground(color).Bold(true)
	y := lay.row(constants.CatchBandBottom)
	x := lay.laneCenter(r.lane) - len(basketRunes)/2
	for i, ch := range basketRunes {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawFooter(w, h int, bg tcell.Style) {
	dim := bg.Foreground(RgbHUDDim)
	y := h - 1
	x := drawText(r.screen, 1, y, "←↓→ move  p pause  m mute  q quit", dim)

	if r.muted {
		x = drawText(r.screen, x+2, y, "muted", dim)
	}
	if r.stats != nil {
		caught := r.stats.Counter("items.caught").Load()
		missed := r.stats.Counter("items.missed").Load()
		x = drawText(r.screen, x+2, y, fmt.Sprintf("caught %s  missed %s",
			humanize.Comma(caught), humanize.Comma(missed)), dim)
	}
	if r.bridge != "" {
		label := "bridge " + r.bridge
		drawText(r.screen, max(x+2, w-len(label)-1), y, label, dim)
	}
}

func (r *Renderer) drawOverlay(w, h int, bg tcell.Style) {
	title := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbHUDText).Bold(true)
	text := bg.Foreground(RgbHUDText)
	mid := h / 2

	switch {
	case r.inSession && r.paused:
		drawCentered(r.screen, mid, w, "  PAUSED  ", title)
		drawCentered(r.screen, mid+1, w, "p to resume", text)

	case !r.played:
		drawCentered(r.screen, mid-1, w, "  LANE CATCHER  ", title)
		drawCentered(r.screen, mid+1, w, "Press Enter to start", text)

	case r.result != nil:
		heading := "  TIME UP  "
		switch r.result.Reason {
		case engine.ReasonBomb:
			heading = "  BOOM! GAME OVER  "
		case engine.ReasonManual:
			heading = "  GAME OVER  "
		}
		drawCentered(r.screen, mid-1, w, heading, title)
		drawCentered(r.screen, mid+1, w, fmt.Sprintf("Score %s  ·  Level %d  ·  %s",
			humanize.Comma(int64(r.result.Score)), r.result.Level, r.result.Reason), text)
		drawCentered(r.screen, mid+2, w, "Enter to play again  ·  q to quit", bg.Foreground(RgbHUDDim))
	}
}

func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// drawText writes s from x and returns the column after it
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func drawCentered(s tcell.Screen, y, w int, text string, style tcell.Style) {
	n := len([]rune(text))
	drawText(s, max((w-n)/2, 0), y, text, style)
}
