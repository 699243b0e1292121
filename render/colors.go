package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-catcher/engine"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbLaneGuide  = tcell.NewRGBColor(60, 62, 80)    // Lane dividers
	RgbCatchBand  = tcell.NewRGBColor(36, 40, 59)    // Catch band shading
	RgbBasket     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbShieldRing = tcell.NewRGBColor(0, 200, 200)   // Cyan ring around a shielded basket
	RgbHUDText    = tcell.NewRGBColor(255, 255, 255) // White
	RgbHUDDim     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbOverlayBg  = tcell.NewRGBColor(128, 0, 128)   // Dark purple

	RgbApple    = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbBanana   = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbBomb     = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbShield   = tcell.NewRGBColor(0, 200, 200)   // Vibrant cyan
	RgbMagnet   = tcell.NewRGBColor(255, 105, 180) // Pink
	RgbTimeSlow = tcell.NewRGBColor(100, 150, 255) // Normal blue

	// Effect badge backgrounds
	RgbShieldBg   = tcell.NewRGBColor(0, 139, 139)
	RgbMagnetBg   = tcell.NewRGBColor(199, 21, 133)
	RgbTimeSlowBg = tcell.NewRGBColor(60, 100, 200)
	RgbBadgeText  = tcell.NewRGBColor(0, 0, 0)
)

// glyph is how an item kind appears on the track
type glyph struct {
	r     rune
	color tcell.Color
}

var glyphs = map[engine.ItemKind]glyph{
	engine.KindApple:    {'●', RgbApple},
	engine.KindBanana:   {')', RgbBanana},
	engine.KindBomb:     {'✱', RgbBomb},
	engine.KindShield:   {'◆', RgbShield},
	engine.KindMagnet:   {'∩', RgbMagnet},
	engine.KindTimeSlow: {'◷', RgbTimeSlow},
}

// GetTimeColor returns the countdown color for the fraction of the session left
// Green while plenty remains, through yellow, to red near the end
func GetTimeColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return tcell.NewRGBColor(139, 0, 0)
	}
	if progress > 1.0 {
		progress = 1.0
	}

	if progress < 0.5 { // Red to Yellow
		t := progress / 0.5
		return tcell.NewRGBColor(255, int32(69+(215-69)*t), 0)
	}
	// Yellow to Green
	t := (progress - 0.5) / 0.5
	return tcell.NewRGBColor(int32(255-(255-34)*t), int32(215-(215-139)*t), int32(34*t))
}
