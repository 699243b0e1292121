package render

import (
	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/engine"
)

// layout maps track coordinates onto screen cells
type layout struct {
	left      int // first column of the left lane
	laneWidth int
	top       int // first track row
	rows      int
}

func newLayout(w, h int) layout {
	laneWidth := min((w-4)/len(engine.Lanes), maxLaneWidth)
	return layout{
		left:      (w - laneWidth*len(engine.Lanes)) / 2,
		laneWidth: laneWidth,
		top:       hudRows,
		rows:      h - hudRows - footerRows,
	}
}

// row maps a track position to a screen row; positions past the edge clamp to the last row
func (l layout) row(y float64) int {
	r := int(y / constants.TrackLength * float64(l.rows-1))
	return l.top + min(max(r, 0), l.rows-1)
}

func (l layout) laneCenter(lane engine.Lane) int {
	return l.left + int(lane)*l.laneWidth + l.laneWidth/2
}
