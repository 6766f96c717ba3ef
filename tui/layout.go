package tui

import "github.com/vhls-cli/vhls/controls"

// Frame geometry, in cells relative to the padded origin.
const (
	padX = 2
	padY = 1

	rowHeader   = 0
	rowPoster   = 1
	rowTimeline = 3
	rowButtons  = 4
	rowHelp     = 6
	frameRows   = 7

	volumeRows = 5

	playWidth = 7
	muteWidth = 8
	fullWidth = 6
	gap       = 1

	minBarWidth = 10
)

type region int

const (
	regionOutside region = iota
	regionFrame
	regionTimeline
	regionVolume
	regionPlay
	regionMute
	regionFullscreen
)

// layout maps terminal cells to widgets for a given terminal width.
type layout struct {
	width    int
	barWidth int
}

func newLayout(width int) layout {
	// bar, two cells of spacing, the volume column and both paddings
	bar := width - 2*padX - 3
	if bar < minBarWidth {
		bar = minBarWidth
	}
	return layout{width: width, barWidth: bar}
}

func (l layout) barX() int { return padX }

func (l layout) volumeX() int { return padX + l.barWidth + 2 }

func (l layout) frameWidth() int { return l.volumeX() + 1 - padX }

func (l layout) playX() int { return padX }

func (l layout) muteX() int { return l.playX() + playWidth + gap }

func (l layout) fullX() int { return l.muteX() + muteWidth + gap }

func (l layout) inFrame(x, y int) bool {
	return x >= padX && x < padX+l.frameWidth() && y >= padY && y < padY+frameRows
}

func (l layout) hit(x, y int) region {
	if !l.inFrame(x, y) {
		return regionOutside
	}

	row := y - padY
	switch {
	case x == l.volumeX() && row < volumeRows:
		return regionVolume
	case row == rowTimeline && x >= l.barX() && x < l.barX()+l.barWidth:
		return regionTimeline
	case row == rowButtons && x >= l.playX() && x < l.playX()+playWidth:
		return regionPlay
	case row == rowButtons && x >= l.muteX() && x < l.muteX()+muteWidth:
		return regionMute
	case row == rowButtons && x >= l.fullX() && x < l.fullX()+fullWidth:
		return regionFullscreen
	}
	return regionFrame
}

func (l layout) timelineRect() controls.Rect {
	return controls.Rect{
		X:      float64(l.barX()),
		Y:      float64(padY + rowTimeline),
		Width:  float64(l.barWidth),
		Height: 1,
	}
}

// volumeRect spans the centers of the column's cells: the top cell is full
// volume and the bottom one is silence.
func (l layout) volumeRect() controls.Rect {
	return controls.Rect{
		X:      float64(l.volumeX()),
		Y:      float64(padY),
		Width:  1,
		Height: volumeRows - 1,
	}
}

// visibleRatio is the share of the frame rows that fit in a terminal of
// the given height.
func visibleRatio(height int) float64 {
	total := padY + frameRows
	if height >= total {
		return 1
	}
	if height <= padY {
		return 0
	}
	return float64(height-padY) / float64(frameRows)
}
