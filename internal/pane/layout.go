// Package pane computes the screen geometry of the hosted pane, the git pane
// and the status bar.
package pane

// StatusBarHeight is the height reserved for the status bar at the bottom.
const StatusBarHeight = 2

const (
	// DefaultSplit is the share of the width given to the hosted pane.
	DefaultSplit = 60
	// MinSplit and MaxSplit bound the split percentage.
	MinSplit = 20
	MaxSplit = 80
	// DefaultMinWidth is the narrowest either pane may become when the
	// screen is wide enough to honor it.
	DefaultMinWidth = 20
)

// splitSteps are the ratios ctrl+\ cycles through.
var splitSteps = []int{40, 60, 80}

// Layout represents the position and size of a pane in screen coordinates.
type Layout struct {
	X0, Y0, X1, Y1 int
}

// Width returns the interior width (excluding borders).
func (l Layout) Width() int {
	w := l.X1 - l.X0 - 1
	if w < 1 {
		return 1
	}
	return w
}

// Height returns the interior height (excluding borders).
func (l Layout) Height() int {
	h := l.Y1 - l.Y0 - 1
	if h < 1 {
		return 1
	}
	return h
}

// Contains reports whether the screen cell (x, y) lies inside the layout,
// borders included.
func (l Layout) Contains(x, y int) bool {
	return x >= l.X0 && x <= l.X1 && y >= l.Y0 && y <= l.Y1
}

// SplitLayout holds the three regions of the screen.
type SplitLayout struct {
	Hosted Layout
	Git    Layout
	Status Layout
}

// ClampSplit bounds percent to [MinSplit, MaxSplit].
func ClampSplit(percent int) int {
	switch {
	case percent < MinSplit:
		return MinSplit
	case percent > MaxSplit:
		return MaxSplit
	}
	return percent
}

// CycleSplit returns the split that follows percent: 40 → 60 → 80 → 40.
func CycleSplit(percent int) int {
	for _, s := range splitSteps {
		if s > percent {
			return s
		}
	}
	return splitSteps[0]
}

// Split lays out the hosted pane on the left and the git pane on the right
// above a status bar. The hosted pane receives percent of the width, adjusted
// so that both panes are at least minWidth columns when maxX allows it.
//
//	[ hosted      ][ git    ]
//	[ status bar            ]
func Split(maxX, maxY, percent, minWidth int) SplitLayout {
	percent = ClampSplit(percent)
	if minWidth < 0 {
		minWidth = 0
	}

	hostedW := maxX * percent / 100
	if maxX >= 2*minWidth {
		if hostedW < minWidth {
			hostedW = minWidth
		}
		if maxX-hostedW < minWidth {
			hostedW = maxX - minWidth
		}
	}

	paneMaxY := maxY - StatusBarHeight
	if paneMaxY < 1 {
		paneMaxY = 1
	}

	return SplitLayout{
		Hosted: Layout{X0: 0, Y0: 0, X1: hostedW - 1, Y1: paneMaxY - 1},
		Git:    Layout{X0: hostedW, Y0: 0, X1: maxX - 1, Y1: paneMaxY - 1},
		Status: Layout{X0: 0, Y0: maxY - StatusBarHeight, X1: maxX - 1, Y1: maxY},
	}
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	if width > maxX-2 {
		width = maxX - 2
	}
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}
