package terminal

// ColorKind selects how a Color is interpreted.
type ColorKind uint8

const (
	// ColorDefault is the terminal's default foreground or background.
	ColorDefault ColorKind = iota
	// ColorIndexed is one of the 256 palette entries.
	ColorIndexed
	// ColorRGB is a 24-bit colour.
	ColorRGB
)

// Color is a closed colour value. The zero value is the default colour.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Indexed returns a palette colour.
func Indexed(n uint8) Color {
	return Color{Kind: ColorIndexed, Index: n}
}

// RGB returns a truecolour value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsDefault reports whether c is the default colour.
func (c Color) IsDefault() bool {
	return c.Kind == ColorDefault
}

// Attr is a bit set of rendition attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrike
)

// Has reports whether all bits of other are set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}

// Style is the rendition applied to a cell.
type Style struct {
	FG    Color
	BG    Color
	Attrs Attr
}

// Cell is one grid position. Width is 2 for the leading half of a wide
// rune and 0 for the trailing half.
type Cell struct {
	Rune  rune
	Width uint8
	Style Style
}

// Blank returns an empty cell carrying only the background of st.
func Blank(st Style) Cell {
	return Cell{Rune: ' ', Width: 1, Style: Style{BG: st.BG}}
}

// IsContinuation reports whether c is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}
