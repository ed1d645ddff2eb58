package terminal

import (
	"fmt"
	"unicode/utf8"
)

// State is a parser state.
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateEscapeInter
	StateCSIEntry
	StateCSIParam
	StateCSIInter
	StateCSIIgnore
	StateOSC
	StateOSCEscape
	StateString
	StateStringEscape
)

var stateNames = [...]string{
	StateGround:       "ground",
	StateEscape:       "escape",
	StateEscapeInter:  "escape-intermediate",
	StateCSIEntry:     "csi-entry",
	StateCSIParam:     "csi-param",
	StateCSIInter:     "csi-intermediate",
	StateCSIIgnore:    "csi-ignore",
	StateOSC:          "osc",
	StateOSCEscape:    "osc-escape",
	StateString:       "string",
	StateStringEscape: "string-escape",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

const (
	maxParams   = 32
	maxParamVal = 65535
	maxOSC      = 4096
)

// transitions maps each state to the function consuming one byte in it.
var transitions = [...]func(*Parser, byte){
	StateGround:       (*Parser).ground,
	StateEscape:       (*Parser).escape,
	StateEscapeInter:  (*Parser).escapeInter,
	StateCSIEntry:     (*Parser).csiEntry,
	StateCSIParam:     (*Parser).csiParam,
	StateCSIInter:     (*Parser).csiInter,
	StateCSIIgnore:    (*Parser).csiIgnore,
	StateOSC:          (*Parser).osc,
	StateOSCEscape:    (*Parser).oscEscape,
	StateString:       (*Parser).str,
	StateStringEscape: (*Parser).strEscape,
}

// Parser turns a byte stream into Screen mutations. Sequences it does not
// understand are consumed and dropped.
type Parser struct {
	screen *Screen
	state  State

	params  []int  // -1 marks an omitted parameter
	sub     []bool // sub[i] is set when params[i] followed a colon
	private byte
	inter   []byte
	oscBuf  []byte

	utf8Buf []byte

	title   string
	replies []byte
}

// NewParser returns a parser driving screen.
func NewParser(screen *Screen) *Parser {
	return &Parser{
		screen:  screen,
		params:  make([]int, 0, maxParams),
		sub:     make([]bool, 0, maxParams),
		inter:   make([]byte, 0, 4),
		oscBuf:  make([]byte, 0, 128),
		utf8Buf: make([]byte, 0, utf8.UTFMax),
	}
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// Title returns the last title set by OSC 0 or 2.
func (p *Parser) Title() string {
	return p.title
}

// TakeReplies returns and clears bytes the terminal must send back to the
// host in answer to queries.
func (p *Parser) TakeReplies() []byte {
	if len(p.replies) == 0 {
		return nil
	}
	out := p.replies
	p.replies = nil
	return out
}

// Write feeds data through the state machine. It never fails.
func (p *Parser) Write(data []byte) (int, error) {
	for _, b := range data {
		p.feed(b)
	}
	return len(data), nil
}

func (p *Parser) feed(b byte) {
	// CAN and SUB abort any sequence; ESC starts a new one except inside
	// strings, where it may begin ST.
	switch {
	case b == 0x18 || b == 0x1a:
		p.flushUTF8()
		p.state = StateGround
		return
	case b == 0x1b && p.state != StateOSC && p.state != StateString:
		p.flushUTF8()
		p.enterEscape()
		return
	}
	transitions[p.state](p, b)
}

func (p *Parser) enterEscape() {
	p.state = StateEscape
	p.inter = p.inter[:0]
}

func (p *Parser) enterCSI() {
	p.state = StateCSIEntry
	p.params = p.params[:0]
	p.sub = p.sub[:0]
	p.inter = p.inter[:0]
	p.private = 0
}

// execute runs a C0 control. It reports false for bytes that are not
// controls the screen acts on.
func (p *Parser) execute(b byte) bool {
	switch b {
	case 0x07:
	case 0x08:
		p.screen.Backspace()
	case 0x09:
		p.screen.Tab(1)
	case 0x0a, 0x0b, 0x0c:
		p.screen.LineFeed()
	case 0x0d:
		p.screen.CarriageReturn()
	default:
		return b < 0x20
	}
	return true
}

func (p *Parser) ground(b byte) {
	if len(p.utf8Buf) > 0 || b >= 0x80 {
		p.utf8(b)
		return
	}
	if b < 0x20 || b == 0x7f {
		p.execute(b)
		return
	}
	p.screen.Put(rune(b))
}

func (p *Parser) utf8(b byte) {
	if len(p.utf8Buf) > 0 && (b < 0x80 || utf8.RuneStart(b)) {
		p.flushUTF8()
		p.ground(b)
		return
	}
	p.utf8Buf = append(p.utf8Buf, b)
	if !utf8.FullRune(p.utf8Buf) {
		return
	}
	r, _ := utf8.DecodeRune(p.utf8Buf)
	p.utf8Buf = p.utf8Buf[:0]
	p.screen.Put(r)
}

// flushUTF8 emits a replacement rune for an incomplete sequence.
func (p *Parser) flushUTF8() {
	if len(p.utf8Buf) == 0 {
		return
	}
	p.utf8Buf = p.utf8Buf[:0]
	p.screen.Put(utf8.RuneError)
}

func (p *Parser) escape(b byte) {
	switch {
	case b == '[':
		p.enterCSI()
	case b == ']':
		p.state = StateOSC
		p.oscBuf = p.oscBuf[:0]
	case b == 'P' || b == 'X' || b == '^' || b == '_':
		p.state = StateString
	case b >= 0x20 && b <= 0x2f:
		p.inter = append(p.inter, b)
		p.state = StateEscapeInter
	case b >= 0x30 && b <= 0x7e:
		p.escDispatch(b)
		p.state = StateGround
	case p.execute(b):
	default:
		p.state = StateGround
	}
}

func (p *Parser) escapeInter(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.inter = append(p.inter, b)
	case b >= 0x30 && b <= 0x7e:
		// charset designation and DEC line attributes: consumed
		p.state = StateGround
	case p.execute(b):
	default:
		p.state = StateGround
	}
}

func (p *Parser) escDispatch(b byte) {
	s := p.screen
	switch b {
	case '7':
		s.SaveCursor()
	case '8':
		s.RestoreCursor()
	case 'D':
		s.LineFeed()
	case 'E':
		s.CarriageReturn()
		s.LineFeed()
	case 'M':
		s.ReverseIndex()
	case 'c':
		s.Reset()
		p.title = ""
	}
}

func (p *Parser) csiEntry(b byte) {
	switch {
	case b >= 0x3c && b <= 0x3f:
		p.private = b
		p.state = StateCSIParam
	default:
		p.state = StateCSIParam
		p.csiParam(b)
	}
}

func (p *Parser) csiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		if len(p.params) == 0 {
			p.params = append(p.params, -1)
			p.sub = append(p.sub, false)
		}
		i := len(p.params) - 1
		v := p.params[i]
		if v < 0 {
			v = 0
		}
		if v = v*10 + int(b-'0'); v > maxParamVal {
			v = maxParamVal
		}
		p.params[i] = v
	case b == ';' || b == ':':
		if len(p.params) == 0 {
			p.params = append(p.params, -1)
			p.sub = append(p.sub, false)
		}
		if len(p.params) >= maxParams {
			p.state = StateCSIIgnore
			return
		}
		p.params = append(p.params, -1)
		p.sub = append(p.sub, b == ':')
	case b >= 0x3c && b <= 0x3f:
		p.state = StateCSIIgnore
	case b >= 0x20 && b <= 0x2f:
		p.inter = append(p.inter, b)
		p.state = StateCSIInter
	case b >= 0x40 && b <= 0x7e:
		p.csiDispatch(b)
		p.state = StateGround
	case p.execute(b):
	default:
		p.state = StateGround
	}
}

func (p *Parser) csiInter(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.inter = append(p.inter, b)
	case b >= 0x40 && b <= 0x7e:
		// intermediates mark sequences like DECSCUSR; none affect the grid
		p.state = StateGround
	case p.execute(b):
	default:
		p.state = StateCSIIgnore
	}
}

func (p *Parser) csiIgnore(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7e:
		p.state = StateGround
	case p.execute(b):
	}
}

func (p *Parser) osc(b byte) {
	switch b {
	case 0x07:
		p.oscDispatch()
		p.state = StateGround
	case 0x1b:
		p.state = StateOSCEscape
	default:
		if len(p.oscBuf) < maxOSC {
			p.oscBuf = append(p.oscBuf, b)
		}
	}
}

func (p *Parser) oscEscape(b byte) {
	if b == '\\' {
		p.oscDispatch()
		p.state = StateGround
		return
	}
	// ESC followed by anything else aborts the OSC and starts a sequence
	p.enterEscape()
	p.escape(b)
}

func (p *Parser) str(b byte) {
	if b == 0x1b {
		p.state = StateStringEscape
	}
}

func (p *Parser) strEscape(b byte) {
	if b == '\\' {
		p.state = StateGround
		return
	}
	p.state = StateString
}

func (p *Parser) oscDispatch() {
	data := string(p.oscBuf)
	cmd, rest := data, ""
	for i := 0; i < len(data); i++ {
		if data[i] == ';' {
			cmd, rest = data[:i], data[i+1:]
			break
		}
	}
	switch cmd {
	case "0", "2":
		p.title = rest
	}
}

// param returns parameter i, or def when it is omitted or zero.
func (p *Parser) param(i, def int) int {
	if i >= len(p.params) || p.params[i] <= 0 {
		return def
	}
	return p.params[i]
}

func (p *Parser) csiDispatch(final byte) {
	s := p.screen
	if p.private != 0 && p.private != '?' {
		p.csiPrivateDispatch(final)
		return
	}
	if p.private == '?' {
		switch final {
		case 'h', 'l':
			for i := range p.params {
				s.SetMode(p.param(i, 0), true, final == 'h')
			}
		}
		return
	}

	switch final {
	case '@':
		s.InsertChars(p.param(0, 1))
	case 'A':
		s.MoveBy(0, -p.param(0, 1))
	case 'B', 'e':
		s.MoveBy(0, p.param(0, 1))
	case 'C', 'a':
		s.MoveBy(p.param(0, 1), 0)
	case 'D':
		s.MoveBy(-p.param(0, 1), 0)
	case 'E':
		s.MoveBy(0, p.param(0, 1))
		s.CarriageReturn()
	case 'F':
		s.MoveBy(0, -p.param(0, 1))
		s.CarriageReturn()
	case 'G', '`':
		s.MoveColumn(p.param(0, 1) - 1)
	case 'H', 'f':
		s.MoveTo(p.param(1, 1)-1, p.param(0, 1)-1)
	case 'I':
		s.Tab(p.param(0, 1))
	case 'Z':
		s.BackTab(p.param(0, 1))
	case 'J':
		s.EraseDisplay(p.param(0, 0))
	case 'K':
		s.EraseLine(p.param(0, 0))
	case 'L':
		s.InsertLines(p.param(0, 1))
	case 'M':
		s.DeleteLines(p.param(0, 1))
	case 'P':
		s.DeleteChars(p.param(0, 1))
	case 'S':
		s.ScrollUp(p.param(0, 1))
	case 'T':
		s.ScrollDown(p.param(0, 1))
	case 'X':
		s.EraseChars(p.param(0, 1))
	case 'd':
		s.MoveRow(p.param(0, 1) - 1)
	case 'h', 'l':
		for i := range p.params {
			s.SetMode(p.param(i, 0), false, final == 'h')
		}
	case 'm':
		p.sgr()
	case 'n':
		p.deviceStatus(p.param(0, 0))
	case 'c':
		if p.param(0, 0) == 0 {
			p.reply("\x1b[?1;2c")
		}
	case 'r':
		_, rows := s.Size()
		s.SetScrollRegion(p.param(0, 1)-1, p.param(1, rows)-1)
	case 's':
		s.SaveCursor()
	case 'u':
		s.RestoreCursor()
	}
}

func (p *Parser) csiPrivateDispatch(final byte) {
	if p.private == '>' && final == 'c' {
		p.reply("\x1b[>0;10;1c")
	}
}

func (p *Parser) deviceStatus(n int) {
	switch n {
	case 5:
		p.reply("\x1b[0n")
	case 6:
		x, _ := p.screen.Cursor()
		p.reply(fmt.Sprintf("\x1b[%d;%dR", p.screen.CursorRow()+1, x+1))
	}
}

func (p *Parser) reply(s string) {
	p.replies = append(p.replies, s...)
}

func (p *Parser) sgr() {
	pen := p.screen.Pen()
	if len(p.params) == 0 {
		p.screen.SetPen(Style{})
		return
	}
	for i := 0; i < len(p.params); i++ {
		n := p.params[i]
		if n < 0 {
			n = 0
		}
		switch {
		case n == 0:
			pen = Style{}
		case n == 1:
			pen.Attrs |= AttrBold
		case n == 2:
			pen.Attrs |= AttrDim
		case n == 3:
			pen.Attrs |= AttrItalic
		case n == 4 && p.isSub(i+1) && p.params[i+1] == 0:
			pen.Attrs &^= AttrUnderline
		case n == 4 || n == 21:
			pen.Attrs |= AttrUnderline
		case n == 5 || n == 6:
			pen.Attrs |= AttrBlink
		case n == 7:
			pen.Attrs |= AttrReverse
		case n == 8:
			pen.Attrs |= AttrHidden
		case n == 9:
			pen.Attrs |= AttrStrike
		case n == 22:
			pen.Attrs &^= AttrBold | AttrDim
		case n == 23:
			pen.Attrs &^= AttrItalic
		case n == 24:
			pen.Attrs &^= AttrUnderline
		case n == 25:
			pen.Attrs &^= AttrBlink
		case n == 27:
			pen.Attrs &^= AttrReverse
		case n == 28:
			pen.Attrs &^= AttrHidden
		case n == 29:
			pen.Attrs &^= AttrStrike
		case n >= 30 && n <= 37:
			pen.FG = Indexed(uint8(n - 30))
		case n == 38:
			var c Color
			if c, i = p.extendedColor(i); c.Kind != ColorDefault {
				pen.FG = c
			}
		case n == 39:
			pen.FG = Color{}
		case n >= 40 && n <= 47:
			pen.BG = Indexed(uint8(n - 40))
		case n == 48:
			var c Color
			if c, i = p.extendedColor(i); c.Kind != ColorDefault {
				pen.BG = c
			}
		case n == 49:
			pen.BG = Color{}
		case n >= 90 && n <= 97:
			pen.FG = Indexed(uint8(n - 90 + 8))
		case n >= 100 && n <= 107:
			pen.BG = Indexed(uint8(n - 100 + 8))
		}
		for p.isSub(i + 1) {
			i++
		}
	}
	p.screen.SetPen(pen)
}

func (p *Parser) isSub(i int) bool {
	return i < len(p.sub) && p.sub[i]
}

// extendedColor parses the 5;n and 2;r;g;b forms following 38 or 48 at
// index i. It returns the colour and the index of the last consumed param.
func (p *Parser) extendedColor(i int) (Color, int) {
	at := func(j int) int {
		if j >= len(p.params) || p.params[j] < 0 {
			return 0
		}
		return p.params[j]
	}
	if i+1 >= len(p.params) {
		return Color{}, i
	}
	if p.isSub(i + 1) {
		return p.colonColor(i, at)
	}
	switch at(i + 1) {
	case 5:
		if i+2 >= len(p.params) {
			return Color{}, len(p.params) - 1
		}
		return Indexed(uint8(at(i+2) & 0xff)), i + 2
	case 2:
		if i+4 >= len(p.params) {
			return Color{}, len(p.params) - 1
		}
		return RGB(uint8(at(i+2)&0xff), uint8(at(i+3)&0xff), uint8(at(i+4)&0xff)), i + 4
	}
	return Color{}, i + 1
}

// colonColor parses 38:5:n, 38:2:r:g:b and 38:2:cs:r:g:b. The colour
// space slot is skipped when present, empty or not.
func (p *Parser) colonColor(i int, at func(int) int) (Color, int) {
	end := i + 1
	for p.isSub(end + 1) {
		end++
	}
	n := end - (i + 1) // values after the colour kind
	switch at(i + 1) {
	case 5:
		if n >= 1 {
			return Indexed(uint8(at(i+2) & 0xff)), end
		}
	case 2:
		first := i + 2
		if n >= 4 {
			first = i + 3
		}
		if n >= 3 {
			return RGB(uint8(at(first)&0xff), uint8(at(first+1)&0xff), uint8(at(first+2)&0xff)), end
		}
	}
	return Color{}, end
}
