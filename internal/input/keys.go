package input

import (
	"unicode/utf8"

	"github.com/abdullathedruid/gitmux/internal/event"
)

var csiKeys = map[event.KeyCode]string{
	event.KeyInsert: "\x1b[2~",
	event.KeyDelete: "\x1b[3~",
	event.KeyPgUp:   "\x1b[5~",
	event.KeyPgDn:   "\x1b[6~",
	event.KeyF1:     "\x1bOP",
	event.KeyF2:     "\x1bOQ",
	event.KeyF3:     "\x1bOR",
	event.KeyF4:     "\x1bOS",
	event.KeyF5:     "\x1b[15~",
	event.KeyF6:     "\x1b[17~",
	event.KeyF7:     "\x1b[18~",
	event.KeyF8:     "\x1b[19~",
	event.KeyF9:     "\x1b[20~",
	event.KeyF10:    "\x1b[21~",
	event.KeyF11:    "\x1b[23~",
	event.KeyF12:    "\x1b[24~",
}

// cursorKeys switch between CSI and SS3 with application cursor mode.
var cursorKeys = map[event.KeyCode]byte{
	event.KeyUp:    'A',
	event.KeyDown:  'B',
	event.KeyRight: 'C',
	event.KeyLeft:  'D',
	event.KeyHome:  'H',
	event.KeyEnd:   'F',
}

// KeyBytes encodes k the way an xterm sends it. appCursor selects the
// application cursor key form. It returns nil for keys with no encoding.
func KeyBytes(k event.Key, appCursor bool) []byte {
	var out []byte
	switch k.Code {
	case event.KeyRune:
		if !utf8.ValidRune(k.Rune) {
			return nil
		}
		out = utf8.AppendRune(nil, k.Rune)
	case event.KeyCtrl:
		b, ok := ctrlByte(k.Rune)
		if !ok {
			return nil
		}
		out = []byte{b}
	case event.KeyEnter:
		out = []byte{'\r'}
	case event.KeyTab:
		out = []byte{'\t'}
	case event.KeyBacktab:
		out = []byte("\x1b[Z")
	case event.KeyBackspace:
		out = []byte{0x7f}
	case event.KeyEsc:
		out = []byte{0x1b}
	default:
		if final, ok := cursorKeys[k.Code]; ok {
			if appCursor {
				out = []byte{0x1b, 'O', final}
			} else {
				out = []byte{0x1b, '[', final}
			}
		} else if seq, ok := csiKeys[k.Code]; ok {
			out = []byte(seq)
		} else {
			return nil
		}
	}
	if k.Alt {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

func ctrlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r - 'a' + 1), true
	case r >= 'A' && r <= 'Z':
		return byte(r - 'A' + 1), true
	case r == '@' || r == ' ' || r == '2':
		return 0, true
	case r >= '[' && r <= '_':
		return byte(r) & 0x1f, true
	case r == '/':
		return 0x1f, true
	}
	return 0, false
}
