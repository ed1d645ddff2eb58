package event

import "fmt"

// KeyCode names a key. Printable characters use KeyRune and control
// combinations use KeyCtrl, both with Key.Rune set.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyCtrl
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdn",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
}

// KeyNames returns the named keys by name.
func KeyNames() map[string]KeyCode {
	out := make(map[string]KeyCode, len(keyNames)+12)
	for code, name := range keyNames {
		out[name] = code
	}
	for i := 0; i < 12; i++ {
		out[fmt.Sprintf("f%d", i+1)] = KeyF1 + KeyCode(i)
	}
	return out
}

// Char returns the key for a printable rune.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Ctrl returns the key for ctrl plus r.
func Ctrl(r rune) Key {
	return Key{Code: KeyCtrl, Rune: r}
}

// Named returns the key for a non-printing key.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

// String renders k the way configuration files spell it.
func (k Key) String() string {
	var s string
	switch {
	case k.Code == KeyRune && k.Rune == ' ':
		s = "space"
	case k.Code == KeyRune:
		s = string(k.Rune)
	case k.Code == KeyCtrl:
		s = "ctrl+" + string(k.Rune)
	case k.Code >= KeyF1 && k.Code <= KeyF12:
		s = fmt.Sprintf("f%d", int(k.Code-KeyF1)+1)
	default:
		s = keyNames[k.Code]
	}
	if k.Alt {
		return "alt+" + s
	}
	return s
}
