package ui

import (
	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/jesseduffield/gocui"
)

// gocui reports several keys under the same code (tab is ctrl+i, enter is
// ctrl+m), so the tables are ordered and the first match wins.
var namedKeys = []struct {
	key  gocui.Key
	code event.KeyCode
}{
	{gocui.KeyEnter, event.KeyEnter},
	{gocui.KeyTab, event.KeyTab},
	{gocui.KeyBacktab, event.KeyBacktab},
	{gocui.KeyBackspace2, event.KeyBackspace},
	{gocui.KeyBackspace, event.KeyBackspace},
	{gocui.KeyEsc, event.KeyEsc},
	{gocui.KeyArrowUp, event.KeyUp},
	{gocui.KeyArrowDown, event.KeyDown},
	{gocui.KeyArrowLeft, event.KeyLeft},
	{gocui.KeyArrowRight, event.KeyRight},
	{gocui.KeyHome, event.KeyHome},
	{gocui.KeyEnd, event.KeyEnd},
	{gocui.KeyPgup, event.KeyPgUp},
	{gocui.KeyPgdn, event.KeyPgDn},
	{gocui.KeyInsert, event.KeyInsert},
	{gocui.KeyDelete, event.KeyDelete},
	{gocui.KeyF1, event.KeyF1},
	{gocui.KeyF2, event.KeyF2},
	{gocui.KeyF3, event.KeyF3},
	{gocui.KeyF4, event.KeyF4},
	{gocui.KeyF5, event.KeyF5},
	{gocui.KeyF6, event.KeyF6},
	{gocui.KeyF7, event.KeyF7},
	{gocui.KeyF8, event.KeyF8},
	{gocui.KeyF9, event.KeyF9},
	{gocui.KeyF10, event.KeyF10},
	{gocui.KeyF11, event.KeyF11},
	{gocui.KeyF12, event.KeyF12},
}

var ctrlKeys = []struct {
	key gocui.Key
	r   rune
}{
	{gocui.KeyCtrlSpace, ' '},
	{gocui.KeyCtrlA, 'a'},
	{gocui.KeyCtrlB, 'b'},
	{gocui.KeyCtrlC, 'c'},
	{gocui.KeyCtrlD, 'd'},
	{gocui.KeyCtrlE, 'e'},
	{gocui.KeyCtrlF, 'f'},
	{gocui.KeyCtrlG, 'g'},
	{gocui.KeyCtrlH, 'h'},
	{gocui.KeyCtrlI, 'i'},
	{gocui.KeyCtrlJ, 'j'},
	{gocui.KeyCtrlK, 'k'},
	{gocui.KeyCtrlL, 'l'},
	{gocui.KeyCtrlM, 'm'},
	{gocui.KeyCtrlN, 'n'},
	{gocui.KeyCtrlO, 'o'},
	{gocui.KeyCtrlP, 'p'},
	{gocui.KeyCtrlQ, 'q'},
	{gocui.KeyCtrlR, 'r'},
	{gocui.KeyCtrlS, 's'},
	{gocui.KeyCtrlT, 't'},
	{gocui.KeyCtrlU, 'u'},
	{gocui.KeyCtrlV, 'v'},
	{gocui.KeyCtrlW, 'w'},
	{gocui.KeyCtrlX, 'x'},
	{gocui.KeyCtrlY, 'y'},
	{gocui.KeyCtrlZ, 'z'},
	{gocui.KeyCtrlBackslash, '\\'},
	{gocui.KeyCtrlRsqBracket, ']'},
	{gocui.KeyCtrlUnderscore, '_'},
}

// translate converts what a gocui editor receives into an event.Key. The
// second result is false for keys that have no meaning here.
func translate(key gocui.Key, ch rune, mod gocui.Modifier) (event.Key, bool) {
	alt := mod&gocui.ModAlt != 0
	if ch != 0 {
		k := event.Char(ch)
		k.Alt = alt
		return k, true
	}
	if key == gocui.KeySpace {
		k := event.Char(' ')
		k.Alt = alt
		return k, true
	}
	for _, n := range namedKeys {
		if n.key == key {
			k := event.Named(n.code)
			k.Alt = alt
			return k, true
		}
	}
	for _, c := range ctrlKeys {
		if c.key == key {
			k := event.Ctrl(c.r)
			k.Alt = alt
			return k, true
		}
	}
	return event.Key{}, false
}
