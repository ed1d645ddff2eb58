package input

import "github.com/abdullathedruid/gitmux/internal/event"

// WheelLines is how far one wheel notch moves.
const WheelLines = 3

// Action is what a key or mouse event asks for.
type Action int

const (
	ActNone Action = iota
	ActQuit
	ActToggleFocus
	ActCycleSplit
	ActForward // write Command.Bytes to the hosted process
	ActPromptKey
	ActFocusHosted
	ActFocusGit
	ActSelectRow
	ActNavDown
	ActNavUp
	ActToggleStage
	ActStageAll
	ActOpenDiff
	ActCloseDiff
	ActDiscard
	ActSend
	ActSendPrompt
	ActCommit
	ActCommitPush
	ActPush
	ActPull
	ActBranches
	ActNewBranch
	ActCheckout
	ActStash
	ActStashPop
	ActMultiSelect
	ActToggleSelect
	ActRefresh
	ActScrollDown
	ActScrollUp
	ActNextHunk
	ActPrevHunk
)

var actionNames = map[Action]string{
	ActNone:         "none",
	ActQuit:         "quit",
	ActToggleFocus:  "toggle_focus",
	ActCycleSplit:   "cycle_split",
	ActForward:      "forward",
	ActPromptKey:    "prompt_key",
	ActFocusHosted:  "focus_hosted",
	ActFocusGit:     "focus_git",
	ActSelectRow:    "select_row",
	ActNavDown:      "nav_down",
	ActNavUp:        "nav_up",
	ActToggleStage:  "toggle_stage",
	ActStageAll:     "stage_all",
	ActOpenDiff:     "open_diff",
	ActCloseDiff:    "close_diff",
	ActDiscard:      "discard",
	ActSend:         "send",
	ActSendPrompt:   "send_prompt",
	ActCommit:       "commit",
	ActCommitPush:   "commit_push",
	ActPush:         "push",
	ActPull:         "pull",
	ActBranches:     "branches",
	ActNewBranch:    "new_branch",
	ActCheckout:     "checkout",
	ActStash:        "stash",
	ActStashPop:     "stash_pop",
	ActMultiSelect:  "multi_select",
	ActToggleSelect: "toggle_select",
	ActRefresh:      "refresh",
	ActScrollDown:   "scroll_down",
	ActScrollUp:     "scroll_up",
	ActNextHunk:     "next_hunk",
	ActPrevHunk:     "prev_hunk",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Command is a routed event.
type Command struct {
	Action Action
	Bytes  []byte    // ActForward
	Key    event.Key // ActPromptKey
	Row    int       // ActSelectRow
	Count  int       // repeat for navigation and scrolling
}

// Context names a keymap layer.
type Context int

const (
	// ContextGlobal keys work in every pane.
	ContextGlobal Context = iota
	// ContextStatus keys apply to the file list.
	ContextStatus
	// ContextDiff keys apply to the diff view.
	ContextDiff
)

// Keymap binds keys to actions per context.
type Keymap struct {
	layers [3]map[event.Key]Action
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	k := &Keymap{}
	for i := range k.layers {
		k.layers[i] = make(map[event.Key]Action)
	}
	return k
}

// Bind maps key to act in ctx, replacing any earlier binding.
func (k *Keymap) Bind(ctx Context, key event.Key, act Action) {
	k.layers[ctx][key] = act
}

// Lookup returns the action bound to key in ctx.
func (k *Keymap) Lookup(ctx Context, key event.Key) (Action, bool) {
	act, ok := k.layers[ctx][key]
	return act, ok
}

// Keys returns the keys bound to act in ctx.
func (k *Keymap) Keys(ctx Context, act Action) []event.Key {
	var keys []event.Key
	for key, a := range k.layers[ctx] {
		if a == act {
			keys = append(keys, key)
		}
	}
	return keys
}

// State is the part of the UI state routing depends on.
type State struct {
	Focus     Focus
	View      SubView
	Prompt    bool // a prompt dialog is open
	AppCursor bool // hosted process asked for application cursor keys
}

// maxCount caps a count prefix.
const maxCount = 9999

// Router turns events into commands. In the git pane unbound digits build
// a count prefix for the next command, as in 3j.
type Router struct {
	keys  *Keymap
	count int
}

// NewRouter returns a router over keys.
func NewRouter(keys *Keymap) *Router {
	return &Router{keys: keys}
}

// Key routes a key press.
func (r *Router) Key(st State, k event.Key) Command {
	if st.Prompt {
		r.count = 0
		return Command{Action: ActPromptKey, Key: k}
	}
	if act, ok := r.keys.Lookup(ContextGlobal, k); ok {
		r.count = 0
		return Command{Action: act}
	}

	if st.Focus == FocusHosted {
		r.count = 0
		b := KeyBytes(k, st.AppCursor)
		if b == nil {
			return Command{}
		}
		return Command{Action: ActForward, Bytes: b}
	}

	ctx := ContextStatus
	if st.View == ViewDiff {
		ctx = ContextDiff
	}
	if act, ok := r.keys.Lookup(ctx, k); ok {
		return Command{Action: act, Count: r.takeCount()}
	}
	if r.digit(k) {
		return Command{}
	}

	// Arrows always move, whatever nav_up and nav_down are bound to.
	switch {
	case k.Code == event.KeyDown && st.View == ViewDiff:
		return Command{Action: ActScrollDown, Count: r.takeCount()}
	case k.Code == event.KeyUp && st.View == ViewDiff:
		return Command{Action: ActScrollUp, Count: r.takeCount()}
	case k.Code == event.KeyDown:
		return Command{Action: ActNavDown, Count: r.takeCount()}
	case k.Code == event.KeyUp:
		return Command{Action: ActNavUp, Count: r.takeCount()}
	}
	r.count = 0
	return Command{}
}

// digit adds k to the pending count. A leading 0 is not a count.
func (r *Router) digit(k event.Key) bool {
	if k.Code != event.KeyRune || k.Alt || k.Rune < '0' || k.Rune > '9' {
		return false
	}
	if r.count == 0 && k.Rune == '0' {
		return false
	}
	r.count = min(r.count*10+int(k.Rune-'0'), maxCount)
	return true
}

// takeCount returns the pending count, at least 1, and clears it.
func (r *Router) takeCount() int {
	n := max(r.count, 1)
	r.count = 0
	return n
}

// Mouse routes a mouse event. Clicks move focus; a click on a file row
// also moves the cursor there.
func (r *Router) Mouse(st State, m event.Mouse) Command {
	if st.Prompt {
		return Command{}
	}
	switch m.Region {
	case event.RegionHosted:
		switch m.Button {
		case event.ButtonLeft:
			return Command{Action: ActFocusHosted}
		case event.ButtonWheelUp:
			return Command{Action: ActForward, Bytes: repeat(KeyBytes(event.Named(event.KeyUp), st.AppCursor), WheelLines)}
		case event.ButtonWheelDown:
			return Command{Action: ActForward, Bytes: repeat(KeyBytes(event.Named(event.KeyDown), st.AppCursor), WheelLines)}
		}
	case event.RegionGit:
		switch m.Button {
		case event.ButtonLeft:
			if st.View == ViewStatus && m.Y >= 0 {
				return Command{Action: ActSelectRow, Row: m.Y}
			}
			return Command{Action: ActFocusGit}
		case event.ButtonWheelUp:
			if st.View == ViewDiff {
				return Command{Action: ActScrollUp, Count: WheelLines}
			}
			return Command{Action: ActNavUp, Count: 1}
		case event.ButtonWheelDown:
			if st.View == ViewDiff {
				return Command{Action: ActScrollDown, Count: WheelLines}
			}
			return Command{Action: ActNavDown, Count: 1}
		}
	}
	return Command{}
}

func repeat(b []byte, n int) []byte {
	out := make([]byte, 0, len(b)*n)
	for i := 0; i < n; i++ {
		out = append(out, b...)
	}
	return out
}
