package input

import (
	"strings"

	"github.com/abdullathedruid/gitmux/internal/event"
)

// PromptKind is what a prompt's text is for.
type PromptKind int

const (
	PromptSend PromptKind = iota
	PromptCommit
	PromptCommitPush
	PromptNewBranch
	PromptCheckout
)

// PromptResult is the outcome of one key in a prompt.
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptSubmit
	PromptCancel
)

// Prompt is a one-line text editor shown over the panes.
type Prompt struct {
	Kind  PromptKind
	Paths []string // files attached to a send prompt
	buf   []rune
	pos   int
}

// NewPrompt opens an empty prompt.
func NewPrompt(kind PromptKind, paths []string) *Prompt {
	return &Prompt{Kind: kind, Paths: paths}
}

// Title is the dialog heading.
func (p *Prompt) Title() string {
	switch p.Kind {
	case PromptSend:
		if len(p.Paths) == 0 {
			return "Prompt"
		}
		refs := make([]string, len(p.Paths))
		for i, path := range p.Paths {
			refs[i] = "@" + path
		}
		return "Prompt for " + strings.Join(refs, " ")
	case PromptCommit:
		return "Commit message"
	case PromptCommitPush:
		return "Commit message (then push)"
	case PromptNewBranch:
		return "New branch name"
	case PromptCheckout:
		return "Checkout branch"
	}
	return ""
}

// Text is the current input.
func (p *Prompt) Text() string {
	return string(p.buf)
}

// Cursor is the cursor position in runes.
func (p *Prompt) Cursor() int {
	return p.pos
}

// Handle applies one key.
func (p *Prompt) Handle(k event.Key) PromptResult {
	switch k.Code {
	case event.KeyEnter:
		return PromptSubmit
	case event.KeyEsc:
		return PromptCancel
	case event.KeyBackspace:
		if p.pos > 0 {
			p.buf = append(p.buf[:p.pos-1], p.buf[p.pos:]...)
			p.pos--
		}
	case event.KeyDelete:
		if p.pos < len(p.buf) {
			p.buf = append(p.buf[:p.pos], p.buf[p.pos+1:]...)
		}
	case event.KeyLeft:
		if p.pos > 0 {
			p.pos--
		}
	case event.KeyRight:
		if p.pos < len(p.buf) {
			p.pos++
		}
	case event.KeyHome:
		p.pos = 0
	case event.KeyEnd:
		p.pos = len(p.buf)
	case event.KeyCtrl:
		switch k.Rune {
		case 'a':
			p.pos = 0
		case 'e':
			p.pos = len(p.buf)
		case 'u':
			p.buf = append(p.buf[:0], p.buf[p.pos:]...)
			p.pos = 0
		case 'c':
			return PromptCancel
		}
	case event.KeyRune:
		if k.Alt || k.Rune < 0x20 {
			break
		}
		p.buf = append(p.buf, 0)
		copy(p.buf[p.pos+1:], p.buf[p.pos:])
		p.buf[p.pos] = k.Rune
		p.pos++
	}
	return PromptEditing
}
