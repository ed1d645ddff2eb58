package ui

import (
	"testing"

	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/git"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/render"
	"github.com/abdullathedruid/gitmux/internal/selection"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/abdullathedruid/gitmux/internal/workspace"
	"github.com/jesseduffield/gocui"
)

func newHeadless(t *testing.T) (*GUI, *[]event.Event) {
	t.Helper()
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
		Headless:   true,
		Width:      80,
		Height:     24,
	})
	if err != nil {
		t.Fatalf("NewGui() error: %v", err)
	}
	t.Cleanup(g.Close)
	var got []event.Event
	u := &GUI{g: g, emit: func(ev event.Event) bool {
		got = append(got, ev)
		return true
	}}
	return u, &got
}

func frameFor(focus input.Focus, prompt *input.Prompt) render.Frame {
	em := terminal.New(46, 20)
	em.Write([]byte("hello"))
	return render.Build(render.State{
		Width:    80,
		Height:   24,
		Split:    60,
		MinWidth: 20,
		Focus:    focus,
		Screen:   em.Screen(),
		Snapshot: &workspace.Snapshot{
			Branch: "main",
			Files:  []git.File{{Path: "a.go", Kind: git.KindModified}},
		},
		Selection: selection.New(),
		Prompt:    prompt,
	})
}

func TestConfigurePaneView(t *testing.T) {
	tests := []struct {
		name   string
		active bool
		color  gocui.Attribute
		runes  []rune
	}{
		{"active", true, gocui.ColorGreen, heavyFrame},
		{"inactive", false, gocui.ColorDefault, lightFrame},
	}
	for _, tt := range tests {
		v := gocui.NewView("pane", 0, 0, 10, 5, gocui.OutputTrue)
		ConfigurePaneView(v, render.Pane{Layout: pane.Layout{X1: 10, Y1: 5}, Title: " git ", Active: tt.active})
		if v.Title != " git " || !v.Frame {
			t.Errorf("%s: title %q frame %v", tt.name, v.Title, v.Frame)
		}
		if v.FrameColor != tt.color || v.TitleColor != tt.color {
			t.Errorf("%s: frame colour = %v, want %v", tt.name, v.FrameColor, tt.color)
		}
		if string(v.FrameRunes) != string(tt.runes) {
			t.Errorf("%s: frame runes = %q, want %q", tt.name, string(v.FrameRunes), string(tt.runes))
		}
	}
}

func TestLayout_DrawsFrame(t *testing.T) {
	u, got := newHeadless(t)
	u.Draw(frameFor(input.FocusHosted, nil))

	if err := u.layout(u.g); err != nil {
		t.Fatalf("layout() error: %v", err)
	}
	if len(*got) != 1 || (*got)[0] != (event.Resize{Cols: 80, Rows: 24}) {
		t.Errorf("emitted %v, want one 80x24 resize", *got)
	}
	for _, name := range []string{viewHosted, viewGit, viewStatus} {
		v, err := u.g.View(name)
		if err != nil {
			t.Fatalf("view %s missing: %v", name, err)
		}
		if !v.Editable {
			t.Errorf("view %s is not editable", name)
		}
	}
	cv := u.g.CurrentView()
	if cv == nil || cv.Name() != viewHosted {
		t.Fatalf("current view = %v, want %s", cv, viewHosted)
	}
	if !u.g.Cursor {
		t.Error("cursor hidden while the hosted pane has focus")
	}
	if x, y := cv.Cursor(); x != 5 || y != 0 {
		t.Errorf("cursor = %d,%d, want 5,0", x, y)
	}

	// Same size again does not report a resize.
	if err := u.layout(u.g); err != nil {
		t.Fatalf("second layout() error: %v", err)
	}
	if len(*got) != 1 {
		t.Errorf("emitted %d events, want 1", len(*got))
	}
}

func TestLayout_Prompt(t *testing.T) {
	u, _ := newHeadless(t)

	u.Draw(frameFor(input.FocusGit, input.NewPrompt(input.PromptCommit, nil)))
	if err := u.layout(u.g); err != nil {
		t.Fatalf("layout() error: %v", err)
	}
	if cv := u.g.CurrentView(); cv == nil || cv.Name() != viewPrompt {
		t.Fatalf("current view = %v, want %s", cv, viewPrompt)
	}

	u.Draw(frameFor(input.FocusGit, nil))
	if err := u.layout(u.g); err != nil {
		t.Fatalf("layout() error: %v", err)
	}
	if _, err := u.g.View(viewPrompt); err == nil {
		t.Error("prompt view kept after the prompt closed")
	}
	if cv := u.g.CurrentView(); cv == nil || cv.Name() != viewGit {
		t.Errorf("current view = %v, want %s", cv, viewGit)
	}
}

func TestLayout_EmptyFrame(t *testing.T) {
	u, _ := newHeadless(t)
	if err := u.layout(u.g); err != nil {
		t.Fatalf("layout() error: %v", err)
	}
	if _, err := u.g.View(viewHosted); err == nil {
		t.Error("views created before the first frame")
	}
}
