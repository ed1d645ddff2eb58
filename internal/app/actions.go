package app

import (
	"fmt"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/git"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/render"
	"github.com/abdullathedruid/gitmux/internal/selection"
	"github.com/abdullathedruid/gitmux/internal/workspace"
)

// do performs a routed command.
func (a *App) do(cmd input.Command) {
	count := max(cmd.Count, 1)

	switch cmd.Action {
	case input.ActNone:
	case input.ActQuit:
		a.quitting = true
	case input.ActToggleFocus:
		a.focus = a.focus.Toggle()
	case input.ActFocusHosted:
		a.focus = input.FocusHosted
	case input.ActFocusGit:
		a.focus = input.FocusGit
	case input.ActCycleSplit:
		a.split = pane.CycleSplit(a.split)
		a.fitHosted()
		a.clampDiffTop()
	case input.ActForward:
		a.forward(cmd.Bytes)
	case input.ActPromptKey:
		a.promptKey(cmd)
	case input.ActSelectRow:
		a.focus = input.FocusGit
		snap := a.model.Snapshot()
		if i := render.FileAt(cmd.Row, a.cursor, a.gitHeight(), snap.Len()); i >= 0 {
			a.moveCursor(i)
		}

	case input.ActNavDown:
		if a.view == input.ViewDiff {
			a.scroll(count)
		} else {
			a.moveCursor(a.cursor + count)
		}
	case input.ActNavUp:
		if a.view == input.ViewDiff {
			a.scroll(-count)
		} else {
			a.moveCursor(a.cursor - count)
		}
	case input.ActScrollDown:
		a.scroll(count)
	case input.ActScrollUp:
		a.scroll(-count)
	case input.ActNextHunk:
		a.jumpHunk(true)
	case input.ActPrevHunk:
		a.jumpHunk(false)
	case input.ActOpenDiff:
		a.openDiff()
	case input.ActCloseDiff:
		a.model.CloseDiff()
		a.view = input.ViewStatus
		a.diffTop = 0

	case input.ActToggleStage:
		if f, ok := a.cursorFile(); ok {
			if f.Stage == git.Staged {
				a.submit(workspace.OpUnstage, f.Path, "")
			} else {
				a.submit(workspace.OpStage, f.Path, "")
			}
		}
	case input.ActStageAll:
		a.submit(workspace.OpStageAll, "", "")
	case input.ActDiscard:
		if f, ok := a.cursorFile(); ok {
			a.submit(workspace.OpDiscard, f.Path, "")
		}
	case input.ActPush:
		a.submit(workspace.OpPush, "", "")
	case input.ActPull:
		a.submit(workspace.OpPull, "", "")
	case input.ActStash:
		a.submit(workspace.OpStash, "", "")
	case input.ActStashPop:
		a.submit(workspace.OpStashPop, "", "")
	case input.ActBranches:
		a.submit(workspace.OpBranches, "", "")
	case input.ActRefresh:
		a.submit(workspace.OpRefresh, "", "")

	case input.ActCommit:
		a.prompt = input.NewPrompt(input.PromptCommit, nil)
	case input.ActCommitPush:
		a.prompt = input.NewPrompt(input.PromptCommitPush, nil)
	case input.ActNewBranch:
		a.prompt = input.NewPrompt(input.PromptNewBranch, nil)
	case input.ActCheckout:
		a.prompt = input.NewPrompt(input.PromptCheckout, nil)

	case input.ActSend:
		paths := a.sendPaths()
		if len(paths) == 0 {
			a.board.Info(a.now(), "Nothing selected")
			return
		}
		a.inject(paths, "")
	case input.ActSendPrompt:
		a.prompt = input.NewPrompt(input.PromptSend, a.sendPaths())

	case input.ActMultiSelect:
		a.sel.SetMulti(!a.sel.Multi(), a.cursorPath)
		if a.sel.Multi() {
			a.board.Info(a.now(), "Multi-select on")
		} else {
			a.board.Info(a.now(), "Multi-select off")
		}
	case input.ActToggleSelect:
		a.sel.Toggle(a.cursorPath)
	}
}

func (a *App) forward(b []byte) {
	if a.exit != "" || a.hosted.Exited() {
		return
	}
	if err := a.hosted.Write(b); err != nil {
		a.board.Error(a.now(), "Write failed: "+err.Error())
	}
}

func (a *App) cursorFile() (git.File, bool) {
	return a.model.Snapshot().At(a.cursor)
}

// moveCursor clamps i to the file list. Outside multi-select the
// selection follows the cursor.
func (a *App) moveCursor(i int) {
	snap := a.model.Snapshot()
	if snap.Len() == 0 {
		a.cursor, a.cursorPath = 0, ""
		return
	}
	a.cursor = min(max(i, 0), snap.Len()-1)
	f, _ := snap.At(a.cursor)
	a.cursorPath = f.Path
	a.sel.Navigate(f.Path)
}

func (a *App) scroll(n int) {
	a.diffTop += n
	a.clampDiffTop()
}

func (a *App) jumpHunk(forward bool) {
	rows := a.model.Diff().Diff.HunkRows()
	target := -1
	if forward {
		for _, r := range rows {
			if r > a.diffTop {
				target = r
				break
			}
		}
	} else {
		for i := len(rows) - 1; i >= 0; i-- {
			if rows[i] < a.diffTop {
				target = rows[i]
				break
			}
		}
	}
	if target < 0 {
		return
	}
	a.diffTop = target
	a.clampDiffTop()
}

func (a *App) openDiff() {
	f, ok := a.cursorFile()
	if !ok {
		return
	}
	req := a.model.OpenDiff(f.Path)
	a.view = input.ViewDiff
	a.diffTop = 0
	a.git.FetchDiff(req.ID, f)
}

// sendPaths is the selection in snapshot order, or the file under the
// cursor when nothing is selected.
func (a *App) sendPaths() []string {
	paths := a.sel.Ordered(a.model.Snapshot())
	if len(paths) == 0 && a.cursorPath != "" {
		paths = []string{a.cursorPath}
	}
	return paths
}

// inject queues the references as one write. The selection is cleared
// only once the write is queued, and focus moves to the hosted pane so the
// user can finish the message there.
func (a *App) inject(paths []string, prompt string) {
	text := selection.Compose(paths, prompt)
	if text == "" {
		return
	}
	if err := a.hosted.Inject(text, paths); err != nil {
		a.log.Error("inject failed", "err", err, "paths", len(paths))
		a.board.Error(a.now(), "Send failed: "+err.Error())
		return
	}
	a.sel.Clear()
	a.focus = input.FocusHosted
	switch len(paths) {
	case 0:
		a.board.Info(a.now(), "Sent prompt")
	case 1:
		a.board.Info(a.now(), "Sent @"+paths[0])
	default:
		a.board.Info(a.now(), fmt.Sprintf("Sent %d files", len(paths)))
	}
}

func (a *App) promptKey(cmd input.Command) {
	p := a.prompt
	switch p.Handle(cmd.Key) {
	case input.PromptCancel:
		a.prompt = nil
	case input.PromptSubmit:
		a.prompt = nil
		a.submitPrompt(p)
	}
}

func (a *App) submitPrompt(p *input.Prompt) {
	text := p.Text()
	switch p.Kind {
	case input.PromptSend:
		a.inject(p.Paths, strings.TrimSpace(text))
	case input.PromptCommit:
		// An empty message goes to git as-is so it can refuse it.
		a.submit(workspace.OpCommit, "", text)
	case input.PromptCommitPush:
		a.submit(workspace.OpCommitPush, "", text)
	case input.PromptNewBranch, input.PromptCheckout:
		name := strings.TrimSpace(text)
		if name == "" {
			a.board.Error(a.now(), "Branch name must not be empty")
			return
		}
		if p.Kind == input.PromptNewBranch {
			a.submit(workspace.OpCreateBranch, "", name)
		} else {
			a.submit(workspace.OpCheckout, "", name)
		}
	}
}
