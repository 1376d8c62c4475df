package main

import (
	"fmt"
	"os"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/fivemoreminix/qsyntax/ui"
	"github.com/fivemoreminix/qsyntax/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// editor is the interactive session: one TextEdit above a StatusBar. While
// a prompt is open it takes the place of the StatusBar.
type editor struct {
	screen      tcell.Screen
	theme       *ui.Theme
	textEdit    *ui.TextEdit
	statusBar   *ui.StatusBar
	prompt      *ui.InputField // nil unless prompting
	repo        *syntax.Repository
	clipboard   *Clipboard
	diagnostics *syntax.Collector
	logger      logrus.FieldLogger
}

// newEditor opens contents highlighted with def, which may be nil. Languages
// chosen later are looked up in repo.
func newEditor(s tcell.Screen, path string, contents []byte, repo *syntax.Repository, def *syntax.Definition, cfg Config, colorscheme *buffer.Colorscheme, diagnostics *syntax.Collector, clipboard *Clipboard, logger logrus.FieldLogger) *editor {
	theme := &ui.Theme{}
	te := ui.NewTextEdit(&s, path, contents, def, colorscheme, theme)
	te.TabSize = cfg.TabSize
	te.UseHardTabs = cfg.HardTabs
	te.LineNumbers = cfg.LineNumbers

	e := &editor{
		screen:      s,
		theme:       theme,
		textEdit:    te,
		statusBar:   ui.NewStatusBar(theme),
		repo:        repo,
		clipboard:   clipboard,
		diagnostics: diagnostics,
		logger:      logger,
	}
	e.layout()
	te.SetFocused(true)
	return e
}

func (e *editor) layout() {
	sizex, sizey := e.screen.Size()
	e.textEdit.SetPos(0, 0)
	e.textEdit.SetSize(sizex, sizey-1)
	e.statusBar.SetPos(0, sizey-1)
	e.statusBar.SetSize(sizex, 1)
	if e.prompt != nil {
		e.prompt.SetPos(0, sizey-1)
		e.prompt.SetSize(sizex, 1)
	}
	e.textEdit.ScrollToCursor()
}

func (e *editor) draw() {
	e.screen.Clear()
	e.textEdit.Draw(e.screen)
	if e.prompt != nil {
		e.prompt.Draw(e.screen)
	} else {
		e.updateStatus()
		e.statusBar.Draw(e.screen)
	}
	e.screen.Show()
}

func (e *editor) updateStatus() {
	te := e.textEdit
	left := te.FilePath
	if left == "" {
		left = "[No Name]"
	}
	if def := te.Highlighter.Definition(); def != nil {
		left += " [" + def.Name() + "]"
	}
	if te.Dirty {
		left += " *"
	}
	if n := e.diagnostics.Len(); n > 0 {
		left += fmt.Sprintf(" (%d definition warnings, see log)", n)
	}
	e.statusBar.Left = left

	line, col := te.GetCursor().GetLineCol()
	e.statusBar.Right = fmt.Sprintf("%d:%d ", line+1, col+1)
}

// save writes the buffer to its file.
func (e *editor) save() error {
	te := e.textEdit
	if te.FilePath == "" {
		return errors.New("no file name to save to")
	}

	f, err := os.Create(te.FilePath)
	if err != nil {
		return errors.Wrap(err, "saving")
	}
	if _, err := te.Buffer.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "saving %s", te.FilePath)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "saving %s", te.FilePath)
	}

	te.Dirty = false
	e.logger.WithField("path", te.FilePath).Info("Saved file")
	return nil
}

// handleKey reports whether the editor should quit.
func (e *editor) handleKey(ev *tcell.EventKey) bool {
	if e.prompt != nil {
		e.prompt.HandleEvent(ev)
		return false
	}
	e.statusBar.ClearMessage()

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		if err := e.save(); err != nil {
			e.logger.WithError(err).Warn("Save failed")
			e.statusBar.SetMessage(err.Error(), true)
		} else {
			e.statusBar.SetMessage("Saved "+e.textEdit.FilePath, false)
		}
	case tcell.KeyCtrlC: // Copy the current line
		line, _ := e.textEdit.GetCursor().GetLineCol()
		if err := e.clipboard.Write(string(e.textEdit.GetLineBytes(line))); err != nil {
			e.statusBar.SetMessage(errors.Wrap(err, "copying").Error(), true)
		}
	case tcell.KeyCtrlG:
		e.openPrompt("Go to line: ", e.gotoLine)
	case tcell.KeyCtrlL:
		e.openPrompt("Language: ", e.setLanguage)
	case tcell.KeyCtrlV:
		contents, err := e.clipboard.Read()
		if err != nil {
			e.statusBar.SetMessage(errors.Wrap(err, "pasting").Error(), true)
			break
		}
		e.textEdit.Insert(contents)
	default:
		e.textEdit.HandleEvent(ev)
	}
	return false
}

// run draws and handles events until the user quits.
func (e *editor) run() {
	for {
		e.draw()

		switch ev := e.screen.PollEvent().(type) {
		case nil: // The screen was finalized
			return
		case *tcell.EventResize:
			e.layout()
			e.screen.Sync() // Redraw everything
		case *tcell.EventKey:
			if e.handleKey(ev) {
				return
			}
		}
	}
}
