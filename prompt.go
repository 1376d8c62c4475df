package main

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/qsyntax/pkg/grammars"
	"github.com/fivemoreminix/qsyntax/ui"
	"github.com/pkg/errors"
)

// openPrompt replaces the status bar with an input field until it is
// submitted or cancelled. onSubmit may return an error to show.
func (e *editor) openPrompt(label string, onSubmit func(text string) error) {
	prompt := ui.NewInputField(&e.screen, label, e.theme)
	prompt.OnSubmit = func(text string) {
		e.closePrompt()
		if err := onSubmit(text); err != nil {
			e.statusBar.SetMessage(err.Error(), true)
		}
	}
	prompt.OnCancel = e.closePrompt

	e.prompt = prompt
	e.layout()
	e.textEdit.SetFocused(false)
	prompt.SetFocused(true)
}

func (e *editor) closePrompt() {
	if e.prompt != nil {
		e.prompt.SetFocused(false)
		e.prompt = nil
	}
	e.textEdit.SetFocused(true)
}

// gotoLine moves the cursor to the start of a line, counted from one.
func (e *editor) gotoLine(text string) error {
	num, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return errors.Errorf("not a line number: %q", text)
	}
	te := e.textEdit
	te.SetCursor(te.GetCursor().SetLineCol(num-1, 0))
	return nil
}

// setLanguage highlights the buffer as the named language. An empty name
// or "plain" switches highlighting off.
func (e *editor) setLanguage(text string) error {
	name := strings.TrimSpace(text)
	if name == "" || strings.EqualFold(name, "plain") {
		e.textEdit.SetDefinition(nil)
		return nil
	}

	entry := grammars.LanguageByName(name)
	if entry == nil {
		return errors.Errorf("unknown language %q", name)
	}
	def := e.repo.DefinitionForName(entry.Name)
	if def == nil || !def.Load() {
		return errors.Errorf("language %s could not be loaded", entry.Name)
	}
	e.textEdit.SetDefinition(def)
	e.logger.WithField("language", def.Name()).Debug("Changed language")
	return nil
}
