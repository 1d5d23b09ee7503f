// Package shell implements the interactive notes view: one collection,
// a filter query, and an editor session driven by a read–eval loop.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starford/penna/internal/collection"
	"github.com/starford/penna/internal/editor"
	"github.com/starford/penna/internal/models"
	"github.com/starford/penna/internal/ui"
)

// Shell is an interactive session over the collection store. Bare input
// sets the filter query; commands start with ':'.
type Shell struct {
	store   *collection.Store
	session *editor.Session
	theme   ui.Theme
	in      *bufio.Scanner
	out     io.Writer

	query string
}

// New creates a Shell reading commands from in and rendering to out.
func New(store *collection.Store, theme ui.Theme, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store:   store,
		session: editor.NewSession(store),
		theme:   theme,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run performs the initial load and processes commands until :quit or EOF.
func (sh *Shell) Run(ctx context.Context) error {
	ui.Info(sh.out, sh.theme, "loading notes…")
	if err := sh.store.Reload(ctx); err != nil {
		ui.ErrorBanner(sh.out, sh.theme, sh.store.Err())
	}
	sh.render()

	for {
		fmt.Fprint(sh.out, "> ")
		if !sh.in.Scan() {
			return sh.in.Err()
		}
		line := strings.TrimSpace(sh.in.Text())

		switch {
		case line == ":q" || line == ":quit":
			return nil
		case line == ":help":
			sh.printHelp()
			continue
		case line == ":reload":
			if err := sh.store.Reload(ctx); err == nil {
				ui.Success(sh.out, sh.theme, "reloaded")
			}
		case line == ":theme":
			sh.theme = sh.theme.Toggle()
			ui.Info(sh.out, sh.theme, "theme: %s", sh.theme.Name)
		case line == ":new":
			sh.session.OpenCreate()
			sh.runEditor(ctx)
		case strings.HasPrefix(line, ":edit "):
			if note, ok := sh.pick(strings.TrimPrefix(line, ":edit ")); ok {
				sh.session.OpenEdit(note)
				sh.runEditor(ctx)
			}
		case strings.HasPrefix(line, ":rm "):
			if note, ok := sh.pick(strings.TrimPrefix(line, ":rm ")); ok {
				if sh.confirm(fmt.Sprintf("delete %q?", note.Title)) {
					_ = sh.store.Remove(ctx, note.ID)
				}
			}
		case strings.HasPrefix(line, ":"):
			ui.Info(sh.out, sh.theme, "unknown command %s (try :help)", line)
			continue
		default:
			// Anything else is the filter query; empty input clears it.
			sh.query = line
		}

		sh.render()
	}
}

// render shows the error banner (if any) and the filtered listing.
func (sh *Shell) render() {
	ui.ErrorBanner(sh.out, sh.theme, sh.store.Err())
	visible := collection.Filter(sh.store.Notes(), sh.query)
	if sh.query != "" {
		ui.Info(sh.out, sh.theme, "filter: %q (%d of %d)", sh.query, len(visible), sh.store.Len())
	}
	ui.RenderList(sh.out, sh.theme, visible)
}

// runEditor prompts for the draft and submits. On failure the session stays
// open and the user is asked again, so a failed save never loses input.
func (sh *Shell) runEditor(ctx context.Context) {
	for sh.session.Open() {
		draft := sh.session.Draft()

		title := sh.prompt("title", draft.Title)
		content := sh.prompt("content", draft.Content)
		sh.session.SetDraft(models.Draft{Title: title, Content: content})

		if strings.TrimSpace(title) == "" {
			// Same as submitting an empty form: nothing happens.
			ui.Info(sh.out, sh.theme, "title is empty, discarding")
			sh.session.Cancel()
			return
		}

		saved, ok, err := sh.session.Submit(ctx)
		if err != nil {
			ui.ErrorBanner(sh.out, sh.theme, err.Error())
			if !sh.confirm("retry?") {
				sh.session.Cancel()
				return
			}
			continue
		}
		if ok {
			ui.Success(sh.out, sh.theme, "saved %q", saved.Title)
		}
	}
}

// pick resolves a 1-based listing number against the current filtered view.
func (sh *Shell) pick(arg string) (models.Note, bool) {
	visible := collection.Filter(sh.store.Notes(), sh.query)
	idx, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || idx < 1 || idx > len(visible) {
		ui.Info(sh.out, sh.theme, "no note numbered %q", strings.TrimSpace(arg))
		return models.Note{}, false
	}
	return visible[idx-1], true
}

// prompt asks for one field. Empty input keeps the current value; a single
// "-" clears it, so an edit can empty a note's content.
func (sh *Shell) prompt(label, current string) string {
	if current != "" {
		fmt.Fprintf(sh.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(sh.out, "%s: ", label)
	}
	if !sh.in.Scan() {
		return current
	}
	text := sh.in.Text()
	switch strings.TrimSpace(text) {
	case "":
		return current
	case "-":
		return ""
	}
	return text
}

func (sh *Shell) confirm(question string) bool {
	fmt.Fprintf(sh.out, "%s [y/N] ", question)
	if !sh.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sh.in.Text()))
	return answer == "y" || answer == "yes"
}

func (sh *Shell) printHelp() {
	help := []string{
		"<text>      filter notes by title/content (empty line clears)",
		":new        create a note",
		":edit <n>   edit note number <n> from the listing",
		"            (in prompts, empty input keeps the value, \"-\" clears it)",
		":rm <n>     delete note number <n>",
		":reload     refetch the collection",
		":theme      toggle light/dark",
		":quit       exit",
	}
	for _, line := range help {
		ui.Info(sh.out, sh.theme, "  %s", line)
	}
}
