package repl

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the text user interface over a Session, re-themed from the
// teacher's CPU-register/memory/breakpoints layout to the macro
// processor's output stream, symbol table, and diversion buffers.
type TUI struct {
	Session *Session
	App     *tview.Application

	MainLayout    *tview.Flex
	OutputView    *tview.TextView
	SymbolsView   *tview.TextView
	DiversionsView *tview.TextView
	CommandInput  *tview.InputField

	printed int
}

// NewTUI builds a TUI bound to session.
func NewTUI(session *Session) *TUI {
	t := &TUI{
		Session: session,
		App:     tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output (diversion 0) ")

	t.SymbolsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	t.SymbolsView.SetBorder(true).SetTitle(" Symbols ")

	t.DiversionsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	t.DiversionsView.SetBorder(true).SetTitle(" Diversions ")

	t.CommandInput = tview.NewInputField().
		SetLabel("m4go> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Input ")
	t.CommandInput.SetDoneFunc(t.handleInput)
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SymbolsView, 0, 1, false).
		AddItem(t.DiversionsView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.OutputView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			t.App.Stop()
			return nil
		}
		return event
	})
}

func (t *TUI) handleInput(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := t.CommandInput.GetText()
	t.CommandInput.SetText("")
	if line == "" {
		return
	}

	result := dispatchMeta(t.Session, line)
	if result.forwards {
		if err := t.Session.Feed(line); err != nil {
			t.writeOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
		}
	} else if result.text != "" {
		t.writeOutput(result.text)
	}

	t.RefreshAll()

	if result.quit {
		t.App.Stop()
	}
}

func (t *TUI) writeOutput(text string) {
	fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every pane from current session state.
func (t *TUI) RefreshAll() {
	out := t.Session.Output()
	if len(out) > t.printed {
		t.OutputView.Write([]byte(out[t.printed:]))
		t.OutputView.ScrollToEnd()
		t.printed = len(out)
	}
	t.SymbolsView.SetText(t.Session.Driver().DumpSymbols())
	t.DiversionsView.SetText(t.Session.Driver().Diversions.Dump())
	t.App.Draw()
}

// Run starts the TUI event loop until the user quits.
func (t *TUI) Run() error {
	t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput)
	return t.App.Run()
}
