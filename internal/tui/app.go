package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/timesheet/internal/launch"
	"github.com/naveenspark/timesheet/internal/session"
	"github.com/naveenspark/timesheet/pkg/domain"
)

// Tracker is the part of session.Tracker the UI drives.
type Tracker interface {
	Toggle(state domain.State, note string) (session.Result, error)
	Exit(state domain.State, choice session.ExitChoice, note string) (session.ExitOutcome, error)
	Latest() (domain.Row, bool, error)
	Current() (domain.Row, bool, error)
}

// toggledMsg carries the result of a clock in/out.
type toggledMsg struct {
	res session.Result
	err error
}

// exitMsg carries the resolution of the exit prompt.
type exitMsg struct {
	out session.ExitOutcome
	err error
}

// latestLoadedMsg carries the last row of the timesheet and today's open
// row, which need not be the same.
type latestLoadedMsg struct {
	row     domain.Row
	ok      bool
	open    domain.Row
	hasOpen bool
	err     error
}

// copiedMsg reports a clipboard write.
type copiedMsg struct {
	err error
}

// openedMsg reports an attempt to open the workbook.
type openedMsg struct {
	err error
}

// App is the root Bubbletea model.
type App struct {
	tracker Tracker
	state   domain.State
	path    string
	version string

	note textarea.Model
	keys keyMap
	mode mode

	lastRow  domain.Row
	hasRow   bool
	openRow  domain.Row
	hasOpen  bool
	warning  string
	flash    string
	busy     bool
	quitting bool // quit once the current warning is dismissed

	writeClipboard func(string) error
	openFile       func(string) error

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the clock screen. state must come from session.Tracker.Startup.
func NewApp(t Tracker, state domain.State, path, version string) App {
	ta := textarea.New()
	ta.Placeholder = "what did you work on?"
	ta.ShowLineNumbers = false
	ta.CharLimit = maxNoteLen
	ta.SetWidth(40)
	ta.SetHeight(5)

	a := App{
		tracker:        t,
		state:          state,
		path:           path,
		version:        version,
		note:           ta,
		keys:           defaultKeyMap(),
		writeClipboard: clipboard.WriteAll,
		openFile:       launch.Open,
		width:          80,
		height:         24,
	}
	if state == domain.ClockedIn {
		a.note.Focus()
	}
	return a
}

// State returns the clocked-in state currently shown.
func (a App) State() domain.State {
	return a.state
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.loadLatest()}
	if a.note.Focused() {
		cmds = append(cmds, textarea.Blink)
	}
	return tea.Batch(cmds...)
}

func (a App) loadLatest() tea.Cmd {
	t := a.tracker
	return func() tea.Msg {
		row, ok, err := t.Latest()
		if err != nil {
			return latestLoadedMsg{err: err}
		}
		open, hasOpen, err := t.Current()
		return latestLoadedMsg{row: row, ok: ok, open: open, hasOpen: hasOpen, err: err}
	}
}

func (a App) toggle() (App, tea.Cmd) {
	t := a.tracker
	state := a.state
	note := ""
	if state == domain.ClockedIn {
		note = strings.TrimSpace(a.note.Value())
	}
	a.busy = true
	a.flash = ""
	return a, func() tea.Msg {
		res, err := t.Toggle(state, note)
		return toggledMsg{res: res, err: err}
	}
}

func (a App) exit(choice session.ExitChoice) (App, tea.Cmd) {
	t := a.tracker
	state := a.state
	note := strings.TrimSpace(a.note.Value())
	a.busy = true
	a.mode = modeNormal
	return a, func() tea.Msg {
		out, err := t.Exit(state, choice, note)
		return exitMsg{out: out, err: err}
	}
}

func (a App) copyLatest() tea.Cmd {
	if !a.hasRow {
		return func() tea.Msg { return copiedMsg{err: errors.New("the timesheet has no rows yet")} }
	}
	copyFn := a.writeClipboard
	text := a.lastRow.TSV()
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (a App) openWorkbook() tea.Cmd {
	openFn := a.openFile
	path := a.path
	return func() tea.Msg {
		return openedMsg{err: openFn(path)}
	}
}

// applyResult moves the screen to res.State.
func (a App) applyResult(res session.Result) App {
	// A refused toggle carries no row; only a real write gets a flash.
	if res.Row != (domain.Row{}) {
		a.lastRow = res.Row
		a.hasRow = true
		switch res.State {
		case domain.ClockedIn:
			a.flash = "clocked in at " + res.Row.ClockIn
			a.openRow, a.hasOpen = res.Row, true
		case domain.ClockedOut:
			a.flash = "clocked out at " + res.Row.ClockOut
			a.openRow, a.hasOpen = domain.Row{}, false
		}
	}
	if res.State != a.state {
		switch res.State {
		case domain.ClockedIn:
			a.note.Focus()
		case domain.ClockedOut:
			a.note.Reset()
			a.note.Blur()
		}
	}
	a.state = res.State
	if res.Warning != nil {
		a.showWarning(res.Warning)
	}
	return a
}

func (a *App) showWarning(err error) {
	a.mode = modeWarning
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		a.warning = "No active clock-in found for today."
	case errors.Is(err, session.ErrSessionAlreadyOpen):
		a.warning = "You are already clocked in for today."
	default:
		a.warning = err.Error()
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		w := msg.Width - 6
		if w > 72 {
			w = 72
		}
		if w < 20 {
			w = 20
		}
		a.note.SetWidth(w)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case latestLoadedMsg:
		if msg.err != nil {
			a.showWarning(msg.err)
			return a, nil
		}
		a.lastRow, a.hasRow = msg.row, msg.ok
		a.openRow, a.hasOpen = msg.open, msg.hasOpen
		return a, nil

	case toggledMsg:
		a.busy = false
		if msg.err != nil {
			a.showWarning(msg.err)
			return a, nil
		}
		a = a.applyResult(msg.res)
		var cmds []tea.Cmd
		if msg.res.Warning != nil {
			// The state was reconciled with the file; reload what it holds.
			cmds = append(cmds, a.loadLatest())
		}
		if a.note.Focused() {
			cmds = append(cmds, textarea.Blink)
		}
		return a, tea.Batch(cmds...)

	case exitMsg:
		a.busy = false
		if msg.err != nil {
			a.showWarning(msg.err)
			return a, nil
		}
		a = a.applyResult(msg.out.Result)
		if !msg.out.Quit {
			return a, nil
		}
		if a.mode == modeWarning {
			a.quitting = true
			return a, nil
		}
		return a, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			a.showWarning(fmt.Errorf("copy failed: %w", msg.err))
			return a, nil
		}
		a.flash = "copied latest row"
		return a, nil

	case openedMsg:
		if msg.err != nil {
			a.showWarning(msg.err)
			return a, nil
		}
		a.flash = "opened " + a.path
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.note.Focused() {
		var cmd tea.Cmd
		a.note, cmd = a.note.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeWarning:
		a.mode = modeNormal
		a.warning = ""
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil

	case modeConfirmClockOut:
		switch {
		case key.Matches(msg, a.keys.Yes):
			a, cmd := a.exit(session.ExitClockOut)
			return a, cmd
		case key.Matches(msg, a.keys.No):
			a.mode = modeConfirmLeaveOpen
		case key.Matches(msg, a.keys.Cancel):
			a.mode = modeNormal
		}
		return a, nil

	case modeConfirmLeaveOpen:
		switch {
		case key.Matches(msg, a.keys.Yes):
			a, cmd := a.exit(session.ExitLeaveOpen)
			return a, cmd
		case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.No):
			a.mode = modeNormal
		}
		return a, nil
	}

	if a.busy {
		return a, nil
	}

	editing := a.note.Focused()
	switch {
	case key.Matches(msg, a.keys.Interrupt), !editing && key.Matches(msg, a.keys.Quit):
		return a.requestQuit()

	case key.Matches(msg, a.keys.Submit), !editing && key.Matches(msg, a.keys.Toggle):
		a, cmd := a.toggle()
		return a, cmd

	case editing && key.Matches(msg, a.keys.Blur):
		a.note.Blur()
		return a, nil

	case !editing && a.state == domain.ClockedIn && key.Matches(msg, a.keys.Note):
		cmd := a.note.Focus()
		return a, cmd

	case !editing && key.Matches(msg, a.keys.Copy):
		return a, a.copyLatest()

	case !editing && key.Matches(msg, a.keys.Open):
		return a, a.openWorkbook()
	}

	if editing {
		a.flash = ""
		var cmd tea.Cmd
		a.note, cmd = a.note.Update(msg)
		return a, cmd
	}
	return a, nil
}

// requestQuit is the exit hook: leaving while clocked in asks first.
func (a App) requestQuit() (tea.Model, tea.Cmd) {
	if a.state == domain.ClockedIn {
		a.mode = modeConfirmClockOut
		return a, nil
	}
	return a, tea.Quit
}

func (a App) View() string {
	var b strings.Builder

	b.WriteString(centerLine(renderShimmerLogo(wordmark, a.frame), a.width))
	b.WriteString("\n")
	b.WriteString(centerLine(metaStyle.Render(truncStr(a.path, a.width-4)), a.width))
	b.WriteString("\n\n")

	if a.mode != modeNormal {
		b.WriteString(a.dialogView())
		b.WriteString("\n")
		return strings.TrimRight(truncateToHeight(b.String(), a.height), "\n")
	}

	button := buttonStyle.Render(a.state.Action())
	if a.busy {
		button = buttonBusyStyle.Render("working…")
	}
	fmt.Fprintf(&b, "  %s\n\n", button)
	fmt.Fprintf(&b, "  %s", stateStyle(a.state).Render(a.state.String()))
	if a.state == domain.ClockedIn && a.hasOpen {
		b.WriteString(dimStyle.Render(" since " + a.openRow.ClockIn))
	}
	b.WriteString("\n")

	if a.hasRow {
		b.WriteString("  " + a.renderRow(a.lastRow) + "\n")
	}

	if a.state == domain.ClockedIn {
		b.WriteString("\n  " + noteLabelStyle.Render("Note:") + "\n")
		for _, line := range strings.Split(a.note.View(), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	if a.flash != "" {
		b.WriteString("  " + flashStyle.Render(a.flash))
	}

	// Chrome: help bar (1 line)
	body := strings.TrimRight(truncateToHeight(b.String(), a.height-1), "\n")
	return body + "\n" + a.helpBar()
}

func (a App) renderRow(r domain.Row) string {
	out := r.ClockOut
	if r.IsOpen() {
		out = "…"
	}
	line := metaStyle.Render(r.Date) + "  " + normalStyle.Render(r.ClockIn+" → "+out)
	if r.Note != "" {
		line += "  " + dimStyle.Render(truncStr(strings.ReplaceAll(r.Note, "\n", " "), a.width-36))
	}
	return line
}

func (a App) helpBar() string {
	var entries []string
	if a.note.Focused() {
		entries = []string{bindingHelp(a.keys.Submit), bindingHelp(a.keys.Blur), bindingHelp(a.keys.Interrupt)}
	} else {
		entries = []string{bindingHelp(a.keys.Toggle)}
		if a.state == domain.ClockedIn {
			entries = append(entries, bindingHelp(a.keys.Note))
		}
		entries = append(entries, bindingHelp(a.keys.Copy), bindingHelp(a.keys.Open), bindingHelp(a.keys.Quit))
	}
	if a.version != "" {
		entries = append(entries, accentStyle.Render(a.version))
	}
	return " " + strings.Join(entries, "  ")
}
