package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/timesheet/internal/session"
	"github.com/naveenspark/timesheet/pkg/domain"
)

// ANSI color constants for one-shot command output (runs outside the TUI).
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiAmber = "\033[38;2;245;158;11m"  // #f59e0b
	ansiGreen = "\033[38;2;52;212;116m"  // #34d474
	ansiRed   = "\033[38;2;248;113;113m" // #f87171
	ansiSlate = "\033[38;2;136;144;160m" // #8890a0
)

// printState prints the display state and, when known, the row behind it.
func printState(w io.Writer, s domain.State, row domain.Row) {
	color := ansiSlate
	if s == domain.ClockedIn {
		color = ansiGreen
	}
	fmt.Fprintf(w, "  %s%s%s%s", color, ansiBold, s, ansiReset)
	switch {
	case s == domain.ClockedIn && row.ClockIn != "":
		fmt.Fprintf(w, "  %ssince %s%s", ansiSlate, row.ClockIn, ansiReset)
	case s == domain.ClockedOut && row.ClockOut != "":
		fmt.Fprintf(w, "  %s%s → %s%s", ansiSlate, row.ClockIn, row.ClockOut, ansiReset)
	}
	fmt.Fprintln(w)
	if row.Note != "" {
		fmt.Fprintf(w, "  %s│%s %s\n", ansiAmber, ansiReset, row.Note)
	}
}

func printWarning(w io.Writer, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		msg = "No active clock-in found for today."
	case errors.Is(err, session.ErrSessionAlreadyOpen):
		msg = "You are already clocked in for today."
	}
	fmt.Fprintf(w, "  %s%s!%s %s\n", ansiRed, ansiBold, ansiReset, msg)
}

func printInfo(w io.Writer, label, detail string) {
	fmt.Fprintf(w, "  %s%s%s %s\n", ansiAmber, label, ansiReset, detail)
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true).
		Render("T I M E S H E E T")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"timesheet", "Open the clock (interactive TUI)"},
		{"timesheet status", "Show whether you are clocked in"},
		{"timesheet toggle [note]", "Clock in or out"},
		{"timesheet in [note]", "Clock in"},
		{"timesheet out [note]", "Clock out, optionally replacing the note"},
		{"timesheet init", "Create the workbook if it is missing"},
		{"timesheet open", "Open the workbook in your spreadsheet app"},
		{"timesheet --version", "Show version"},
		{"timesheet help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  Commands:\n", title)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  %s\n\n", descStyle.Render("Config: $TIMESHEET_CONFIG or ~/.config/timesheet/config.toml"))
}
