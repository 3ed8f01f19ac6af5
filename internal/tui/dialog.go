package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeNormal mode = iota
	modeWarning
	// Exit prompt, first question: clock out before leaving?
	modeConfirmClockOut
	// Exit prompt, second question: leave the session open and exit?
	modeConfirmLeaveOpen
)

const (
	promptClockOut  = "You're still clocked in. Do you want to clock out before exiting?"
	promptLeaveOpen = "This session will remain open in the timesheet. Exit anyway?"
)

// renderDialog draws a bordered box with a title, a wrapped message and a
// line of key hints.
func renderDialog(style lipgloss.Style, title, message, hints string, width int) string {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	body := lipgloss.NewStyle().Width(w).Render(message)
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(hints)
	return style.Render(b.String())
}

func (a App) dialogView() string {
	switch a.mode {
	case modeWarning:
		return renderDialog(warningDialogStyle, warningTitleStyle.Render("Warning"), a.warning,
			helpEntry("any key", "dismiss"), a.width)
	case modeConfirmClockOut:
		return renderDialog(dialogStyle, dialogTitleStyle.Render("Exit"), promptClockOut,
			bindingHelp(a.keys.Yes)+"  "+bindingHelp(a.keys.No)+"  "+bindingHelp(a.keys.Cancel), a.width)
	case modeConfirmLeaveOpen:
		return renderDialog(dialogStyle, dialogTitleStyle.Render("Exit"), promptLeaveOpen,
			helpEntry("enter", "ok")+"  "+bindingHelp(a.keys.Cancel), a.width)
	}
	return ""
}
