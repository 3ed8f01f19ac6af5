package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/timesheet/pkg/domain"
)

// Shimmer animation for the wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// wordmark is the header text rendered by renderShimmerLogo.
const wordmark = "TIMESHEET"

// renderShimmerLogo renders text as a flowing wave of amber light.
// Deep bronze (#3a2a10) -> bright amber (#f5b942). Letters are spaced apart.
func renderShimmerLogo(text string, frame int) string {
	n := len(text)
	if n == 0 {
		return ""
	}

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(58 + b*(245-58))
		g := clampByte(42 + b*(185-42))
		bl := clampByte(16 + b*(66-16))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)
		out.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color)).
			Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}

	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	// Status line colors per state
	clockedInStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	clockedOutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111118")).
			Background(lipgloss.Color("#d4a844")).
			Bold(true).
			Padding(0, 3)

	buttonBusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Background(lipgloss.Color("#1e1e2a")).
			Padding(0, 3)

	noteLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878"))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Italic(true)

	// Dialogs
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#d4a844")).
			Padding(1, 2)

	warningDialogStyle = dialogStyle.
				BorderForeground(lipgloss.Color("#b45555"))

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d4a844")).
				Bold(true)

	warningTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06060")).
				Bold(true)
)

// stateStyle returns the status-line style for s.
func stateStyle(s domain.State) lipgloss.Style {
	if s == domain.ClockedIn {
		return clockedInStyle
	}
	return clockedOutStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// centerLine left-pads s so it sits in the middle of width columns.
func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
