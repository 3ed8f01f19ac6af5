// Package session implements the clock-in/clock-out state machine.
//
// The clocked-in flag is never stored: it is derived from the persisted rows
// at startup and threaded explicitly through Toggle afterwards.
package session

import (
	"errors"
	"time"

	"github.com/naveenspark/timesheet/pkg/domain"
)

var (
	// ErrNoActiveSession is returned when clocking out finds no open row for today.
	ErrNoActiveSession = errors.New("no active clock-in found for today")

	// ErrSessionAlreadyOpen is returned when clocking in while today's session is still open.
	ErrSessionAlreadyOpen = errors.New("already clocked in for today")
)

// HasOpenSessionToday reports whether any row dated today has no clock-out.
// Rows are scanned from the end, but every row is considered.
func HasOpenSessionToday(rows []domain.Row, today string) bool {
	return lastOpenIndex(rows, today) >= 0
}

// StartSession returns rows with a new open row for now appended.
// It refuses to open a second session for the same day.
func StartSession(rows []domain.Row, now time.Time, note string) ([]domain.Row, error) {
	if HasOpenSessionToday(rows, domain.FormatDate(now)) {
		return rows, ErrSessionAlreadyOpen
	}
	out := make([]domain.Row, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, domain.Row{
		Date:    domain.FormatDate(now),
		ClockIn: domain.FormatTime(now),
		Note:    note,
	}), nil
}

// EndSession closes the most recent open row dated now. A non-empty note
// replaces the row's note; an empty one leaves it alone. The input slice is
// never modified.
func EndSession(rows []domain.Row, now time.Time, note string) ([]domain.Row, error) {
	i := lastOpenIndex(rows, domain.FormatDate(now))
	if i < 0 {
		return rows, ErrNoActiveSession
	}
	out := make([]domain.Row, len(rows))
	copy(out, rows)
	out[i].ClockOut = domain.FormatTime(now)
	if note != "" {
		out[i].Note = note
	}
	return out, nil
}

// OpenSession returns the most recent open row dated today, if any.
func OpenSession(rows []domain.Row, today string) (domain.Row, bool) {
	i := lastOpenIndex(rows, today)
	if i < 0 {
		return domain.Row{}, false
	}
	return rows[i], true
}

func lastOpenIndex(rows []domain.Row, today string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Date == today && rows[i].IsOpen() {
			return i
		}
	}
	return -1
}
