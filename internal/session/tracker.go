package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/naveenspark/timesheet/internal/storage"
	"github.com/naveenspark/timesheet/pkg/domain"
)

// Result is the outcome of a Toggle.
type Result struct {
	State domain.State
	// Row is the row that was opened or closed. Zero when nothing changed.
	Row domain.Row
	// Warning is set when the toggle was refused and the state reconciled
	// instead (ErrNoActiveSession or ErrSessionAlreadyOpen).
	Warning error
}

// ExitChoice is the user's answer to the exit prompt.
type ExitChoice int

const (
	ExitClockOut ExitChoice = iota
	ExitLeaveOpen
	ExitCancel
)

// ExitOutcome tells the caller whether to terminate.
type ExitOutcome struct {
	Quit   bool
	Result Result
}

// Tracker reads and rewrites the store for every operation. It keeps no
// copy of the rows and no clocked-in flag between calls.
type Tracker struct {
	store  storage.Store
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source.
func WithClock(c clockwork.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker creates a Tracker over store.
func NewTracker(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		clock:  clockwork.NewRealClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Startup initializes the store and derives the current state from it.
func (t *Tracker) Startup() (domain.State, error) {
	if err := t.store.Init(); err != nil {
		return domain.ClockedOut, fmt.Errorf("session.Startup: %w", err)
	}
	return t.State()
}

// State derives the current state from the persisted rows.
func (t *Tracker) State() (domain.State, error) {
	rows, err := t.store.ReadRows()
	if err != nil {
		return domain.ClockedOut, fmt.Errorf("session.State: %w", err)
	}
	today := domain.FormatDate(t.clock.Now())
	return domain.StateOf(HasOpenSessionToday(rows, today)), nil
}

// Current returns today's open row, if there is one.
func (t *Tracker) Current() (domain.Row, bool, error) {
	rows, err := t.store.ReadRows()
	if err != nil {
		return domain.Row{}, false, fmt.Errorf("session.Current: %w", err)
	}
	r, ok := OpenSession(rows, domain.FormatDate(t.clock.Now()))
	return r, ok, nil
}

// Latest returns the last row of the store.
func (t *Tracker) Latest() (domain.Row, bool, error) {
	rows, err := t.store.ReadRows()
	if err != nil {
		return domain.Row{}, false, fmt.Errorf("session.Latest: %w", err)
	}
	if len(rows) == 0 {
		return domain.Row{}, false, nil
	}
	return rows[len(rows)-1], true, nil
}

// Start opens a session now and persists it.
func (t *Tracker) Start(note string) (domain.Row, error) {
	rows, err := t.store.ReadRows()
	if err != nil {
		return domain.Row{}, fmt.Errorf("session.Start: %w", err)
	}
	now := t.clock.Now()
	updated, err := StartSession(rows, now, note)
	if err != nil {
		return domain.Row{}, fmt.Errorf("session.Start: %w", err)
	}
	if err := t.store.WriteRows(updated); err != nil {
		return domain.Row{}, fmt.Errorf("session.Start: %w", err)
	}
	row := updated[len(updated)-1]
	t.logger.Info("clocked in", "date", row.Date, "time", row.ClockIn)
	return row, nil
}

// End closes today's open session now and persists it. Nothing is written
// when there is no open session.
func (t *Tracker) End(note string) (domain.Row, error) {
	rows, err := t.store.ReadRows()
	if err != nil {
		return domain.Row{}, fmt.Errorf("session.End: %w", err)
	}
	now := t.clock.Now()
	today := domain.FormatDate(now)
	i := lastOpenIndex(rows, today)
	updated, err := EndSession(rows, now, note)
	if err != nil {
		return domain.Row{}, fmt.Errorf("session.End: %w", err)
	}
	if err := t.store.WriteRows(updated); err != nil {
		return domain.Row{}, fmt.Errorf("session.End: %w", err)
	}
	row := updated[i]
	t.logger.Info("clocked out", "date", row.Date, "clock_in", row.ClockIn, "time", row.ClockOut)
	return row, nil
}

// Toggle flips state by opening or closing a session. A refused transition
// is reported through Result.Warning and reconciles the state with the
// store; storage failures return state unchanged with the error.
func (t *Tracker) Toggle(state domain.State, note string) (Result, error) {
	if state == domain.ClockedIn {
		row, err := t.End(note)
		switch {
		case errors.Is(err, ErrNoActiveSession):
			t.logger.Warn("clock out refused", "error", err)
			return Result{State: domain.ClockedIn, Warning: ErrNoActiveSession}, nil
		case err != nil:
			return Result{State: state}, err
		}
		return Result{State: domain.ClockedOut, Row: row}, nil
	}

	row, err := t.Start(note)
	switch {
	case errors.Is(err, ErrSessionAlreadyOpen):
		t.logger.Warn("clock in refused", "error", err)
		return Result{State: domain.ClockedIn, Warning: ErrSessionAlreadyOpen}, nil
	case err != nil:
		return Result{State: state}, err
	}
	return Result{State: domain.ClockedIn, Row: row}, nil
}

// Exit resolves the exit prompt. A clocked-out tracker always quits.
func (t *Tracker) Exit(state domain.State, choice ExitChoice, note string) (ExitOutcome, error) {
	if state == domain.ClockedOut {
		return ExitOutcome{Quit: true, Result: Result{State: state}}, nil
	}
	switch choice {
	case ExitClockOut:
		res, err := t.Toggle(state, note)
		if err != nil {
			return ExitOutcome{Result: res}, err
		}
		return ExitOutcome{Quit: true, Result: res}, nil
	case ExitLeaveOpen:
		t.logger.Info("exiting with session open")
		return ExitOutcome{Quit: true, Result: Result{State: state}}, nil
	default:
		return ExitOutcome{Result: Result{State: state}}, nil
	}
}
