package session

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/timesheet/internal/storage"
	"github.com/naveenspark/timesheet/pkg/domain"
)

var morning = time.Date(2025, 6, 30, 9, 0, 0, 0, time.Local)

func newTestTracker(t *testing.T, rows ...domain.Row) (*Tracker, *storage.Memory, *clockwork.FakeClock) {
	t.Helper()
	store := storage.NewMemory(rows...)
	clock := clockwork.NewFakeClockAt(morning)
	return NewTracker(store, WithClock(clock)), store, clock
}

// failingStore fails every call after Init.
type failingStore struct{ err error }

func (f failingStore) Init() error { return nil }

func (f failingStore) ReadRows() ([]domain.Row, error) { return nil, f.err }

func (f failingStore) WriteRows([]domain.Row) error { return f.err }

func TestTrackerStartupDerivesState(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	state, err := tr.Startup()
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedOut, state)

	tr, _, _ = newTestTracker(t, domain.Row{Date: "2025-06-30", ClockIn: "08:00:00"})
	state, err = tr.Startup()
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedIn, state)
}

func TestTrackerStartupIgnoresYesterday(t *testing.T) {
	tr, _, _ := newTestTracker(t, domain.Row{Date: "2025-06-29", ClockIn: "08:00:00"})
	state, err := tr.Startup()
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedOut, state)
}

func TestTrackerToggleRoundTrip(t *testing.T) {
	tr, store, clock := newTestTracker(t)

	res, err := tr.Toggle(domain.ClockedOut, "")
	require.NoError(t, err)
	require.NoError(t, res.Warning)
	assert.Equal(t, domain.ClockedIn, res.State)
	assert.Equal(t, "09:00:00", res.Row.ClockIn)

	clock.Advance(8*time.Hour + 15*time.Minute)

	res, err = tr.Toggle(res.State, "wrapped up")
	require.NoError(t, err)
	require.NoError(t, res.Warning)
	assert.Equal(t, domain.ClockedOut, res.State)

	rows, err := store.ReadRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Row{
		Date:     "2025-06-30",
		ClockIn:  "09:00:00",
		ClockOut: "17:15:00",
		Note:     "wrapped up",
	}, rows[0])
	assert.Equal(t, rows[0], res.Row)
	assert.Equal(t, 2, store.Writes())

	state, err := tr.State()
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedOut, state)
}

func TestTrackerToggleNoActiveSessionKeepsState(t *testing.T) {
	closed := domain.Row{Date: "2025-06-30", ClockIn: "07:00:00", ClockOut: "08:00:00"}
	tr, store, _ := newTestTracker(t, closed)

	res, err := tr.Toggle(domain.ClockedIn, "note")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Warning, ErrNoActiveSession)
	assert.Equal(t, domain.ClockedIn, res.State)
	assert.Equal(t, 0, store.Writes())

	rows, err := store.ReadRows()
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{closed}, rows)
}

func TestTrackerToggleAlreadyOpenReconciles(t *testing.T) {
	open := domain.Row{Date: "2025-06-30", ClockIn: "08:00:00"}
	tr, store, _ := newTestTracker(t, open)

	res, err := tr.Toggle(domain.ClockedOut, "")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Warning, ErrSessionAlreadyOpen)
	assert.Equal(t, domain.ClockedIn, res.State)
	assert.Equal(t, 0, store.Writes())
}

func TestTrackerMultipleSessionsPerDay(t *testing.T) {
	tr, store, clock := newTestTracker(t)

	state := domain.ClockedOut
	for i := 0; i < 3; i++ {
		res, err := tr.Toggle(state, "")
		require.NoError(t, err)
		state = res.State
		clock.Advance(time.Hour)
	}
	assert.Equal(t, domain.ClockedIn, state)

	rows, err := store.ReadRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10:00:00", rows[0].ClockOut)
	assert.True(t, rows[1].IsOpen())
	assert.Equal(t, "11:00:00", rows[1].ClockIn)
}

func TestTrackerStorageErrorKeepsState(t *testing.T) {
	boom := errors.New("disk on fire")
	tr := NewTracker(failingStore{err: boom})

	res, err := tr.Toggle(domain.ClockedIn, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.ClockedIn, res.State)

	res, err = tr.Toggle(domain.ClockedOut, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.ClockedOut, res.State)

	_, err = tr.Startup()
	assert.ErrorIs(t, err, boom)
}

func TestTrackerExit(t *testing.T) {
	t.Run("clocked out quits", func(t *testing.T) {
		tr, store, _ := newTestTracker(t)
		out, err := tr.Exit(domain.ClockedOut, ExitCancel, "")
		require.NoError(t, err)
		assert.True(t, out.Quit)
		assert.Equal(t, 0, store.Writes())
	})

	t.Run("clock out then quit", func(t *testing.T) {
		tr, store, _ := newTestTracker(t, domain.Row{Date: "2025-06-30", ClockIn: "08:00:00"})
		out, err := tr.Exit(domain.ClockedIn, ExitClockOut, "bye")
		require.NoError(t, err)
		assert.True(t, out.Quit)
		assert.Equal(t, domain.ClockedOut, out.Result.State)

		rows, err := store.ReadRows()
		require.NoError(t, err)
		assert.Equal(t, "09:00:00", rows[0].ClockOut)
		assert.Equal(t, "bye", rows[0].Note)
	})

	t.Run("leave open", func(t *testing.T) {
		tr, store, _ := newTestTracker(t, domain.Row{Date: "2025-06-30", ClockIn: "08:00:00"})
		out, err := tr.Exit(domain.ClockedIn, ExitLeaveOpen, "")
		require.NoError(t, err)
		assert.True(t, out.Quit)
		assert.Equal(t, 0, store.Writes())
	})

	t.Run("cancel", func(t *testing.T) {
		tr, _, _ := newTestTracker(t, domain.Row{Date: "2025-06-30", ClockIn: "08:00:00"})
		out, err := tr.Exit(domain.ClockedIn, ExitCancel, "")
		require.NoError(t, err)
		assert.False(t, out.Quit)
		assert.Equal(t, domain.ClockedIn, out.Result.State)
	})

	t.Run("storage failure stays", func(t *testing.T) {
		tr := NewTracker(failingStore{err: errors.New("locked")})
		out, err := tr.Exit(domain.ClockedIn, ExitClockOut, "")
		assert.Error(t, err)
		assert.False(t, out.Quit)
	})
}

func TestTrackerCurrentAndLatest(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, ok, err := tr.Latest()
	require.NoError(t, err)
	assert.False(t, ok)

	tr, _, _ = newTestTracker(t,
		domain.Row{Date: "2025-06-30", ClockIn: "07:00:00"},
		domain.Row{Date: "2025-06-30", ClockIn: "05:00:00", ClockOut: "06:00:00"},
	)
	cur, ok, err := tr.Current()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "07:00:00", cur.ClockIn)

	last, ok, err := tr.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "05:00:00", last.ClockIn)
}

func TestTrackerLogs(t *testing.T) {
	var buf bytes.Buffer
	store := storage.NewMemory()
	tr := NewTracker(store,
		WithClock(clockwork.NewFakeClockAt(morning)),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	_, err := tr.Toggle(domain.ClockedOut, "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "clocked in")
	assert.Contains(t, buf.String(), "date=2025-06-30")
}

func TestTrackerWithXLSXStore(t *testing.T) {
	store := storage.NewXLSX(t.TempDir()+"/timesheet.xlsx", "")
	clock := clockwork.NewFakeClockAt(morning)
	tr := NewTracker(store, WithClock(clock))

	state, err := tr.Startup()
	require.NoError(t, err)
	require.Equal(t, domain.ClockedOut, state)

	res, err := tr.Toggle(state, "")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)

	// A fresh tracker over the same file must see the open session.
	state, err = NewTracker(store, WithClock(clock)).Startup()
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedIn, state)

	res, err = tr.Toggle(res.State, "standup")
	require.NoError(t, err)
	assert.Equal(t, domain.ClockedOut, res.State)

	rows, err := store.ReadRows()
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{Date: "2025-06-30", ClockIn: "09:00:00", ClockOut: "09:30:00", Note: "standup"}}, rows)
}
