package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/timesheet/internal/config"
	"github.com/naveenspark/timesheet/internal/launch"
	"github.com/naveenspark/timesheet/internal/logging"
	"github.com/naveenspark/timesheet/internal/session"
	"github.com/naveenspark/timesheet/internal/storage"
	"github.com/naveenspark/timesheet/internal/tui"
	"github.com/naveenspark/timesheet/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is everything a command needs, built from the loaded config.
type env struct {
	store   *storage.XLSX
	tracker *session.Tracker
	closer  io.Closer
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	store := storage.NewXLSX(cfg.File, cfg.Sheet)
	logger = logger.With("file", store.Path())
	return &env{
		store:   store,
		tracker: session.NewTracker(store, session.WithLogger(logger)),
		closer:  closer,
	}, nil
}

func run(args []string, w io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	note := ""
	if len(args) > 1 {
		note = strings.Join(args[1:], " ")
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(w, "timesheet "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(w)
		return nil
	case "", "status", "toggle", "in", "out", "init", "open":
	default:
		return fmt.Errorf("unknown command %q (try 'timesheet help')", cmd)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.closer.Close()

	switch cmd {
	case "init":
		return runInit(w, e.store)
	case "open":
		if err := e.store.Init(); err != nil {
			return err
		}
		return launch.Open(e.store.Path())
	case "status":
		return runStatus(w, e.tracker)
	case "toggle":
		return runToggle(w, e.tracker, note)
	case "in":
		return runIn(w, e.tracker, note)
	case "out":
		return runOut(w, e.tracker, note)
	}
	return runTUI(e)
}

func runTUI(e *env) error {
	state, err := e.tracker.Startup()
	if err != nil {
		return err
	}
	app := tui.NewApp(e.tracker, state, e.store.Path(), version)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runInit(w io.Writer, store *storage.XLSX) error {
	_, statErr := os.Stat(store.Path())
	if err := store.Init(); err != nil {
		return err
	}
	if statErr == nil {
		printInfo(w, "already exists", store.Path())
		return nil
	}
	printInfo(w, "created", store.Path())
	return nil
}

func runStatus(w io.Writer, t *session.Tracker) error {
	if _, err := t.Startup(); err != nil {
		return err
	}
	row, open, err := t.Current()
	if err != nil {
		return err
	}
	printState(w, domain.StateOf(open), row)
	return nil
}

func runToggle(w io.Writer, t *session.Tracker, note string) error {
	state, err := t.Startup()
	if err != nil {
		return err
	}
	res, err := t.Toggle(state, note)
	if err != nil {
		return err
	}
	if res.Warning != nil {
		printWarning(w, res.Warning)
	}
	printState(w, res.State, res.Row)
	return nil
}

func runIn(w io.Writer, t *session.Tracker, note string) error {
	if _, err := t.Startup(); err != nil {
		return err
	}
	row, err := t.Start(note)
	if errors.Is(err, session.ErrSessionAlreadyOpen) {
		printWarning(w, err)
		current, _, cerr := t.Current()
		if cerr != nil {
			return cerr
		}
		printState(w, domain.ClockedIn, current)
		return nil
	}
	if err != nil {
		return err
	}
	printState(w, domain.ClockedIn, row)
	return nil
}

func runOut(w io.Writer, t *session.Tracker, note string) error {
	if _, err := t.Startup(); err != nil {
		return err
	}
	row, err := t.End(note)
	if errors.Is(err, session.ErrNoActiveSession) {
		printWarning(w, err)
		printState(w, domain.ClockedOut, domain.Row{})
		return nil
	}
	if err != nil {
		return err
	}
	printState(w, domain.ClockedOut, row)
	return nil
}
