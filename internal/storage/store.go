// Package storage persists timesheet rows.
//
// A Store is read in full and rewritten in full on every mutation. Only one
// process is expected to touch the backing file at a time.
package storage

import "github.com/naveenspark/timesheet/pkg/domain"

// Store is the persistence collaborator of the session tracker.
type Store interface {
	// Init prepares the backing store, creating it with a header if absent.
	Init() error
	// ReadRows returns every data row in insertion order, header excluded.
	ReadRows() ([]domain.Row, error)
	// WriteRows replaces the persisted rows with rows.
	WriteRows(rows []domain.Row) error
}
