package storage

import (
	"sync"

	"github.com/naveenspark/timesheet/pkg/domain"
)

// Memory is an in-process Store. It is used by tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	rows   []domain.Row
	writes int
}

// NewMemory returns a Memory store seeded with a copy of rows.
func NewMemory(rows ...domain.Row) *Memory {
	return &Memory{rows: append([]domain.Row(nil), rows...)}
}

func (m *Memory) Init() error { return nil }

func (m *Memory) ReadRows() ([]domain.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Row(nil), m.rows...), nil
}

func (m *Memory) WriteRows(rows []domain.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]domain.Row(nil), rows...)
	m.writes++
	return nil
}

// Writes reports how many times WriteRows has been called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
