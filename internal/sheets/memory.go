package sheets

import (
	"context"
	"sync"
)

// Memory is an in-memory RowStore used when no spreadsheet is configured
// (development mode) and throughout the test suite.
type Memory struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewMemory creates an empty in-memory row store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithRows creates an in-memory row store pre-seeded with rows.
func NewMemoryWithRows(rows [][]string) *Memory {
	m := &Memory{}
	for _, row := range rows {
		m.rows = append(m.rows, append([]string(nil), row...))
	}
	return m
}

// Rows returns a copy of every stored row.
func (m *Memory) Rows(ctx context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Append adds a row at the end.
func (m *Memory) Append(ctx context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, append([]string(nil), row...))
	return nil
}

// InsertHeader inserts a header row at the top, shifting rows down.
func (m *Memory) InsertHeader(ctx context.Context, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([][]string, 0, len(m.rows)+1)
	rows = append(rows, append([]string(nil), header...))
	rows = append(rows, m.rows...)
	m.rows = rows
	return nil
}

// Len reports the number of stored rows, header included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
