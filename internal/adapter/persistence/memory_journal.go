package persistence

import (
	"context"
	"sync"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
)

const DefaultMemoryJournalSize = 1000

// MemoryJournal keeps the last size records per strategy in ring buffers.
type MemoryJournal struct {
	mu     sync.RWMutex
	size   int
	nextID int64
	rings  map[string]*ring
}

type ring struct {
	buf  []models.OperationRecord
	head int
	n    int
}

func NewMemoryJournal(size int) *MemoryJournal {
	if size <= 0 {
		size = DefaultMemoryJournalSize
	}
	return &MemoryJournal{size: size, rings: make(map[string]*ring)}
}

func (m *MemoryJournal) RecordBatch(ctx context.Context, records []models.OperationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		m.nextID++
		rec.ID = m.nextID

		r, ok := m.rings[rec.Strategy]
		if !ok {
			r = &ring{buf: make([]models.OperationRecord, m.size)}
			m.rings[rec.Strategy] = r
		}
		r.buf[r.head] = rec
		r.head = (r.head + 1) % len(r.buf)
		if r.n < len(r.buf) {
			r.n++
		}
	}
	return nil
}

// Add records rec synchronously, so the memory journal can serve as its own
// sink.
func (m *MemoryJournal) Add(rec models.OperationRecord) {
	m.RecordBatch(context.Background(), []models.OperationRecord{rec})
}

// Recent returns newest first.
func (m *MemoryJournal) Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rings[strategy]
	if !ok {
		return []models.OperationRecord{}, nil
	}
	if limit <= 0 || limit > r.n {
		limit = r.n
	}

	out := make([]models.OperationRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.head - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out, nil
}

func (m *MemoryJournal) Close() error { return nil }
