package persistence

import (
	"context"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
)

// NoopJournal discards every record.
type NoopJournal struct{}

func NewNoopJournal() ports.JournalRepository {
	return NoopJournal{}
}

func (NoopJournal) RecordBatch(ctx context.Context, records []models.OperationRecord) error {
	return nil
}

func (NoopJournal) Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error) {
	return []models.OperationRecord{}, nil
}

func (NoopJournal) Close() error { return nil }

func (NoopJournal) Add(rec models.OperationRecord) {}
