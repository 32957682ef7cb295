package ports

import (
	"context"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
)

// JournalRepository stores operation records. It is an audit trail only;
// tables are never rebuilt from it.
type JournalRepository interface {
	RecordBatch(ctx context.Context, records []models.OperationRecord) error
	// Recent returns up to limit records for strategy, newest first.
	Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error)
	Close() error
}

// RecordSink accepts records for asynchronous storage.
type RecordSink interface {
	Add(rec models.OperationRecord)
}

// HistoryService turns registry events into journal records and serves
// recent history.
type HistoryService interface {
	engine.Listener
	Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error)
}
