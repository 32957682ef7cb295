// File: internal/persistence/write_behind.go
package persistence

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("persistence")

// maxFlushAttempts is how many times a batch is retried whole before its
// records are written one by one and the rejected ones dropped.
const maxFlushAttempts = 3

// WriteBehindBuffer collects journal records and writes them to a repository
// in batches, either when the buffer fills or on every flush interval.
type WriteBehindBuffer struct {
	mu            sync.Mutex
	flushMu       sync.Mutex
	buffer        []models.OperationRecord
	maxSize       int
	flushInterval time.Duration
	repo          ports.JournalRepository
	attempts      int // guarded by flushMu

	// Stats
	totalWrites   uint64
	totalFlushes  uint64
	failedFlushes uint64
	dropped       uint64
	lastFlushTime int64
}

func NewWriteBehindBuffer(maxSize int, flushInterval time.Duration, repo ports.JournalRepository) *WriteBehindBuffer {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}

	return &WriteBehindBuffer{
		buffer:        make([]models.OperationRecord, 0, maxSize),
		maxSize:       maxSize,
		flushInterval: flushInterval,
		repo:          repo,
	}
}

// Add queues a record. A full buffer triggers an asynchronous flush.
func (w *WriteBehindBuffer) Add(rec models.OperationRecord) {
	w.mu.Lock()
	// failed flushes re-queue their batch; cap growth at twice the batch size
	if len(w.buffer) >= 2*w.maxSize {
		w.mu.Unlock()
		atomic.AddUint64(&w.dropped, 1)
		return
	}
	w.buffer = append(w.buffer, rec)
	full := len(w.buffer) >= w.maxSize
	w.mu.Unlock()

	atomic.AddUint64(&w.totalWrites, 1)
	if full {
		go w.flush(context.Background())
	}
}

// Start runs the periodic flush until ctx is done, then flushes once more.
func (w *WriteBehindBuffer) Start(ctx context.Context) {
	ticker := time.NewTicker(w.flushInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("[WRITE-BEHIND] Stopping, performing final flush...")
				w.flush(context.Background())
				return
			case <-ticker.C:
				w.flush(ctx)
			}
		}
	}()

	log.Infof("[WRITE-BEHIND] Started: maxSize=%d, flushInterval=%v", w.maxSize, w.flushInterval)
}

func (w *WriteBehindBuffer) flush(ctx context.Context) error {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}

	ops := make([]models.OperationRecord, len(w.buffer))
	copy(ops, w.buffer)
	w.buffer = w.buffer[:0]
	w.mu.Unlock()

	start := time.Now()
	if err := w.repo.RecordBatch(ctx, ops); err != nil {
		log.Errorf("[WRITE-BEHIND] Flush failed: %v", err)
		atomic.AddUint64(&w.failedFlushes, 1)

		w.attempts++
		if w.attempts >= maxFlushAttempts {
			w.attempts = 0
			return w.salvage(ctx, ops)
		}

		w.mu.Lock()
		w.buffer = append(ops, w.buffer...)
		w.mu.Unlock()
		return err
	}
	w.attempts = 0

	atomic.AddUint64(&w.totalFlushes, 1)
	atomic.StoreInt64(&w.lastFlushTime, time.Now().Unix())
	log.Debugf("[WRITE-BEHIND] Flushed %d records in %v", len(ops), time.Since(start))
	return nil
}

// salvage writes ops one record at a time so a single record the repository
// rejects cannot hold back the rest. Rejected records are dropped.
func (w *WriteBehindBuffer) salvage(ctx context.Context, ops []models.OperationRecord) error {
	var dropped int
	for _, rec := range ops {
		if err := w.repo.RecordBatch(ctx, []models.OperationRecord{rec}); err != nil {
			log.Errorf("[WRITE-BEHIND] Dropping %s %s key=%d: %v", rec.Strategy, rec.Operation, rec.Key, err)
			dropped++
		}
	}
	atomic.AddUint64(&w.dropped, uint64(dropped))
	atomic.StoreInt64(&w.lastFlushTime, time.Now().Unix())

	if dropped > 0 {
		return fmt.Errorf("dropped %d of %d records after %d failed flushes", dropped, len(ops), maxFlushAttempts)
	}
	atomic.AddUint64(&w.totalFlushes, 1)
	return nil
}

// FlushNow forces an immediate synchronous flush.
func (w *WriteBehindBuffer) FlushNow(ctx context.Context) error {
	return w.flush(ctx)
}

type WriteBehindStats struct {
	TotalWrites   uint64
	TotalFlushes  uint64
	FailedFlushes uint64
	Dropped       uint64
	BufferSize    int
	LastFlushTime time.Time
}

func (w *WriteBehindBuffer) Stats() WriteBehindStats {
	w.mu.Lock()
	bufferSize := len(w.buffer)
	w.mu.Unlock()

	return WriteBehindStats{
		TotalWrites:   atomic.LoadUint64(&w.totalWrites),
		TotalFlushes:  atomic.LoadUint64(&w.totalFlushes),
		FailedFlushes: atomic.LoadUint64(&w.failedFlushes),
		Dropped:       atomic.LoadUint64(&w.dropped),
		BufferSize:    bufferSize,
		LastFlushTime: time.Unix(atomic.LoadInt64(&w.lastFlushTime), 0),
	}
}

// Close flushes pending records and closes the repository.
func (w *WriteBehindBuffer) Close() error {
	err := w.flush(context.Background())
	if cerr := w.repo.Close(); cerr != nil {
		return cerr
	}
	return err
}
