package services

import (
	"context"
	"fmt"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/asharavesh/Hashing-Techniques/internal/engine/concurrency"
	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type HistoryService struct {
	repo   ports.JournalRepository
	sink   ports.RecordSink
	loader *concurrency.Loader
}

// NewHistoryService journals through sink and reads back from repo. sink may
// be the repository itself wrapped in a write-behind buffer.
func NewHistoryService(repo ports.JournalRepository, sink ports.RecordSink) ports.HistoryService {
	return &HistoryService{
		repo:   repo,
		sink:   sink,
		loader: concurrency.NewLoader(),
	}
}

// OnEvent records a registry event. A reset touches every table and yields one
// record per strategy.
func (s *HistoryService) OnEvent(ev engine.Event) {
	for _, rec := range RecordsFromEvent(ev) {
		s.sink.Add(rec)
	}
}

// Recent returns the newest records for strategy. Identical concurrent
// requests share a single repository read.
func (s *HistoryService) Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error) {
	if _, err := hashtable.ParseStrategy(strategy); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	key := fmt.Sprintf("%s:%d", strategy, limit)
	v, _, err := s.loader.Do(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.repo.Recent(ctx, strategy, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.OperationRecord), nil
}

// RecordsFromEvent converts an engine event to journal records.
func RecordsFromEvent(ev engine.Event) []models.OperationRecord {
	switch ev.Operation {
	case engine.OpReset:
		out := make([]models.OperationRecord, 0, 4)
		for _, st := range hashtable.Strategies() {
			out = append(out, models.OperationRecord{
				Strategy:  st.String(),
				Operation: engine.OpReset,
				Key:       ev.Capacity,
				Success:   true,
				Index:     -1,
				Capacity:  ev.Capacity,
				CreatedAt: ev.At,
			})
		}
		return out

	case engine.OpInsert:
		rec := models.OperationRecord{
			Strategy:   ev.Strategy.String(),
			Operation:  engine.OpInsert,
			Key:        ev.Key,
			Success:    ev.Err == nil,
			Index:      -1,
			Collisions: ev.Stats.CollisionCount,
			Capacity:   ev.Capacity,
			CreatedAt:  ev.At,
		}
		if ev.Insert != nil {
			rec.Index = ev.Insert.Index
			rec.Steps = models.ToStepViews(ev.Insert.Steps)
		}
		if ev.Err != nil {
			rec.Error = ev.Err.Error()
		}
		return []models.OperationRecord{rec}

	case engine.OpSearch:
		rec := models.OperationRecord{
			Strategy:   ev.Strategy.String(),
			Operation:  engine.OpSearch,
			Key:        ev.Key,
			Index:      -1,
			Collisions: ev.Stats.CollisionCount,
			Capacity:   ev.Capacity,
			CreatedAt:  ev.At,
		}
		if ev.Search != nil {
			rec.Success = ev.Search.Found
			rec.Index = ev.Search.Index
			rec.Steps = models.ToStepViews(ev.Search.Steps)
		}
		return []models.OperationRecord{rec}
	}
	return nil
}
