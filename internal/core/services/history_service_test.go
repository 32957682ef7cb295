package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSink struct {
	mu   sync.Mutex
	recs []models.OperationRecord
}

func (s *sliceSink) Add(rec models.OperationRecord) {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
}

type stubRepo struct {
	calls    int
	strategy string
	limit    int
	err      error
}

func (r *stubRepo) RecordBatch(ctx context.Context, records []models.OperationRecord) error {
	return nil
}

func (r *stubRepo) Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error) {
	r.calls++
	r.strategy, r.limit = strategy, limit
	if r.err != nil {
		return nil, r.err
	}
	return []models.OperationRecord{{Strategy: strategy, Operation: engine.OpInsert}}, nil
}

func (r *stubRepo) Close() error { return nil }

func TestHistoryRecordsRegistryOperations(t *testing.T) {
	reg, err := engine.NewRegistry(10, 0)
	require.NoError(t, err)

	sink := &sliceSink{}
	reg.Subscribe(NewHistoryService(&stubRepo{}, sink))

	_, err = reg.Insert("linearProbing", 3)
	require.NoError(t, err)
	_, err = reg.Insert("linearProbing", 13)
	require.NoError(t, err)
	_, err = reg.Search("linearProbing", 13)
	require.NoError(t, err)
	require.NoError(t, reg.Reset(5))

	require.Len(t, sink.recs, 7)

	second := sink.recs[1]
	assert.Equal(t, "linearProbing", second.Strategy)
	assert.Equal(t, engine.OpInsert, second.Operation)
	assert.True(t, second.Success)
	assert.Equal(t, 4, second.Index)
	assert.Equal(t, 1, second.Collisions)
	assert.Equal(t, 10, second.Capacity)
	assert.NotEmpty(t, second.Steps)

	search := sink.recs[2]
	assert.Equal(t, engine.OpSearch, search.Operation)
	assert.True(t, search.Success)
	assert.Equal(t, 4, search.Index)

	for i, st := range hashtable.Strategies() {
		rec := sink.recs[3+i]
		assert.Equal(t, st.String(), rec.Strategy)
		assert.Equal(t, engine.OpReset, rec.Operation)
		assert.Equal(t, 5, rec.Capacity)
	}
}

func TestRecordsFromFailedInsert(t *testing.T) {
	res := hashtable.InsertResult{Index: -1, Steps: []hashtable.Step{{Index: 0, Action: hashtable.ActionHash}}}
	recs := RecordsFromEvent(engine.Event{
		Operation: engine.OpInsert,
		Strategy:  hashtable.QuadraticProbing,
		Key:       10,
		Capacity:  10,
		Insert:    &res,
		Err:       hashtable.ErrTableFull,
		At:        time.Now(),
	})

	require.Len(t, recs, 1)
	assert.False(t, recs[0].Success)
	assert.Equal(t, -1, recs[0].Index)
	assert.Equal(t, hashtable.ErrTableFull.Error(), recs[0].Error)
	assert.Len(t, recs[0].Steps, 1)
}

func TestHistoryRecent(t *testing.T) {
	repo := &stubRepo{}
	svc := NewHistoryService(repo, &sliceSink{})

	recs, err := svc.Recent(context.Background(), "doubleHashing", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "doubleHashing", repo.strategy)
	assert.Equal(t, DefaultHistoryLimit, repo.limit)

	_, err = svc.Recent(context.Background(), "doubleHashing", 100000)
	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, repo.limit)
}

func TestHistoryRecentRejectsUnknownStrategy(t *testing.T) {
	repo := &stubRepo{}
	svc := NewHistoryService(repo, &sliceSink{})

	_, err := svc.Recent(context.Background(), "cuckoo", 10)
	assert.ErrorIs(t, err, hashtable.ErrInvalidStrategy)
	assert.Equal(t, 0, repo.calls)
}

func TestHistoryRecentPropagatesRepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewHistoryService(&stubRepo{err: boom}, &sliceSink{})

	_, err := svc.Recent(context.Background(), "chaining", 10)
	assert.ErrorIs(t, err, boom)
}
