package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asharavesh/Hashing-Techniques/internal/engine/metrics"
	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("engine")

const (
	DefaultCapacity    = 10
	DefaultMaxCapacity = 10000
)

var ErrCapacityTooLarge = errors.New("capacity exceeds configured maximum")

// entry serializes access to a single table.
type entry struct {
	mu    sync.Mutex
	table *hashtable.Table
}

func (e *entry) run(fn func(t *hashtable.Table)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.table)
}

// Registry holds exactly one table per strategy. Operations on different
// strategies run in parallel; operations on the same strategy are serialized.
// Reset swaps every table at once under the write lock.
type Registry struct {
	mu          sync.RWMutex
	tables      map[hashtable.Strategy]*entry
	capacity    int
	maxCapacity int
	listeners   []Listener
}

// NewRegistry builds the four tables with the given capacity. maxCapacity <= 0
// selects DefaultMaxCapacity.
func NewRegistry(capacity, maxCapacity int) (*Registry, error) {
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxCapacity
	}
	r := &Registry{maxCapacity: maxCapacity}
	tables, err := r.build(capacity)
	if err != nil {
		return nil, err
	}
	r.tables = tables
	r.capacity = capacity
	metrics.ObserveReset(capacity)
	return r, nil
}

// Subscribe registers a listener for every subsequent operation.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

func (r *Registry) build(capacity int) (map[hashtable.Strategy]*entry, error) {
	if capacity > r.maxCapacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrCapacityTooLarge, capacity, r.maxCapacity)
	}
	tables := make(map[hashtable.Strategy]*entry, 4)
	for _, s := range hashtable.Strategies() {
		t, err := hashtable.New(capacity, s)
		if err != nil {
			return nil, err
		}
		tables[s] = &entry{table: t}
	}
	return tables, nil
}

// Reset discards all four tables and recreates them with capacity.
func (r *Registry) Reset(capacity int) error {
	tables, err := r.build(capacity)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tables = tables
	r.capacity = capacity
	listeners := r.listeners
	r.mu.Unlock()

	metrics.ObserveReset(capacity)
	for _, s := range hashtable.Strategies() {
		metrics.SetLoadFactor(s.String(), 0)
	}
	log.Infof("[RESET] All tables recreated: capacity=%d", capacity)

	notify(listeners, Event{Operation: OpReset, Capacity: capacity, At: time.Now()})
	return nil
}

// Capacity returns the capacity shared by all tables.
func (r *Registry) Capacity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity
}

// with runs fn holding the table lock for the strategy called name.
func (r *Registry) with(name string, fn func(t *hashtable.Table)) ([]Listener, error) {
	s, err := hashtable.ParseStrategy(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	r.tables[s].run(fn)
	return r.listeners, nil
}

// Insert adds key to the table for the named strategy. A full table returns
// the partial trace together with an error wrapping hashtable.ErrTableFull.
func (r *Registry) Insert(name string, key int) (hashtable.InsertResult, error) {
	var (
		res       hashtable.InsertResult
		insertErr error
		before    int
		stats     hashtable.Stats
	)
	listeners, err := r.with(name, func(t *hashtable.Table) {
		before = t.Stats().CollisionCount
		res, insertErr = t.Insert(key)
		stats = t.Stats()
	})
	if err != nil {
		return hashtable.InsertResult{}, err
	}

	label := stats.Strategy.String()
	metrics.ObserveInsert(label, insertErr == nil, stats.CollisionCount-before, len(res.Steps))
	metrics.SetLoadFactor(label, stats.LoadFactor.Float())

	if insertErr != nil {
		log.Warningf("[INSERT] %s key=%d failed: %v", label, key, insertErr)
	} else {
		log.Debugf("[INSERT] %s key=%d index=%d collisions=%d", label, key, res.Index, res.Collisions)
	}

	notify(listeners, Event{
		Operation: OpInsert,
		Strategy:  stats.Strategy,
		Key:       key,
		Capacity:  stats.Capacity,
		Insert:    &res,
		Stats:     stats,
		Err:       insertErr,
		At:        time.Now(),
	})
	return res, insertErr
}

// Search looks key up in the table for the named strategy.
func (r *Registry) Search(name string, key int) (hashtable.SearchResult, error) {
	var (
		res   hashtable.SearchResult
		stats hashtable.Stats
	)
	listeners, err := r.with(name, func(t *hashtable.Table) {
		res = t.Search(key)
		stats = t.Stats()
	})
	if err != nil {
		return hashtable.SearchResult{}, err
	}

	metrics.ObserveSearch(stats.Strategy.String(), res.Found, len(res.Steps))
	log.Debugf("[SEARCH] %s key=%d found=%t index=%d", stats.Strategy, key, res.Found, res.Index)

	notify(listeners, Event{
		Operation: OpSearch,
		Strategy:  stats.Strategy,
		Key:       key,
		Capacity:  stats.Capacity,
		Search:    &res,
		Stats:     stats,
		At:        time.Now(),
	})
	return res, nil
}

func (r *Registry) Stats(name string) (hashtable.Stats, error) {
	var st hashtable.Stats
	_, err := r.with(name, func(t *hashtable.Table) { st = t.Stats() })
	return st, err
}

func (r *Registry) State(name string) (hashtable.State, error) {
	var st hashtable.State
	_, err := r.with(name, func(t *hashtable.Table) { st = t.State() })
	return st, err
}

// Compare returns the stats of every table keyed by strategy name.
func (r *Registry) Compare() map[string]hashtable.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]hashtable.Stats, len(r.tables))
	for s, e := range r.tables {
		e.run(func(t *hashtable.Table) { out[s.String()] = t.Stats() })
	}
	return out
}

func notify(listeners []Listener, ev Event) {
	for _, l := range listeners {
		l.OnEvent(ev)
	}
}
