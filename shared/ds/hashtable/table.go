// Package hashtable implements a fixed-capacity integer hash table with four
// interchangeable collision resolution strategies. Every insert and search
// returns an ordered trace of the slots it touched, for visualization.
//
// A Table is not safe for concurrent use; callers serialize access.
package hashtable

// counters are shared by a table and its resolver. Resolvers bump collisions
// while probing; the table owns inserted.
type counters struct {
	inserted   int
	collisions int
}

// resolver is the per-strategy behaviour over its own slot storage.
type resolver interface {
	insert(key int, c *counters) (int, []Step, error)
	search(key int) SearchResult
	slots() []Slot
}

// Table is a CollisionTable: capacity and strategy are fixed at construction,
// there is no resizing and no deletion.
type Table struct {
	capacity int
	strategy Strategy
	res      resolver
	counters
}

// New returns an empty table.
func New(capacity int, strategy Strategy) (*Table, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	var res resolver
	switch strategy {
	case Chaining:
		res = newChained(capacity)
	case LinearProbing:
		res = &linear{openSlots: newOpenSlots(capacity)}
	case QuadraticProbing:
		res = &quadratic{openSlots: newOpenSlots(capacity)}
	case DoubleHashing:
		res = &double{openSlots: newOpenSlots(capacity)}
	default:
		return nil, ErrInvalidStrategy
	}

	return &Table{capacity: capacity, strategy: strategy, res: res}, nil
}

func (t *Table) Capacity() int { return t.capacity }
func (t *Table) Strategy() Strategy { return t.strategy }

// Insert places key and returns the slot it settled in. Probing strategies
// fail with ErrTableFull once their probe bound is exhausted; collisions seen
// before the failure stay counted.
func (t *Table) Insert(key int) (InsertResult, error) {
	index, steps, err := t.res.insert(key, &t.counters)
	if err != nil {
		return InsertResult{
			Index:      -1,
			Steps:      steps,
			Collisions: t.collisions,
			LoadFactor: t.loadFactor(),
		}, err
	}

	t.inserted++
	return InsertResult{
		Index:      index,
		Steps:      steps,
		Collisions: t.collisions,
		LoadFactor: t.loadFactor(),
	}, nil
}

// Search retraces the insertion probe sequence for key. It never mutates the
// table.
func (t *Table) Search(key int) SearchResult {
	return t.res.search(key)
}

func (t *Table) Stats() Stats {
	return Stats{
		Strategy:       t.strategy,
		Capacity:       t.capacity,
		InsertedCount:  t.inserted,
		CollisionCount: t.collisions,
		LoadFactor:     t.loadFactor(),
	}
}

// State returns a deep copy of the slots plus stats.
func (t *Table) State() State {
	return State{Slots: t.res.slots(), Stats: t.Stats()}
}

func (t *Table) loadFactor() LoadFactor {
	return LoadFactor{Inserted: t.inserted, Capacity: t.capacity}
}

// cell is one open addressing slot. occupied is the explicit empty marker.
type cell struct {
	key      int
	occupied bool
}

// openSlots is the storage shared by the three probing strategies.
type openSlots struct {
	cells []cell
}

func newOpenSlots(capacity int) openSlots {
	return openSlots{cells: make([]cell, capacity)}
}

func (o *openSlots) size() int { return len(o.cells) }
func (o *openSlots) occupied(index int) bool { return o.cells[index].occupied }

func (o *openSlots) holds(index, key int) bool {
	return o.cells[index].occupied && o.cells[index].key == key
}

func (o *openSlots) place(index, key int) {
	o.cells[index] = cell{key: key, occupied: true}
}

func (o *openSlots) slots() []Slot {
	out := make([]Slot, len(o.cells))
	for i, c := range o.cells {
		out[i] = Slot{Index: i, Occupied: c.occupied}
		if c.occupied {
			out[i].Keys = []int{c.key}
		}
	}
	return out
}
