package hashtable

import (
	"errors"
	"fmt"
)

// Strategy selects the collision resolution used by a Table.
type Strategy uint8

const (
	Chaining Strategy = iota + 1
	LinearProbing
	QuadraticProbing
	DoubleHashing
)

var strategyNames = map[Strategy]string{
	Chaining:         "chaining",
	LinearProbing:    "linearProbing",
	QuadraticProbing: "quadraticProbing",
	DoubleHashing:    "doubleHashing",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

func (s Strategy) valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Strategies returns every supported strategy in display order.
func Strategies() []Strategy {
	return []Strategy{Chaining, LinearProbing, QuadraticProbing, DoubleHashing}
}

// ParseStrategy maps a wire name such as "linearProbing" to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
}

var (
	ErrInvalidStrategy = errors.New("invalid hashing method")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrTableFull       = errors.New("hash table is full")
)

// Action names one step of an insert or search trace.
type Action string

const (
	ActionHash      Action = "hash"
	ActionCollision Action = "collision"
	ActionInsert    Action = "insert"
	ActionProbe     Action = "probe"
	ActionFound     Action = "found"
	ActionNotFound  Action = "not_found"
)

// Step is a single entry of a trace. Key is meaningful only when HasKey is set,
// since 0 is a valid key. ProbeStep is non-zero only on the double hashing
// hash step.
type Step struct {
	Index     int
	Action    Action
	Key       int
	HasKey    bool
	ProbeStep int
	Message   string
}

func keyStep(index int, action Action, key int) Step {
	return Step{Index: index, Action: action, Key: key, HasKey: true}
}

func msgStep(index int, action Action, format string, args ...interface{}) Step {
	return Step{Index: index, Action: action, Message: fmt.Sprintf(format, args...)}
}

// InsertResult is returned by Table.Insert. On failure Index is -1 and Steps
// holds the trace up to the point the probe sequence gave up.
type InsertResult struct {
	Index      int
	Steps      []Step
	Collisions int
	LoadFactor LoadFactor
}

// SearchResult is returned by Table.Search. Index is the slot where the
// lookup terminated, whether or not the key was found.
type SearchResult struct {
	Found bool
	Index int
	Steps []Step
}

// Stats is a point-in-time copy of a table's counters.
type Stats struct {
	Strategy       Strategy
	Capacity       int
	InsertedCount  int
	CollisionCount int
	LoadFactor     LoadFactor
}

// Slot is a rendering of one bucket. Chaining buckets report every key in
// insertion order; probing buckets report at most one key.
type Slot struct {
	Index    int
	Keys     []int
	Occupied bool
}

// State is the full table contents plus stats.
type State struct {
	Slots []Slot
	Stats Stats
}
