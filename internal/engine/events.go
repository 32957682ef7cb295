package engine

import (
	"time"

	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
)

// Operation kinds carried by an Event.
const (
	OpInsert = "insert"
	OpSearch = "search"
	OpReset  = "reset"
)

// Event describes one completed registry operation. Exactly one of Insert or
// Search is set for insert and search events; reset events carry only
// Capacity.
type Event struct {
	Operation string
	Strategy  hashtable.Strategy
	Key       int
	Capacity  int
	Insert    *hashtable.InsertResult
	Search    *hashtable.SearchResult
	Stats     hashtable.Stats
	Err       error
	At        time.Time
}

// Listener receives events synchronously after the table lock is released.
// Implementations must not block.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }
