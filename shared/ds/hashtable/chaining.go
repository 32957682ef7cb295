package hashtable

// chained keeps one bucket per slot; buckets grow without bound.
type chained struct {
	buckets [][]int
}

func newChained(capacity int) *chained {
	return &chained{buckets: make([][]int, capacity)}
}

// insert registers at most one collision per call, however long the chain.
func (c *chained) insert(key int, cnt *counters) (int, []Step, error) {
	index := hash1(key, len(c.buckets))
	steps := []Step{keyStep(index, ActionHash, key)}

	if len(c.buckets[index]) > 0 {
		cnt.collisions++
		steps = append(steps, msgStep(index, ActionCollision, "Collision detected, adding to chain"))
	}

	c.buckets[index] = append(c.buckets[index], key)
	return index, steps, nil
}

func (c *chained) search(key int) SearchResult {
	index := hash1(key, len(c.buckets))
	steps := []Step{keyStep(index, ActionHash, key)}

	for _, k := range c.buckets[index] {
		if k == key {
			steps = append(steps, msgStep(index, ActionFound, "Value found in chain"))
			return SearchResult{Found: true, Index: index, Steps: steps}
		}
	}

	steps = append(steps, msgStep(index, ActionNotFound, "Value not in chain"))
	return SearchResult{Index: index, Steps: steps}
}

func (c *chained) slots() []Slot {
	out := make([]Slot, len(c.buckets))
	for i, b := range c.buckets {
		keys := make([]int, len(b))
		copy(keys, b)
		out[i] = Slot{Index: i, Keys: keys, Occupied: len(b) > 0}
	}
	return out
}
