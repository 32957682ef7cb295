package hashtable

import "fmt"

// errNoQuadraticSlot is returned when i reaches capacity. The sequence
// home+i*i does not cover every slot for arbitrary capacities, so this can
// fire while empty slots remain.
var errNoQuadraticSlot = fmt.Errorf("%w or no suitable slot found", ErrTableFull)

type quadratic struct {
	openSlots
}

func (q *quadratic) at(home, i int) int {
	return mod(home+i*i, q.size())
}

func (q *quadratic) insert(key int, cnt *counters) (int, []Step, error) {
	home := hash1(key, q.size())
	index := home
	steps := []Step{keyStep(index, ActionHash, key)}

	for i := 0; q.occupied(index); {
		cnt.collisions++
		steps = append(steps, msgStep(index, ActionCollision, "Slot occupied, quadratic probe i=%d", i))
		i++
		index = q.at(home, i)

		if i >= q.size() {
			return -1, steps, errNoQuadraticSlot
		}
	}

	q.place(index, key)
	steps = append(steps, keyStep(index, ActionInsert, key))
	return index, steps, nil
}

func (q *quadratic) search(key int) SearchResult {
	home := hash1(key, q.size())
	index := home
	steps := []Step{keyStep(index, ActionHash, key)}

	for i := 0; q.occupied(index) && i < q.size(); {
		if q.holds(index, key) {
			steps = append(steps, keyStep(index, ActionFound, key))
			return SearchResult{Found: true, Index: index, Steps: steps}
		}

		steps = append(steps, msgStep(index, ActionProbe, "Value not here, quadratic probe i=%d", i))
		i++
		index = q.at(home, i)
	}

	steps = append(steps, msgStep(index, ActionNotFound, "Value not found"))
	return SearchResult{Index: index, Steps: steps}
}
