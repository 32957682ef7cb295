package hashtable

// linear probes home, home+1, home+2, ... and gives up when it wraps back to
// the home slot.
type linear struct {
	openSlots
}

func (l *linear) insert(key int, cnt *counters) (int, []Step, error) {
	home := hash1(key, l.size())
	index := home
	steps := []Step{keyStep(index, ActionHash, key)}

	for l.occupied(index) {
		cnt.collisions++
		steps = append(steps, msgStep(index, ActionCollision, "Slot occupied, probing next"))
		index = (index + 1) % l.size()

		if index == home {
			return -1, steps, ErrTableFull
		}
	}

	l.place(index, key)
	steps = append(steps, keyStep(index, ActionInsert, key))
	return index, steps, nil
}

func (l *linear) search(key int) SearchResult {
	home := hash1(key, l.size())
	index := home
	steps := []Step{keyStep(index, ActionHash, key)}

	for l.occupied(index) {
		if l.holds(index, key) {
			steps = append(steps, keyStep(index, ActionFound, key))
			return SearchResult{Found: true, Index: index, Steps: steps}
		}

		steps = append(steps, msgStep(index, ActionProbe, "Value not here, probing next"))
		index = (index + 1) % l.size()

		if index == home {
			break
		}
	}

	steps = append(steps, msgStep(index, ActionNotFound, "Value not found"))
	return SearchResult{Index: index, Steps: steps}
}
