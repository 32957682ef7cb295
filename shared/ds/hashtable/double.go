package hashtable

// double probes home + i*hash2(key). The step is in [1, 7] regardless of
// capacity, so coverage of the table is not guaranteed.
type double struct {
	openSlots
}

func (d *double) at(home, step, i int) int {
	return mod(home+i*step, d.size())
}

func (d *double) hashStep(index, key, step int) Step {
	s := keyStep(index, ActionHash, key)
	s.ProbeStep = step
	return s
}

func (d *double) insert(key int, cnt *counters) (int, []Step, error) {
	home := hash1(key, d.size())
	step := hash2(key)
	index := home
	steps := []Step{d.hashStep(index, key, step)}

	for i := 0; d.occupied(index); {
		cnt.collisions++
		steps = append(steps, msgStep(index, ActionCollision, "Slot occupied, double hash step=%d", step))
		i++
		index = d.at(home, step, i)

		if i >= d.size() {
			return -1, steps, ErrTableFull
		}
	}

	d.place(index, key)
	steps = append(steps, keyStep(index, ActionInsert, key))
	return index, steps, nil
}

func (d *double) search(key int) SearchResult {
	home := hash1(key, d.size())
	step := hash2(key)
	index := home
	steps := []Step{d.hashStep(index, key, step)}

	for i := 0; d.occupied(index) && i < d.size(); {
		if d.holds(index, key) {
			steps = append(steps, keyStep(index, ActionFound, key))
			return SearchResult{Found: true, Index: index, Steps: steps}
		}

		steps = append(steps, msgStep(index, ActionProbe, "Value not here, double hash step=%d", step))
		i++
		index = d.at(home, step, i)
	}

	steps = append(steps, msgStep(index, ActionNotFound, "Value not found"))
	return SearchResult{Index: index, Steps: steps}
}
