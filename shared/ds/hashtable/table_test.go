package hashtable

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, capacity int, s Strategy) *Table {
	t.Helper()
	tbl, err := New(capacity, s)
	require.NoError(t, err)
	return tbl
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, Chaining)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(-4, LinearProbing)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(10, Strategy(99))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("cuckoo")
	assert.True(t, errors.Is(err, ErrInvalidStrategy))
	_, err = ParseStrategy("")
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestChainingScenario(t *testing.T) {
	tbl := mustTable(t, 10, Chaining)

	res, err := tbl.Insert(5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Index)
	assert.Equal(t, 0, res.Collisions)

	res, err = tbl.Insert(15)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Index)
	assert.Equal(t, 1, res.Collisions)

	want := []Step{
		{Index: 5, Action: ActionHash, Key: 15, HasKey: true},
		{Index: 5, Action: ActionCollision, Message: "Collision detected, adding to chain"},
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Errorf("insert trace mismatch (-want +got):\n%s", diff)
	}

	st := tbl.State()
	assert.Equal(t, []int{5, 15}, st.Slots[5].Keys)
	assert.Equal(t, 2, st.Stats.InsertedCount)
	assert.Equal(t, 1, st.Stats.CollisionCount)
}

func TestChainingOneCollisionPerInsert(t *testing.T) {
	tbl := mustTable(t, 10, Chaining)
	for _, k := range []int{1, 11, 21, 31} {
		_, err := tbl.Insert(k)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, tbl.Stats().CollisionCount)
	assert.Equal(t, []int{1, 11, 21, 31}, tbl.State().Slots[1].Keys)
}

func TestChainingNeverFails(t *testing.T) {
	tbl := mustTable(t, 3, Chaining)
	for n := 1; n <= 50; n++ {
		_, err := tbl.Insert(n * 7)
		require.NoError(t, err)
		assert.Equal(t, n, tbl.Stats().InsertedCount)
	}
	assert.Equal(t, "16.67", tbl.Stats().LoadFactor.String())
}

func TestLinearProbingScenario(t *testing.T) {
	tbl := mustTable(t, 10, LinearProbing)

	var idx []int
	var collisionsBefore int
	var last InsertResult
	for _, k := range []int{3, 13, 23} {
		collisionsBefore = tbl.Stats().CollisionCount
		res, err := tbl.Insert(k)
		require.NoError(t, err)
		idx = append(idx, res.Index)
		last = res
	}
	assert.Equal(t, []int{3, 4, 5}, idx)
	// 13 collides once, 23 twice
	assert.Equal(t, 2, last.Collisions-collisionsBefore)
	assert.Equal(t, 3, tbl.Stats().CollisionCount)

	want := []Step{
		{Index: 3, Action: ActionHash, Key: 23, HasKey: true},
		{Index: 3, Action: ActionCollision, Message: "Slot occupied, probing next"},
		{Index: 4, Action: ActionCollision, Message: "Slot occupied, probing next"},
		{Index: 5, Action: ActionInsert, Key: 23, HasKey: true},
	}
	if diff := cmp.Diff(want, last.Steps); diff != "" {
		t.Errorf("insert trace mismatch (-want +got):\n%s", diff)
	}

	res := tbl.Search(23)
	assert.True(t, res.Found)
	assert.Equal(t, 5, res.Index)
}

func TestLinearSearchTrace(t *testing.T) {
	tbl := mustTable(t, 10, LinearProbing)
	for _, k := range []int{3, 13} {
		_, err := tbl.Insert(k)
		require.NoError(t, err)
	}

	res := tbl.Search(33)
	assert.False(t, res.Found)
	assert.Equal(t, 5, res.Index)
	want := []Step{
		{Index: 3, Action: ActionHash, Key: 33, HasKey: true},
		{Index: 3, Action: ActionProbe, Message: "Value not here, probing next"},
		{Index: 4, Action: ActionProbe, Message: "Value not here, probing next"},
		{Index: 5, Action: ActionNotFound, Message: "Value not found"},
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Errorf("search trace mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearSearchFullTableWraps(t *testing.T) {
	tbl := mustTable(t, 4, LinearProbing)
	for k := 0; k < 4; k++ {
		_, err := tbl.Insert(k)
		require.NoError(t, err)
	}
	res := tbl.Search(42)
	assert.False(t, res.Found)
	assert.Equal(t, hash1(42, 4), res.Index)
	// hash, four probes, not_found
	assert.Len(t, res.Steps, 6)
}

func TestDoubleHashingScenario(t *testing.T) {
	tbl := mustTable(t, 10, DoubleHashing)

	res, err := tbl.Insert(10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, 0, res.Collisions)

	res, err = tbl.Insert(20)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)

	want := []Step{
		{Index: 0, Action: ActionHash, Key: 20, HasKey: true, ProbeStep: 1},
		{Index: 0, Action: ActionCollision, Message: "Slot occupied, double hash step=1"},
		{Index: 1, Action: ActionInsert, Key: 20, HasKey: true},
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Errorf("insert trace mismatch (-want +got):\n%s", diff)
	}
}

func TestQuadraticProbingTrace(t *testing.T) {
	tbl := mustTable(t, 10, QuadraticProbing)
	for _, k := range []int{2, 12, 22} {
		_, err := tbl.Insert(k)
		require.NoError(t, err)
	}

	// 2 -> 2, 12 -> 2+1 = 3, 22 -> 2, 3, 2+4 = 6
	st := tbl.State()
	assert.Equal(t, []int{2}, st.Slots[2].Keys)
	assert.Equal(t, []int{12}, st.Slots[3].Keys)
	assert.Equal(t, []int{22}, st.Slots[6].Keys)
	assert.Equal(t, 3, st.Stats.CollisionCount)

	res := tbl.Search(22)
	want := []Step{
		{Index: 2, Action: ActionHash, Key: 22, HasKey: true},
		{Index: 2, Action: ActionProbe, Message: "Value not here, quadratic probe i=0"},
		{Index: 3, Action: ActionProbe, Message: "Value not here, quadratic probe i=1"},
		{Index: 6, Action: ActionFound, Key: 22, HasKey: true},
	}
	assert.True(t, res.Found)
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Errorf("search trace mismatch (-want +got):\n%s", diff)
	}
}

func TestQuadraticFalseFull(t *testing.T) {
	// i*i mod 10 only reaches {0,1,4,5,6,9}; with those taken from home 0 the
	// probe gives up even though slots 2,3,7,8 are free.
	tbl := mustTable(t, 10, QuadraticProbing)
	for _, k := range []int{0, 1, 4, 5, 6, 9} {
		_, err := tbl.Insert(k)
		require.NoError(t, err)
	}
	before := tbl.Stats()

	res, err := tbl.Insert(10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, "hash table is full or no suitable slot found", err.Error())
	assert.Equal(t, -1, res.Index)

	after := tbl.Stats()
	assert.Equal(t, before.InsertedCount, after.InsertedCount)
	assert.Equal(t, before.CollisionCount+10, after.CollisionCount)
	assert.False(t, tbl.State().Slots[2].Occupied)
}

func TestProbingFillThenFull(t *testing.T) {
	for _, s := range []Strategy{LinearProbing, QuadraticProbing, DoubleHashing} {
		t.Run(s.String(), func(t *testing.T) {
			const c = 10
			tbl := mustTable(t, c, s)
			for k := 0; k < c; k++ {
				res, err := tbl.Insert(k)
				require.NoError(t, err)
				assert.Equal(t, k, res.Index)
			}
			st := tbl.Stats()
			assert.Equal(t, 0, st.CollisionCount)
			assert.Equal(t, c, st.InsertedCount)
			assert.Equal(t, "1.00", st.LoadFactor.String())

			snapshot := tbl.State().Slots
			_, err := tbl.Insert(c)
			assert.ErrorIs(t, err, ErrTableFull)
			assert.Equal(t, c, tbl.Stats().InsertedCount)
			assert.Equal(t, c, tbl.Stats().CollisionCount)
			assert.Equal(t, snapshot, tbl.State().Slots)
		})
	}
}

func TestInsertThenSearchFindsSameSlot(t *testing.T) {
	keys := []int{0, 7, 17, 27, -3, 44, 1000003, 5, 15}
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			tbl := mustTable(t, 11, s)
			for _, k := range keys {
				ins, err := tbl.Insert(k)
				require.NoError(t, err)
				found := tbl.Search(k)
				assert.True(t, found.Found, "key %d", k)
				assert.Equal(t, ins.Index, found.Index, "key %d", k)
			}
		})
	}
}

func TestZeroAndNegativeKeys(t *testing.T) {
	tbl := mustTable(t, 5, LinearProbing)
	assert.False(t, tbl.Search(0).Found)

	res, err := tbl.Insert(0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
	assert.True(t, tbl.Search(0).Found)

	res, err = tbl.Insert(-1)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Index)
}

func TestDuplicateKeysStoredAgain(t *testing.T) {
	tbl := mustTable(t, 10, LinearProbing)
	a, err := tbl.Insert(7)
	require.NoError(t, err)
	b, err := tbl.Insert(7)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Index)
	assert.Equal(t, 8, b.Index)
	assert.Equal(t, 2, tbl.Stats().InsertedCount)
	// search stops at the first copy
	assert.Equal(t, 7, tbl.Search(7).Index)
}

func TestSearchDoesNotMutate(t *testing.T) {
	for _, s := range Strategies() {
		tbl := mustTable(t, 7, s)
		for _, k := range []int{1, 8, 15} {
			_, err := tbl.Insert(k)
			require.NoError(t, err)
		}
		before := tbl.State()
		tbl.Search(22)
		tbl.Search(8)
		assert.Equal(t, before, tbl.State(), s.String())
	}
}

func TestStateIsCopy(t *testing.T) {
	tbl := mustTable(t, 4, Chaining)
	_, err := tbl.Insert(1)
	require.NoError(t, err)

	st := tbl.State()
	st.Slots[1].Keys[0] = 99
	assert.Equal(t, []int{1}, tbl.State().Slots[1].Keys)
}

func TestLoadFactorAfterInserts(t *testing.T) {
	tbl := mustTable(t, 8, DoubleHashing)
	for n := 1; n <= 8; n++ {
		_, err := tbl.Insert(n)
		require.NoError(t, err)
		assert.Equal(t, LoadFactor{Inserted: n, Capacity: 8}, tbl.Stats().LoadFactor)
	}
	assert.Equal(t, "1.00", tbl.Stats().LoadFactor.String())
}
