package tcp

import (
	"encoding/json"
	"testing"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	reg, err := engine.NewRegistry(engine.DefaultCapacity, 1000)
	require.NoError(t, err)
	return NewDispatcher(reg)
}

func exec(t *testing.T, d *Dispatcher, line string, v interface{}) bool {
	t.Helper()
	reply, ok := d.Execute(line)
	require.NotEmpty(t, reply)
	assert.Equal(t, byte('\n'), reply[len(reply)-1])
	require.NoError(t, json.Unmarshal(reply, v), string(reply))
	return ok
}

func TestDispatcherPing(t *testing.T) {
	var out map[string]string
	assert.True(t, exec(t, newDispatcher(t), "ping", &out))
	assert.Equal(t, "PONG", out["message"])
}

func TestDispatcherInsertSearchStats(t *testing.T) {
	d := newDispatcher(t)

	var ins models.InsertView
	require.True(t, exec(t, d, "INSERT linearProbing 3", &ins))
	require.True(t, exec(t, d, "INSERT linearProbing 13", &ins))
	assert.Equal(t, 4, ins.Index)
	assert.Equal(t, 1, ins.Collisions)

	var found models.SearchView
	require.True(t, exec(t, d, "SEARCH linearProbing 13", &found))
	assert.True(t, found.Found)
	assert.Equal(t, 4, found.Index)

	var st models.StatsView
	require.True(t, exec(t, d, "STATS linearProbing", &st))
	assert.Equal(t, 2, st.InsertedCount)
	assert.Equal(t, "0.20", st.LoadFactor)

	var state struct {
		Table []*int `json:"table"`
	}
	require.True(t, exec(t, d, "TABLE linearProbing", &state))
	require.Len(t, state.Table, 10)
	require.NotNil(t, state.Table[4])
	assert.Equal(t, 13, *state.Table[4])
}

func TestDispatcherResetAndCompare(t *testing.T) {
	d := newDispatcher(t)

	var msg map[string]string
	require.True(t, exec(t, d, "RESET 5", &msg))

	var cmp map[string]models.StatsView
	require.True(t, exec(t, d, "COMPARE", &cmp))
	require.Len(t, cmp, 4)
	for _, st := range cmp {
		assert.Equal(t, 5, st.Size)
	}
}

func TestDispatcherTableFull(t *testing.T) {
	d := newDispatcher(t)

	var msg map[string]string
	require.True(t, exec(t, d, "RESET 1", &msg))
	var ins models.InsertView
	require.True(t, exec(t, d, "INSERT doubleHashing 0", &ins))

	var full errorReply
	assert.False(t, exec(t, d, "INSERT doubleHashing 1", &full))
	assert.Contains(t, full.Error, "hash table is full")
	assert.NotEmpty(t, full.Steps)
}

func TestDispatcherErrors(t *testing.T) {
	d := newDispatcher(t)

	cases := map[string]string{
		"":                      "empty command",
		"FLY":                   `unknown command "FLY"`,
		"INSERT cuckoo 1":       "Invalid hashing method",
		"INSERT chaining x":     `invalid key "x"`,
		"INSERT chaining":       "usage: INSERT <method> <key>",
		"TABLE":                 "usage: TABLE <method>",
		"RESET zero":            `invalid size "zero"`,
		"STATS quadraticHashes": "Invalid hashing method",
	}
	for line, want := range cases {
		var out errorReply
		assert.False(t, exec(t, d, line, &out), line)
		assert.Equal(t, want, out.Error, line)
	}
}
