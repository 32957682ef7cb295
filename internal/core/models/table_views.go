// internal/core/models/table_views.go
package models

import "github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"

// StepView is the wire form of one trace step.
type StepView struct {
	Index   int    `json:"index"`
	Action  string `json:"action"`
	Value   *int   `json:"value,omitempty"`
	Step    *int   `json:"step,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatsView is the wire form of table statistics. LoadFactor is a two
// decimal string, e.g. "0.30".
type StatsView struct {
	Method        string `json:"method"`
	Size          int    `json:"size"`
	InsertedCount int    `json:"insertedCount"`
	Collisions    int    `json:"collisions"`
	LoadFactor    string `json:"loadFactor"`
}

type InsertView struct {
	Success    bool       `json:"success"`
	Index      int        `json:"index"`
	Steps      []StepView `json:"steps"`
	Collisions int        `json:"collisions"`
	LoadFactor string     `json:"loadFactor"`
}

type SearchView struct {
	Found bool       `json:"found"`
	Index int        `json:"index"`
	Steps []StepView `json:"steps"`
}

// StateView renders the slots as the front end expects: an array of arrays
// for chaining, an array of numbers or nulls for the probing strategies.
type StateView struct {
	Table interface{} `json:"table"`
	Stats StatsView   `json:"stats"`
}

func ToStepViews(steps []hashtable.Step) []StepView {
	out := make([]StepView, len(steps))
	for i, s := range steps {
		v := StepView{Index: s.Index, Action: string(s.Action), Message: s.Message}
		if s.HasKey {
			key := s.Key
			v.Value = &key
		}
		if s.ProbeStep != 0 {
			step := s.ProbeStep
			v.Step = &step
		}
		out[i] = v
	}
	return out
}

// FromStepViews reverses ToStepViews.
func FromStepViews(views []StepView) []hashtable.Step {
	out := make([]hashtable.Step, len(views))
	for i, v := range views {
		s := hashtable.Step{Index: v.Index, Action: hashtable.Action(v.Action), Message: v.Message}
		if v.Value != nil {
			s.Key, s.HasKey = *v.Value, true
		}
		if v.Step != nil {
			s.ProbeStep = *v.Step
		}
		out[i] = s
	}
	return out
}

func ToStatsView(st hashtable.Stats) StatsView {
	return StatsView{
		Method:        st.Strategy.String(),
		Size:          st.Capacity,
		InsertedCount: st.InsertedCount,
		Collisions:    st.CollisionCount,
		LoadFactor:    st.LoadFactor.String(),
	}
}

func ToInsertView(res hashtable.InsertResult) InsertView {
	return InsertView{
		Success:    true,
		Index:      res.Index,
		Steps:      ToStepViews(res.Steps),
		Collisions: res.Collisions,
		LoadFactor: res.LoadFactor.String(),
	}
}

func ToSearchView(res hashtable.SearchResult) SearchView {
	return SearchView{Found: res.Found, Index: res.Index, Steps: ToStepViews(res.Steps)}
}

func ToStateView(st hashtable.State) StateView {
	view := StateView{Stats: ToStatsView(st.Stats)}

	if st.Stats.Strategy == hashtable.Chaining {
		chains := make([][]int, len(st.Slots))
		for i, s := range st.Slots {
			chains[i] = append([]int{}, s.Keys...)
		}
		view.Table = chains
		return view
	}

	cells := make([]*int, len(st.Slots))
	for i, s := range st.Slots {
		if s.Occupied && len(s.Keys) > 0 {
			key := s.Keys[0]
			cells[i] = &key
		}
	}
	view.Table = cells
	return view
}
