// Package criteria owns the recipe filter form: its state, serialization into
// a recommendation request, validation, and the summary tag panel.
package criteria

import (
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

const (
	// DefaultTopK is the result count the form starts with
	DefaultTopK = 5
	// MinTopK and MaxTopK bound the result count accepted by the backend
	MinTopK = 1
	MaxTopK = 50
)

// ChangeListener is called after a select's selection changed
type ChangeListener func(id SelectID)

// State is the single source of truth for the filter form. Pages are
// rendered from it; form posts are reconciled into it.
type State struct {
	Selections     map[SelectID][]string `json:"selections"`
	Weights        types.Weights         `json:"weights"`
	TopK           int                   `json:"top_k"`
	Flexible       bool                  `json:"flexible"`
	SummaryVisible bool                  `json:"summary_visible"`
	ResultsVisible bool                  `json:"results_visible"`
	Results        []types.RecipeID      `json:"results,omitempty"`

	listeners []ChangeListener
}

// NewState returns a form with nothing selected and default weights
func NewState() *State {
	return &State{
		Selections: make(map[SelectID][]string),
		Weights:    types.DefaultWeights(),
		TopK:       DefaultTopK,
	}
}

// Subscribe registers fn for change notifications. Listeners are not persisted.
func (s *State) Subscribe(fn ChangeListener) {
	s.listeners = append(s.listeners, fn)
}

// Selected returns a copy of the values selected in id
func (s *State) Selected(id SelectID) []string {
	values := s.Selections[id]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// IsSelected reports whether value is selected in id
func (s *State) IsSelected(id SelectID, value string) bool {
	for _, v := range s.Selections[id] {
		if v == value {
			return true
		}
	}
	return false
}

// Select replaces the selection of id and dispatches a change notification
// when it differs from the current one.
func (s *State) Select(id SelectID, values ...string) {
	next := normalizeSelection(id, values)
	if equalStrings(s.Selections[id], next) {
		return
	}
	s.setSelection(id, next)
	s.dispatch(id)
}

// SetResults stores the latest recommendation and shows the results panel
func (s *State) SetResults(ids []types.RecipeID) {
	s.Results = append([]types.RecipeID{}, ids...)
	s.ResultsVisible = true
}

// HasCriteria reports whether any criterion is selected
func (s *State) HasCriteria() bool {
	return Validate(s.Request()) == nil
}

func (s *State) setSelection(id SelectID, values []string) {
	if s.Selections == nil {
		s.Selections = make(map[SelectID][]string)
	}
	if len(values) == 0 {
		delete(s.Selections, id)
		return
	}
	s.Selections[id] = values
}

// dispatch is the change event: the summary visibility is recomputed first,
// then every listener runs.
func (s *State) dispatch(id SelectID) {
	s.SummaryVisible = s.HasCriteria()
	for _, fn := range s.listeners {
		fn(id)
	}
}

func normalizeSelection(id SelectID, values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if !id.Multiple() {
			break
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
