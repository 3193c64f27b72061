package ledger

// Trail records the ledger in effect before each step, indexed from 1.
type Trail struct {
	globals Ledger
	states  []Ledger
}

// NewTrail starts a trail from the global variables.
func NewTrail(globals Ledger) *Trail {
	return &Trail{globals: globals}
}

// Record appends the ledger in effect for the next step.
func (t *Trail) Record(l Ledger) {
	t.states = append(t.states, l)
}

// KnownAt returns the ledger step i (1-based) was compiled against. Steps
// past the end of the trail see the last recorded state.
func (t *Trail) KnownAt(i int) Ledger {
	switch {
	case len(t.states) == 0 || i < 1:
		return t.globals
	case i > len(t.states):
		return t.states[len(t.states)-1]
	default:
		return t.states[i-1]
	}
}

// Len returns how many steps were recorded.
func (t *Trail) Len() int {
	return len(t.states)
}
