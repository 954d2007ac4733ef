package capture

// Multi is a multi-capture map: an integer step-index per unordered
// pair, for interactions with more than one captured state (e.g.
// Stepped). Grounded on dynamo's IMultiCapture.
type Multi struct {
	steps map[Key]int
}

// NewMulti returns an empty multi-capture map.
func NewMulti() *Multi {
	return &Multi{steps: make(map[Key]int)}
}

// IsCaptured implements Map.
func (m *Multi) IsCaptured(i, j int) bool {
	_, ok := m.steps[NewKey(i, j)]
	return ok
}

// Set implements Map: records the step index for i,j.
func (m *Multi) Set(i, j, value int) {
	m.steps[NewKey(i, j)] = value
}

// Clear implements Map.
func (m *Multi) Clear(i, j int) {
	delete(m.steps, NewKey(i, j))
}

// Len implements Map.
func (m *Multi) Len() int { return len(m.steps) }

// Step returns the captured step index for i,j, and whether any
// capture state exists.
func (m *Multi) Step(i, j int) (int, bool) {
	v, ok := m.steps[NewKey(i, j)]
	return v, ok
}

// Entries returns every captured pair and its step index, in
// unspecified order. Used by snapshot to serialize the map.
func (m *Multi) Entries() []Entry {
	out := make([]Entry, 0, len(m.steps))
	for k, step := range m.steps {
		out = append(out, Entry{A: k.A, B: k.B, Step: step})
	}
	return out
}

// Entry is one persisted (pair, step) record of a Multi map.
type Entry struct {
	A, B, Step int
}
