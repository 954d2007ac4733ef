package capture

// Single is a single-capture map: a set of unordered pairs, for
// interactions where capture is a pure boolean (e.g. SquareWell,
// SquareBond). Grounded on dynamo's ISingleCapture.
type Single struct {
	pairs map[Key]struct{}
}

// NewSingle returns an empty single-capture map.
func NewSingle() *Single {
	return &Single{pairs: make(map[Key]struct{})}
}

// IsCaptured implements Map.
func (s *Single) IsCaptured(i, j int) bool {
	_, ok := s.pairs[NewKey(i, j)]
	return ok
}

// Set implements Map; the value is ignored for a single-capture map.
func (s *Single) Set(i, j, _ int) {
	s.pairs[NewKey(i, j)] = struct{}{}
}

// Clear implements Map.
func (s *Single) Clear(i, j int) {
	delete(s.pairs, NewKey(i, j))
}

// Len implements Map.
func (s *Single) Len() int { return len(s.pairs) }

// Pairs returns every currently captured pair, in unspecified order.
func (s *Single) Pairs() []Key {
	out := make([]Key, 0, len(s.pairs))
	for k := range s.pairs {
		out = append(out, k)
	}
	return out
}
