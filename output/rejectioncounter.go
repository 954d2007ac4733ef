package output

// RejectionCounter tallies the silent transient-numerical repairs of
// spec.md §7 ("repair locally... continue", "counted and reported at
// shutdown"): a non-converging root search, an oscillating-plate
// penetration, both roots at infinity. Kept as plain counters rather
// than events, since a repair isn't a physical event and has no
// ParticleDelta of its own to report through Observer.
type RejectionCounter struct {
	InteractionRejections int64
	LocalRejections       int64
}

// NewRejectionCounter returns a zeroed RejectionCounter.
func NewRejectionCounter() *RejectionCounter {
	return &RejectionCounter{}
}

// RejectInteraction records a repaired interaction-event prediction.
func (r *RejectionCounter) RejectInteraction() { r.InteractionRejections++ }

// RejectLocal records a repaired local-event prediction.
func (r *RejectionCounter) RejectLocal() { r.LocalRejections++ }

// Total returns the combined repair count, the single number spec.md
// §7 asks to be reported at shutdown.
func (r *RejectionCounter) Total() int64 {
	return r.InteractionRejections + r.LocalRejections
}
