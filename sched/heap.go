package sched

// kind tags which event-source slice a candidate was predicted
// against.
type kind int

const (
	kindInteraction kind = iota
	kindLocal
	kindGlobal
)

// candidate is one predicted future event, pending in the priority
// queue. Grounded on dynamo's CSSorter entry: an absolute fire time,
// the event source to dispatch to, the participant(s), and the
// generation counter(s) captured at prediction time — the lazy
// deletion check of spec.md §4.4 step 2 compares these against the
// participants' live counters at pop time.
type candidate struct {
	t      float64
	kind   kind
	srcIdx int
	p1, p2 int // p2 == -1 for a single-particle (local/global) candidate
	gen1   uint64
	gen2   uint64
	seq    int64 // insertion order, for stable tie-breaking on equal t
}

// eventHeap is a textbook container/heap min-heap on (t, seq), kept in
// its own file since it's pure plumbing with no domain content.
type eventHeap []candidate

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].t != h[j].t {
		return h[i].t < h[j].t
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(candidate))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
