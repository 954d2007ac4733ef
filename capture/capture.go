// Package capture implements the persistent per-unordered-pair state
// interactions with a non-hard-core boundary need (spec.md §4.5):
// membership in a square well, or a step index in a stepped potential.
// Grounded on dynamo's ISingleCapture/IMultiCapture
// (original_source/.../dynamics/interactions/captures.cpp).
package capture

// Key is a canonical unordered pair key: the lower id always sorts
// first, matching dynamo's cMapKey / the (p1.getID() < p2.getID())
// ordering used throughout captures.cpp.
type Key struct {
	A, B int
}

// NewKey canonicalizes i,j into a Key with A<B.
func NewKey(i, j int) Key {
	if i < j {
		return Key{i, j}
	}
	return Key{j, i}
}

// Tester is the interaction-supplied predicate used to seed a map
// over all pairs (captures.cpp's captureTest). For Single maps, only
// the boolean return matters; for Multi maps, the int step value is
// also kept.
type Tester interface {
	CaptureTest(i, j int) (captured bool, step int)
}

// Seed populates m by testing every unordered pair of the n particles
// 0..n-1, mirroring ISingleCapture::initCaptureMap /
// IMultiCapture::initCaptureMap's O(N^2) scan. It is only run when the
// map has no persisted snapshot state to load (dynamo's noXmlLoad
// guard) — a loaded snapshot's capture map is used as-is instead.
func Seed(m Map, n int, t Tester) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if captured, step := t.CaptureTest(i, j); captured {
				m.Set(i, j, step)
			}
		}
	}
}

// Map is the common contract shared by Single and Multi: test, set,
// and clear capture state for an unordered pair.
type Map interface {
	// IsCaptured reports whether i,j currently have any capture state.
	IsCaptured(i, j int) bool
	// Set records i,j as captured with the given value (ignored by
	// Single; the step index for Multi).
	Set(i, j, value int)
	// Clear removes any capture state for i,j. No-op if absent.
	Clear(i, j int)
	// Len returns the number of captured pairs.
	Len() int
}
