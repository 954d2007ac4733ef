package rootsearch_test

import (
	"math"
	"testing"

	"github.com/sarchlab/dynamica/rootsearch"
)

// linearFn models f(t) = a + b*t, the simplest Streamable: exact
// after a single Newton step.
type linearFn struct {
	a, b float64
}

func (f *linearFn) F0() float64                  { return f.a }
func (f *linearFn) F1() float64                  { return f.b }
func (f *linearFn) F2() float64                  { return 0 }
func (f *linearFn) F1Max(float64) float64        { return math.Abs(f.b) }
func (f *linearFn) F2Max(float64) float64        { return 0 }
func (f *linearFn) Stream(dt float64)            { f.a += f.b * dt }
func (f *linearFn) Clone() rootsearch.Streamable { c := *f; return &c }

func TestHuntFindsLinearRoot(t *testing.T) {
	f := &linearFn{a: -5, b: 1} // root at t=5
	root, ok := rootsearch.Hunt(f, 1, 0, 10)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if math.Abs(root-5) > 1e-6 {
		t.Fatalf("root got %v want ~5", root)
	}
}

func TestHuntNoRootInWindow(t *testing.T) {
	f := &linearFn{a: -50, b: 1} // root at t=50, outside [0,10)
	_, ok := rootsearch.Hunt(f, 1, 0, 10)
	if ok {
		t.Fatalf("expected no convergence within window")
	}
}

// quadraticFn models f(t) = (t-tRoot)^2 - eps, approaching tangentially
// from below for small eps — exercises the curved (F2 != 0) branch.
type quadraticFn struct {
	t, tRoot, eps float64
}

func (f *quadraticFn) F0() float64 { return (f.t-f.tRoot)*(f.t-f.tRoot) - f.eps }
func (f *quadraticFn) F1() float64 { return 2 * (f.t - f.tRoot) }
func (f *quadraticFn) F2() float64 { return 2 }
func (f *quadraticFn) F1Max(length float64) float64 {
	return 2 * math.Max(math.Abs(f.tRoot), length)
}
func (f *quadraticFn) F2Max(float64) float64 { return 2 }
func (f *quadraticFn) Stream(dt float64)     { f.t += dt }
func (f *quadraticFn) Clone() rootsearch.Streamable {
	c := *f
	return &c
}

func TestHuntFindsQuadraticRoot(t *testing.T) {
	f := &quadraticFn{t: 0, tRoot: 5, eps: 1}
	root, ok := rootsearch.Hunt(f, 1, 0, 10)
	if !ok {
		t.Fatalf("expected convergence")
	}
	want := f.tRoot - math.Sqrt(f.eps)
	if math.Abs(root-want) > 1e-4 {
		t.Fatalf("root got %v want ~%v", root, want)
	}
}
