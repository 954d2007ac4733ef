package capture_test

import (
	"testing"

	"github.com/sarchlab/dynamica/capture"
)

type thresholdTester struct{ within func(i, j int) bool }

func (t thresholdTester) CaptureTest(i, j int) (bool, int) {
	return t.within(i, j), 0
}

func TestNewKeyCanonicalizes(t *testing.T) {
	if capture.NewKey(3, 1) != capture.NewKey(1, 3) {
		t.Fatalf("keys should canonicalize regardless of argument order")
	}
}

func TestSingleSetClear(t *testing.T) {
	s := capture.NewSingle()
	if s.IsCaptured(0, 1) {
		t.Fatalf("fresh map should not report captured")
	}
	s.Set(1, 0, 0)
	if !s.IsCaptured(0, 1) {
		t.Fatalf("Set should capture regardless of argument order")
	}
	if s.Len() != 1 {
		t.Fatalf("Len got %d want 1", s.Len())
	}
	s.Clear(0, 1)
	if s.IsCaptured(0, 1) || s.Len() != 0 {
		t.Fatalf("Clear should remove the pair")
	}
}

func TestMultiStepValue(t *testing.T) {
	m := capture.NewMulti()
	m.Set(2, 5, 3)
	v, ok := m.Step(5, 2)
	if !ok || v != 3 {
		t.Fatalf("Step got %v,%v want 3,true", v, ok)
	}
}

func TestSeedScansAllPairs(t *testing.T) {
	s := capture.NewSingle()
	capture.Seed(s, 4, thresholdTester{within: func(i, j int) bool { return j-i == 1 }})
	want := []capture.Key{{0, 1}, {1, 2}, {2, 3}}
	if s.Len() != len(want) {
		t.Fatalf("Len got %d want %d", s.Len(), len(want))
	}
	for _, k := range want {
		if !s.IsCaptured(k.A, k.B) {
			t.Fatalf("expected pair %v captured", k)
		}
	}
}
