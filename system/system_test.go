package system

import (
	"math"
	"testing"

	"github.com/sarchlab/dynamica/bc"
	"github.com/sarchlab/dynamica/liouville"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// seqRNG cycles through fixed normal/uniform sequences, for tests that
// need to control several successive draws deterministically.
type seqRNG struct {
	normals  []float64
	uniforms []float64
	ni, ui   int
}

func (r *seqRNG) Normal() float64 {
	v := r.normals[r.ni%len(r.normals)]
	r.ni++
	return v
}

func (r *seqRNG) Uniform() float64 {
	v := r.uniforms[r.ui%len(r.uniforms)]
	r.ui++
	return v
}

func newStore(n int) (*particle.Store, *particle.MapProperties, bc.BC) {
	props := particle.NewMapProperties(n)
	for i := 0; i < n; i++ {
		props.SetMass(i, 1)
		props.SetDiameter(i, 1)
		props.SetElasticity(i, 1)
	}
	return particle.NewStore(n), props, bc.NewPeriodic(vec3.New(100, 100, 100))
}

func TestAndersenResamplesAPickedMemberAndReschedules(t *testing.T) {
	store, props, boundary := newStore(2)
	flow := liouville.NewNewtonian(props)
	rng := &seqRNG{normals: []float64{1, 2, 3}, uniforms: []float64{0.99}}
	a := NewAndersen(NewFullRange(2), flow, props, rng, 1, 2)

	firstDT := a.NextDT()
	if firstDT <= 0 {
		t.Fatalf("expected a positive first fire time, got %v", firstDT)
	}

	dKE := a.RunEvent(store, boundary)
	p := store.Get(1)
	if p.Velocity == vec3.Zero {
		t.Fatalf("expected the picked member's velocity to be resampled")
	}
	if dKE == 0 {
		t.Fatalf("expected a nonzero kinetic energy change from resampling")
	}
	if a.NextDT() <= 0 {
		t.Fatalf("expected RunEvent to redraw a positive next fire time, got %v", a.NextDT())
	}
}

func TestAndersenTunesMeanFreeTimeTowardSetPoint(t *testing.T) {
	store, props, boundary := newStore(1)
	flow := liouville.NewNewtonian(props)
	rng := &seqRNG{normals: []float64{1, 1, 1}, uniforms: []float64{0.5}}
	a := NewAndersen(NewFullRange(1), flow, props, rng, 10, 1)
	a.Tune, a.SetPoint, a.SetFrequency = true, 10, 1

	before := a.MeanFreeTime
	a.RunEvent(store, boundary)
	if a.MeanFreeTime == before {
		t.Fatalf("expected tuning to adjust MeanFreeTime after SetFrequency firings")
	}
}

func TestDSMCSpheresAcceptsAnApproachingPairAndRestoresTStep(t *testing.T) {
	store, props, boundary := newStore(2)
	flow := liouville.NewNewtonian(props)
	store.Get(0).Velocity = vec3.New(1, 1, 1)
	store.Get(1).Velocity = vec3.New(0, 0, 0)

	rng := &seqRNG{normals: []float64{1, 1, 1}, uniforms: []float64{0, 0.9, 0.1, 0}}
	d := NewDSMCSpheres(NewFullRange(2), 1, 0.5, 1, 0.5, 1000, flow, props, rng, 1)

	dKE := d.RunEvent(store, boundary)
	if d.NextDT() != d.TStep {
		t.Fatalf("expected dt to reset to TStep after firing, got %v", d.NextDT())
	}
	if dKE == 0 {
		t.Fatalf("expected the accepted pair's collision to change kinetic energy, rij anti-parallel to vij")
	}
}

func TestDSMCSpheresCalibrateDoesNotPanic(t *testing.T) {
	store, props, _ := newStore(4)
	flow := liouville.NewNewtonian(props)
	for i := 0; i < 4; i++ {
		store.Get(i).Velocity = vec3.New(float64(i), 0, 0)
	}
	rng := &seqRNG{normals: []float64{1, -1, 0.5}, uniforms: []float64{0.1, 0.4, 0.7, 0.9}}
	d := NewDSMCSpheres(NewFullRange(4), 1, 0.5, 1, 1, 1000, flow, props, rng, 0)
	d.Calibrate(store, bc.NewPeriodic(vec3.New(100, 100, 100)))
	if d.maxProb <= 0 {
		t.Fatalf("expected calibration to raise maxProb above zero, got %v", d.maxProb)
	}
}

func TestRingDSMCSamplesBondedPairsOnly(t *testing.T) {
	store, props, boundary := newStore(4)
	flow := liouville.NewNewtonian(props)
	store.Get(0).Velocity = vec3.New(0, 0, 0)
	store.Get(1).Velocity = vec3.New(1, 1, 1)
	store.Get(2).Velocity = vec3.New(0, 0, 0)
	store.Get(3).Velocity = vec3.New(-5, -5, -5)

	rng := &seqRNG{normals: []float64{1, 1, 1}, uniforms: []float64{0, 0.1, 0}}
	d := NewRingDSMC(NewIDRange(0, 1, 2, 3), 1, 0.5, 1, 1, 1000, flow, props, rng, 2)

	d.RunEvent(store, boundary)
	if store.Get(2).Velocity != vec3.New(0, 0, 0) || store.Get(3).Velocity != vec3.New(-5, -5, -5) {
		t.Fatalf("RingDSMC should only ever touch its own bonded pair, got p2=%v p3=%v", store.Get(2).Velocity, store.Get(3).Velocity)
	}
}

func TestRescaleMatchesTargetKineticEnergy(t *testing.T) {
	store, props, boundary := newStore(3)
	store.Get(0).Velocity = vec3.New(2, 0, 0)
	store.Get(1).Velocity = vec3.New(0, 3, 0)
	store.Get(2).Velocity = vec3.New(0, 0, 1)

	r := NewRescale(NewFullRange(3), props, 10, 1)
	r.RunEvent(store, boundary)

	ke := 0.0
	for i := 0; i < 3; i++ {
		ke += 0.5 * props.Mass(i) * store.Get(i).Velocity.Nrm2()
	}
	want := 1.5 * 1 * 3
	if math.Abs(ke-want) > 1e-9 {
		t.Fatalf("expected rescaled kinetic energy %v, got %v", want, ke)
	}
	if r.NextDT() != r.Period {
		t.Fatalf("expected dt to reset to Period after firing")
	}
}

func TestMaintainerFiresNotifyAndReschedules(t *testing.T) {
	store, _, boundary := newStore(1)
	called := false
	m := NewMaintainer(5, func() { called = true })
	m.RunEvent(store, boundary)
	if !called {
		t.Fatalf("expected Notify to be invoked")
	}
	if m.NextDT() != 5 {
		t.Fatalf("expected dt to reset to Period, got %v", m.NextDT())
	}
}

type fakeCellDims struct {
	dims         vec3.Vec
	reinitCalled bool
	reinitArg    float64
}

func (f *fakeCellDims) CellDimensions() vec3.Vec { return f.dims }
func (f *fakeCellDims) Reinitialise(minCellDim float64) {
	f.reinitCalled = true
	f.reinitArg = minCellDim
	f.dims = vec3.New(minCellDim, minCellDim, minCellDim)
}

func TestCompressionHackRebuildsAndReschedules(t *testing.T) {
	store, _, boundary := newStore(1)
	cells := &fakeCellDims{dims: vec3.New(2, 2, 2)}
	h := NewCompressionHack(0.01, 1, cells)

	firstDT := h.NextDT()
	h.RunEvent(store, boundary)
	if !cells.reinitCalled {
		t.Fatalf("expected RunEvent to rebuild the cell list")
	}
	if math.Abs(cells.reinitArg-1.0001*2) > 1e-9 {
		t.Fatalf("expected reinit around 1.0001x the prior min dimension, got %v", cells.reinitArg)
	}
	if h.NextDT() == firstDT {
		t.Fatalf("expected the rebuild to reschedule the next threshold time")
	}
}

func TestSleepParksAConvergedDynamicParticle(t *testing.T) {
	store, props, _ := newStore(2)
	s := NewSleep(NewFullRange(2), props, vec3.New(0, -1, 0), 0.5, 0.1)

	p0 := store.Get(0)
	p0.Position = vec3.New(0, 0, 0)
	p0.Velocity = vec3.New(0.01, 0, 0)
	s.Notify(0, 1, store)

	p0.Position = vec3.New(0.005, 0, 0)
	p0.Velocity = vec3.New(0.01, 0, 0)
	s.Notify(0, 1, store)

	if s.NextDT() != 0 {
		t.Fatalf("expected a queued state change to fire immediately, got dt=%v", s.NextDT())
	}

	s.RunEvent(store, bc.NewPeriodic(vec3.New(100, 100, 100)))
	if p0.Dynamic() {
		t.Fatalf("expected the converged particle to lose its DYNAMIC flag")
	}
	if !p0.Sleeping() {
		t.Fatalf("expected the converged particle to be marked SLEEPING")
	}
	if p0.Velocity != vec3.Zero {
		t.Fatalf("expected the sleeping particle's velocity to be zeroed, got %v", p0.Velocity)
	}
}

func TestUmbrellaChangesLevelOnBoundaryCrossing(t *testing.T) {
	store, props, boundary := newStore(2)
	flow := liouville.NewNewtonian(props)

	p0, p1 := store.Get(0), store.Get(1)
	p0.Position, p1.Position = vec3.New(0, 0, 0), vec3.New(1.1, 0, 0)
	p0.Velocity, p1.Velocity = vec3.New(5, 0, 0), vec3.New(-5, 0, 0)

	u := NewUmbrella(0, 1, 1, 1, 0.1, flow, props, store, boundary)
	if u.level != 0 {
		t.Fatalf("expected the pair to seed at level 0 near r=b, got %v", u.level)
	}

	dt := u.NextDT()
	if math.IsInf(dt, 1) {
		t.Fatalf("expected a finite predicted crossing time")
	}

	p0.Position = p0.Position.AddScaled(dt, p0.Velocity)
	p1.Position = p1.Position.AddScaled(dt, p1.Velocity)
	u.RunEvent(store, boundary)
	if u.level == 0 {
		t.Fatalf("expected the level to change after the predicted crossing fires")
	}
}
