package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sarchlab/dynamica/output"
	"github.com/sarchlab/dynamica/vec3"
)

func TestEnergyTrackerAccumulatesDeltasAndCounts(t *testing.T) {
	e := output.NewEnergyTracker()
	e.OnEvent(output.Core, output.EventData{
		Pairs: []output.ParticleDelta{
			{ID: 0, Mass: 2, PreVelocity: vec3.New(1, 0, 0), PostVelocity: vec3.New(-1, 0, 0), DeltaKE: 0, DeltaU: 0},
			{ID: 1, Mass: 1, PreVelocity: vec3.New(0, 0, 0), PostVelocity: vec3.New(2, 0, 0), DeltaKE: 0, DeltaU: 0},
		},
	})
	e.OnEvent(output.WellIn, output.EventData{
		Singles: []output.ParticleDelta{{ID: 2, DeltaKE: 1, DeltaU: -1}},
	})

	if e.TotalDeltaKE != 1 || e.TotalDeltaU != -1 {
		t.Fatalf("expected accumulated deltas (1,-1), got (%v,%v)", e.TotalDeltaKE, e.TotalDeltaU)
	}
	if e.TotalEnergyDrift() != 0 {
		t.Fatalf("expected zero net energy drift, got %v", e.TotalEnergyDrift())
	}
	if e.EventCount[output.Core] != 1 || e.EventCount[output.WellIn] != 1 {
		t.Fatalf("expected one Core and one WellIn event counted, got %v", e.EventCount)
	}
	// particle 0: mass 2 * dv(-2,0,0) = (-4,0,0); particle 1: mass 1 * dv(2,0,0) = (2,0,0)
	want := vec3.New(-2, 0, 0)
	if e.MomentumDrift != want {
		t.Fatalf("expected momentum drift %v, got %v", want, e.MomentumDrift)
	}
}

func TestCSVStatsWriterWritesHeaderOnceThenAppends(t *testing.T) {
	var buf bytes.Buffer
	w := output.NewCSVStatsWriter(&buf)

	e := output.NewEnergyTracker()
	if err := w.WriteRow(output.Snapshot(0, 0, e)); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.WriteRow(output.Snapshot(1, 1, e)); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 1 header line + 2 data lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "sim_time") {
		t.Fatalf("expected a header row naming sim_time, got %q", lines[0])
	}
}

func TestRejectionCounterTallies(t *testing.T) {
	r := output.NewRejectionCounter()
	r.RejectInteraction()
	r.RejectInteraction()
	r.RejectLocal()

	if r.Total() != 3 {
		t.Fatalf("expected total 3, got %d", r.Total())
	}
	if r.InteractionRejections != 2 || r.LocalRejections != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", r.InteractionRejections, r.LocalRejections)
	}
}
