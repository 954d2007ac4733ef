package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/snapshot"
	"github.com/sarchlab/dynamica/vec3"
)

func TestSaveLoadRoundTripsParticlesAndCaptures(t *testing.T) {
	store := particle.NewStore(2)
	store.Get(0).Position = vec3.New(1, 2, 3)
	store.Get(1).Velocity = vec3.New(4, 5, 6)
	store.Get(1).Generation = 7

	single := capture.NewSingle()
	single.Set(0, 1, 0)

	s := snapshot.New()
	s.SimTime = 12.5
	s.Particles = snapshot.CaptureParticles(store)
	s.Captures = snapshot.CollectSingle("well", single)
	s.RNGSeed, s.RNGUniformCount, s.RNGNormalCount = 7, 100, 3

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := snapshot.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RunID != s.RunID {
		t.Fatalf("expected run id to round-trip, want %v got %v", s.RunID, loaded.RunID)
	}
	if loaded.SimTime != 12.5 {
		t.Fatalf("expected sim time to round-trip, got %v", loaded.SimTime)
	}

	restored := particle.NewStore(2)
	snapshot.ApplyParticles(loaded.Particles, restored)
	if restored.Get(0).Position != vec3.New(1, 2, 3) {
		t.Fatalf("expected particle 0's position to round-trip, got %v", restored.Get(0).Position)
	}
	if restored.Get(1).Generation != 7 {
		t.Fatalf("expected particle 1's generation to round-trip, got %v", restored.Get(1).Generation)
	}

	restoredMap := capture.NewSingle()
	snapshot.ApplyCaptures(loaded.Captures, map[string]*capture.Single{"well": restoredMap}, nil)
	if !restoredMap.IsCaptured(0, 1) {
		t.Fatalf("expected the captured pair to round-trip")
	}
}
