package snapshot

import (
	"github.com/sarchlab/dynamica/capture"
	"github.com/sarchlab/dynamica/particle"
	"github.com/sarchlab/dynamica/vec3"
)

// CaptureParticles records every ALIVE particle in store into
// ParticleState form.
func CaptureParticles(store *particle.Store) []ParticleState {
	out := make([]ParticleState, 0, store.Len())
	store.ForEach(func(p *particle.Particle) {
		out = append(out, ParticleState{
			ID:         p.ID,
			Position:   [3]float64{p.Position.X, p.Position.Y, p.Position.Z},
			Velocity:   [3]float64{p.Velocity.X, p.Velocity.Y, p.Velocity.Z},
			Time:       p.Time,
			Flags:      uint32(p.Flags),
			Generation: p.Generation,
		})
	})
	return out
}

// ApplyParticles writes every persisted ParticleState back into store.
func ApplyParticles(states []ParticleState, store *particle.Store) {
	for _, st := range states {
		p := store.Get(st.ID)
		p.Position = vec3.New(st.Position[0], st.Position[1], st.Position[2])
		p.Velocity = vec3.New(st.Velocity[0], st.Velocity[1], st.Velocity[2])
		p.Time = st.Time
		p.Flags = particle.Flags(st.Flags)
		p.Generation = st.Generation
	}
}

// CollectSingle records a capture.Single map's pairs under name.
func CollectSingle(name string, m *capture.Single) []CaptureEntry {
	pairs := m.Pairs()
	out := make([]CaptureEntry, 0, len(pairs))
	for _, k := range pairs {
		out = append(out, CaptureEntry{Interaction: name, A: k.A, B: k.B})
	}
	return out
}

// CollectMulti records a capture.Multi map's (pair, step) entries
// under name.
func CollectMulti(name string, m *capture.Multi) []CaptureEntry {
	entries := m.Entries()
	out := make([]CaptureEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, CaptureEntry{Interaction: name, A: e.A, B: e.B, Step: e.Step})
	}
	return out
}

// ApplyCaptures restores every persisted entry into whichever of
// singles/multis owns its Interaction name.
func ApplyCaptures(entries []CaptureEntry, singles map[string]*capture.Single, multis map[string]*capture.Multi) {
	for _, e := range entries {
		if m, ok := multis[e.Interaction]; ok {
			m.Set(e.A, e.B, e.Step)
			continue
		}
		if s, ok := singles[e.Interaction]; ok {
			s.Set(e.A, e.B, 0)
		}
	}
}
