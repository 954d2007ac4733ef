package particle

import "github.com/sarchlab/dynamica/vec3"

// Streamer advances a single particle's position/velocity/orientation
// by dt under whatever flow is currently active. It is implemented by
// liouville.Flow; defined here (rather than imported) to avoid an
// import cycle between particle and liouville.
type Streamer interface {
	Stream(p *Particle, dt float64)
	HasOrientationData() bool
}

// Store is the dense, bulk-allocated particle sequence (spec
// component A). Orientation data is a side table allocated only when
// needed.
type Store struct {
	particles    []Particle
	orientations map[int]*Orientation
}

// NewStore allocates a store for n particles, ids 0..n-1, all ALIVE.
func NewStore(n int) *Store {
	s := &Store{
		particles: make([]Particle, n),
	}
	for i := range s.particles {
		s.particles[i] = Particle{ID: i, Flags: ALIVE | DYNAMIC}
	}
	return s
}

// Len returns the number of particle slots (including dead ones).
func (s *Store) Len() int { return len(s.particles) }

// Get returns a pointer to the particle with the given id. The
// pointer is valid until the next call to Append/Remove.
func (s *Store) Get(id int) *Particle { return &s.particles[id] }

// ForEach calls f for every ALIVE particle in id order. Per spec.md
// §4.3, callers that need globally-consistent state (output, capture
// map seeding) must stream every particle to the current system time
// first.
func (s *Store) ForEach(f func(*Particle)) {
	for i := range s.particles {
		if s.particles[i].Alive() {
			f(&s.particles[i])
		}
	}
}

// Orientation returns (allocating on first use) the orientation side
// entry for id.
func (s *Store) Orientation(id int) *Orientation {
	if s.orientations == nil {
		s.orientations = make(map[int]*Orientation)
	}
	o, ok := s.orientations[id]
	if !ok {
		o = &Orientation{Axis: defaultAxis}
		s.orientations[id] = o
	}
	return o
}

var defaultAxis = vec3.New(1, 0, 0)

// Update streams the particle with the given id from its stored
// peculiar time to now, using flow, and advances its peculiar time to
// now. This is the "updateParticle" contract of spec.md §4.3: callers
// must invoke it before predicting or resolving any event involving
// the particle.
func (s *Store) Update(flow Streamer, id int, now float64) {
	p := &s.particles[id]
	dt := now - p.Time
	if dt == 0 {
		return
	}
	flow.Stream(p, dt)
	p.Time = now
}

// UpdatePair streams both participants of a pair event to the common
// time now, satisfying the "caller streams
// participants to a common time before calling" precondition of
// spec.md §4.1.
func (s *Store) UpdatePair(flow Streamer, i, j int, now float64) {
	s.Update(flow, i, now)
	s.Update(flow, j, now)
}

// BumpGeneration increments a particle's generation counter,
// invalidating any event payload that captured the old value (§4.4
// lazy deletion).
func (s *Store) BumpGeneration(id int) {
	s.particles[id].Generation++
}
