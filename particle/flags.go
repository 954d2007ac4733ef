package particle

// Flags is a small bitset of per-particle state flags.
type Flags uint32

const (
	// DYNAMIC marks a particle as subject to gravity (and to the
	// multiplied flow term in general). Non-DYNAMIC particles are
	// typically infinite-mass or sleeping.
	DYNAMIC Flags = 1 << iota
	// ALIVE marks a particle as present in the simulation. Dead
	// particles are never streamed, never predicted against, and
	// never appear in a cell.
	ALIVE
	// SLEEPING is set by the Sleep system (system.Sleep) on a
	// particle whose kinetic energy and position/velocity have been
	// static for a configured window. A sleeping particle's velocity
	// is held at zero until a wake-up condition fires.
	SLEEPING
	// LOCKED is a reserved bit: nothing in the module sets or reads
	// it, and no scheduling decision depends on it.
	LOCKED
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Set returns f with mask set.
func (f Flags) Set(mask Flags) Flags { return f | mask }

// Clear returns f with mask cleared.
func (f Flags) Clear(mask Flags) Flags { return f &^ mask }
