package flappy

import "fmt"

// Cause explains why an entity left the round.
type Cause int

const (
	CauseNone        Cause = iota // Still flying when the round ended
	CauseCollision                // Hit a pipe
	CauseOutOfBounds              // Hit the floor or flew over the top
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "survived"
	case CauseCollision:
		return "collided"
	case CauseOutOfBounds:
		return "out-of-bounds"
	default:
		return fmt.Sprintf("Cause(%d)", int(c))
	}
}

// EventKind identifies a lifecycle event emitted by a tick.
type EventKind int

const (
	EventPassed      EventKind = iota + 1 // Entity was alive when an obstacle was cleared
	EventCollided                         // Entity eliminated by a pipe
	EventOutOfBounds                      // Entity eliminated by the playfield bounds
	EventRoundOver                        // Last event of a round
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPassed:
		return "passed"
	case EventCollided:
		return "collided"
	case EventOutOfBounds:
		return "out-of-bounds"
	case EventRoundOver:
		return "round-over"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a per-entity outcome reported to observers.
type Event struct {
	Kind    EventKind
	Agent   int // Entity ID, -1 for round events
	Tick    int
	Fitness float64 // Accumulator after the event
}

// Outcome is the terminal record of one entity.
type Outcome struct {
	ID      int
	Fitness float64
	Cause   Cause
	Tick    int // Tick of elimination, or last tick for survivors
}

// RoundResult summarises a finished (or aborted) round.
type RoundResult struct {
	Generation       int
	Score            int
	Ticks            int
	StoppedByCeiling bool
	Outcomes         []Outcome // Indexed by entity ID
}

// Best returns the outcome with the highest fitness. Ties go to the lower ID.
func (r RoundResult) Best() (Outcome, bool) {
	if len(r.Outcomes) == 0 {
		return Outcome{}, false
	}
	best := r.Outcomes[0]
	for _, o := range r.Outcomes[1:] {
		if o.Fitness > best.Fitness {
			best = o
		}
	}
	return best, true
}

// Survivors returns the number of entities still flying at the end.
func (r RoundResult) Survivors() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Cause == CauseNone {
			n++
		}
	}
	return n
}

// Observer receives a read-only view after every tick.
type Observer interface {
	Observe(snap Snapshot, events []Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap Snapshot, events []Event)

// Observe calls f.
func (f ObserverFunc) Observe(snap Snapshot, events []Event) {
	f(snap, events)
}
