package flappy

import (
	"github.com/vovakirdan/flappy-evo/internal/config"
)

// noseDiveTilt is the tilt at which the wings stop flapping.
const noseDiveTilt = -80

// Bird is a flying entity. X never changes during a round; the world
// scrolls past it instead.
type Bird struct {
	X      float64
	Y      float64
	Vel    float64 // Vertical velocity set by the last jump
	Ticks  int     // Ticks since the last jump (or spawn)
	Tilt   float64 // Degrees, positive is nose up
	Height float64 // Y at the last jump, reference for the tilt-up window
	Frame  int     // Current silhouette frame

	animCount int
}

// NewBird creates a bird at rest at the given spawn position.
func NewBird(x, y float64) Bird {
	return Bird{X: x, Y: y, Height: y}
}

// Kinematics holds the flight constants shared by all birds in a round.
// All methods are pure functions of the bird state they are given.
type Kinematics struct {
	Acceleration     float64
	JumpVelocity     float64
	Terminal         float64 // Max displacement magnitude per tick
	RiseBoost        float64 // Extra upward displacement while rising
	MaxRotation      float64
	MinRotation      float64
	RotationVelocity float64
	TiltLift         float64
	AnimationTicks   int
}

// NewKinematics builds the flight model from configuration.
func NewKinematics(cfg config.BirdConfig) Kinematics {
	return Kinematics{
		Acceleration:     cfg.Acceleration,
		JumpVelocity:     cfg.JumpVelocity,
		Terminal:         cfg.TerminalDisplacement,
		RiseBoost:        cfg.RiseBoost,
		MaxRotation:      cfg.MaxRotation,
		MinRotation:      cfg.MinRotation,
		RotationVelocity: cfg.RotationVelocity,
		TiltLift:         cfg.TiltLift,
		AnimationTicks:   cfg.AnimationTicks,
	}
}

// Displacement returns the clamped displacement after t ticks at velocity v,
// before the rise boost, and whether the bird is rising.
func (k Kinematics) Displacement(v float64, t int) (d float64, rising bool) {
	tf := float64(t)
	d = v*tf + 0.5*k.Acceleration*tf*tf
	rising = d < 0

	if d >= k.Terminal {
		d = k.Terminal
	} else if d <= -k.Terminal {
		d = -k.Terminal
	}
	return d, rising
}

// Advance moves the bird by one tick and updates its tilt.
// It returns the displacement that was applied.
func (k Kinematics) Advance(b *Bird) float64 {
	b.Ticks++

	d, rising := k.Displacement(b.Vel, b.Ticks)
	if rising {
		d -= k.RiseBoost
	}
	b.Y += d

	if d < 0 || b.Y < b.Height+k.TiltLift {
		if b.Tilt < k.MaxRotation {
			b.Tilt = k.MaxRotation
		}
	} else if b.Tilt > k.MinRotation {
		b.Tilt -= k.RotationVelocity
		if b.Tilt < k.MinRotation {
			b.Tilt = k.MinRotation
		}
	}
	return d
}

// Jump gives the bird an upward impulse from its current height.
func (k Kinematics) Jump(b *Bird) {
	b.Vel = k.JumpVelocity
	b.Ticks = 0
	b.Height = b.Y
}

// Animate advances the wing cycle by one tick: n ticks each of frames
// 0, 1, 2 and 1, then one tick of frame 0 before the count restarts.
// A nose-diving bird holds its wings level.
func (k Kinematics) Animate(b *Bird) {
	n := k.AnimationTicks
	b.animCount++

	switch {
	case b.animCount <= n:
		b.Frame = 0
	case b.animCount <= 2*n:
		b.Frame = 1
	case b.animCount <= 3*n:
		b.Frame = 2
	case b.animCount <= 4*n:
		b.Frame = 1
	default:
		b.Frame = 0
		b.animCount = 0
	}

	if b.Tilt <= noseDiveTilt {
		b.Frame = 1
		b.animCount = 2 * n
	}
}
