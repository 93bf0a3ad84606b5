package movesim

import "github.com/oomph-ac/locomotion/game"

// Options define the constants of the integrator.
type Options struct {
	Gravity float32
	// AirControl is the fraction of acceleration available while falling.
	AirControl float32

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		Gravity:    game.DefaultGravity,
		AirControl: game.DefaultAirControl,
	}
}

// Stepper is the generic movement integrator. It owns no character state: everything mode specific is
// asked of its hooks.
type Stepper struct {
	Collider Collider
	Hooks    Hooks
	Options  Options
}

func (s *Stepper) debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}
