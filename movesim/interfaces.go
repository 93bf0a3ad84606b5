package movesim

import "github.com/ethaniccc/float32-cube/cube"

// Collider bridges the world collision used to clip movement.
type Collider interface {
	NearbyBBoxes(bb cube.BBox) []cube.BBox
}

// Hooks are the capabilities a character hands to the stepper. The stepper calls them every tick, so values
// they return are never cached between ticks.
type Hooks interface {
	// MaxSpeed returns the max horizontal speed for the tick.
	MaxSpeed(s *State) float32
	// MaxAcceleration returns the acceleration applied with full input.
	MaxAcceleration(s *State) float32
	// BrakingDeceleration returns the deceleration applied when braking.
	BrakingDeceleration(s *State, hasInput bool) float32
	// GroundFriction returns the friction applied to grounded movement.
	GroundFriction(s *State) float32

	// StepCustom computes the velocity of a tick in ModeCustom. It returns false if the custom mode ended
	// and the tick should be simulated by the standard mode the state was left in.
	StepCustom(s *State, in Input) bool

	// OnModeChanged is called after the mode of the state changes.
	OnModeChanged(s *State, old, new Mode)
	// OnImpact is called when horizontal movement is blocked by collision.
	OnImpact(s *State, impact Impact)
	// OnLanded is called on the tick a character touches the ground after being airborne.
	OnLanded(s *State)
}

// NopHooks implements Hooks with the default movement model.
type NopHooks struct{}

func (NopHooks) MaxSpeed(*State) float32                  { return DefaultMaxSpeed }
func (NopHooks) MaxAcceleration(*State) float32           { return DefaultMaxAcceleration }
func (NopHooks) BrakingDeceleration(*State, bool) float32 { return DefaultBrakingDeceleration }
func (NopHooks) GroundFriction(*State) float32            { return DefaultGroundFriction }
func (NopHooks) StepCustom(*State, Input) bool            { return false }
func (NopHooks) OnModeChanged(*State, Mode, Mode)         {}
func (NopHooks) OnImpact(*State, Impact)                  {}
func (NopHooks) OnLanded(*State)                          {}
