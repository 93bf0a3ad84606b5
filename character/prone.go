package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
)

// BeginProne attempts to go prone. The character must be crouching on the ground with the prone key held
// and not be in another custom mode. Nothing changes if going prone is refused.
func (c *Character) BeginProne() bool {
	if !c.role.SimulatesCustomModes() || c.state.CustomMode != locomotion.CustomModeNone {
		return false
	}
	if !c.state.Crouched || !c.state.ProneKeyDown || !c.move.OnGround {
		return false
	}
	c.setCustomMode(locomotion.CustomModeProne)
	c.Dbg.Notify(DebugModeProne, true, "prone started")
	return true
}

// stepProne computes the velocity of a prone tick. Releasing the prone key ends it within the same tick.
func (c *Character) stepProne(s *movesim.State, in movesim.Input) bool {
	if !c.state.ProneKeyDown {
		c.Dbg.Notify(DebugModeProne, true, "prone ended: key released")
		c.EndProne()
		return false
	}
	vy := s.Vel.Y()
	c.stepper.GroundVelocity(s, in)
	hz := game.Horizontal(s.Vel)
	if l := hz.Len(); l > c.cfg.ProneSpeed {
		hz = hz.Mul(c.cfg.ProneSpeed / l)
	}
	if s.OnGround {
		vy = -c.stepper.Options.Gravity * in.DeltaTime
	} else {
		vy -= c.stepper.Options.Gravity * in.DeltaTime
	}
	s.Vel = mgl32.Vec3{hz.X(), vy, hz.Z()}
	return true
}

// EndProne ends prone, if the character is prone, restoring its default capsule.
func (c *Character) EndProne() {
	if !c.state.IsProne() {
		return
	}
	c.setCustomMode(locomotion.CustomModeNone)
}
