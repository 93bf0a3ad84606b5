package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
)

// BeginSlide attempts to start a slide. The character must be sprinting on the ground with the slide key
// held, not crouching and not in another custom mode. Nothing changes if the slide is refused.
func (c *Character) BeginSlide() bool {
	if !c.role.SimulatesCustomModes() || c.state.CustomMode != locomotion.CustomModeNone {
		return false
	}
	if c.state.Gait != locomotion.GaitSprint || !c.state.SlideKeyDown || !c.move.OnGround || c.state.Crouched {
		return false
	}

	heading := game.SafeNormalize(game.Horizontal(c.move.Vel))
	if heading.LenSqr() == 0 {
		heading = game.DirectionVector(c.move.Yaw)
	}
	c.setCustomMode(locomotion.CustomModeSliding)
	hz := heading.Mul(c.cfg.SlideSpeed)
	c.move.Vel = mgl32.Vec3{hz.X(), c.move.Vel.Y(), hz.Z()}
	c.Dbg.Notify(DebugModeSlide, true, "slide started (heading=%v)", heading)
	return true
}

// stepSlide computes the velocity of a sliding tick. It returns false if the slide ended.
func (c *Character) stepSlide(s *movesim.State, in movesim.Input) bool {
	if !c.state.SlideKeyDown || !s.OnGround {
		c.Dbg.Notify(DebugModeSlide, true, "slide ended (key=%v onGround=%v)", c.state.SlideKeyDown, s.OnGround)
		c.EndSlide()
		return false
	}
	hz := game.Horizontal(s.Vel)
	speed := hz.Len()
	if speed < c.cfg.MinSlideSpeed {
		c.Dbg.Notify(DebugModeSlide, true, "slide ended: speed %.2f below minimum", speed)
		c.EndSlide()
		return false
	}
	speed -= c.cfg.SlideDeceleration * in.DeltaTime
	if speed < c.cfg.MinSlideSpeed {
		c.Dbg.Notify(DebugModeSlide, true, "slide ended: decelerated to %.2f", speed)
		c.EndSlide()
		return false
	}
	hz = game.SafeNormalize(hz).Mul(speed)
	s.Vel = mgl32.Vec3{hz.X(), -c.stepper.Options.Gravity * in.DeltaTime, hz.Z()}
	return true
}

// EndSlide ends the slide of the character, if it is sliding, restoring its default capsule.
func (c *Character) EndSlide() {
	if !c.state.IsSliding() {
		return
	}
	c.setCustomMode(locomotion.CustomModeNone)
}
