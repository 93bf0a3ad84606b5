package character

import (
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
)

// stepperHooks feeds the speed model and custom modes of a character to its stepper. Every value is
// derived again each time the stepper asks.
type stepperHooks struct {
	c *Character
}

func (h stepperHooks) MaxSpeed(s *movesim.State) float32 {
	c := h.c
	switch c.state.CustomMode {
	case locomotion.CustomModeWallRunning:
		return c.cfg.WallRunSpeed
	case locomotion.CustomModeSliding:
		return c.cfg.SlideSpeed
	case locomotion.CustomModeProne:
		return c.cfg.ProneSpeed
	}
	blend := c.speed.DirectionBlend(s.Vel, s.Yaw, c.state.RotationMode())
	return c.speed.MaxSpeed(c.state.Gait, c.state.Crouched, blend)
}

func (h stepperHooks) MaxAcceleration(s *movesim.State) float32 {
	return h.c.speed.MaxAcceleration(h.c.state.Gait, game.Vec3HzLen(s.Vel))
}

func (h stepperHooks) BrakingDeceleration(_ *movesim.State, hasInput bool) float32 {
	return h.c.speed.BrakingDeceleration(hasInput)
}

func (h stepperHooks) GroundFriction(s *movesim.State) float32 {
	return h.c.speed.GroundFriction(h.c.state.Gait, game.Vec3HzLen(s.Vel))
}

func (h stepperHooks) StepCustom(s *movesim.State, in movesim.Input) bool {
	c := h.c
	assert.IsTrue(c.role.SimulatesCustomModes(), game.ErrorInternalProxyCustomPhysic)
	switch c.state.CustomMode {
	case locomotion.CustomModeWallRunning:
		return c.stepWallRun(s, in)
	case locomotion.CustomModeSliding:
		return c.stepSlide(s, in)
	case locomotion.CustomModeProne:
		return c.stepProne(s, in)
	}
	return false
}

func (h stepperHooks) OnModeChanged(_ *movesim.State, old, new movesim.Mode) {
	h.c.Dbg.Notify(DebugModeMovementSim, true, "movement mode %v -> %v", old, new)
}

func (h stepperHooks) OnImpact(s *movesim.State, impact movesim.Impact) {
	c := h.c
	c.Dbg.Notify(DebugModeMovementSim, true, "impact normal=%v axis=%d blocked=%.4f", impact.Normal, impact.Axis, impact.Blocked)
	switch {
	case c.state.IsSliding():
		c.Dbg.Notify(DebugModeSlide, true, "slide ended by impact")
		c.EndSlide()
	case c.state.CustomMode == locomotion.CustomModeNone && s.Mode == movesim.ModeFalling:
		c.wallRunFromImpact(impact.Normal)
	}
}

func (h stepperHooks) OnLanded(*movesim.State) {
	if h.c.state.IsWallRunning() {
		h.c.Dbg.Notify(DebugModeWallRun, true, "wall-run ended by landing")
		h.c.EndWallRun()
	}
}
