package character

import (
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/oerror"
)

// setCustomMode leaves the current custom mode, running its exit side effects, and enters the given one.
// Leaving to CustomModeNone puts the character back into walking or falling depending on whether it is on
// the ground.
func (c *Character) setCustomMode(mode locomotion.CustomMode) {
	old := c.state.CustomMode
	if old == mode {
		return
	}
	assert.IsTrue(mode.Valid(), game.ErrorInternalMultipleModes, mode)

	switch old {
	case locomotion.CustomModeWallRunning:
		c.move.ReleasePlaneConstraint()
	case locomotion.CustomModeSliding, locomotion.CustomModeProne:
		c.setHalfHeight(c.state.DefaultHalfHeight)
	}
	side := c.state.WallRunSide
	if mode != locomotion.CustomModeWallRunning {
		c.state.ClearWallRun()
	}
	c.state.CustomMode = mode

	switch mode {
	case locomotion.CustomModeNone:
		if c.move.OnGround {
			c.stepper.SetMode(&c.move, movesim.ModeWalking)
		} else {
			c.stepper.SetMode(&c.move, movesim.ModeFalling)
		}
	case locomotion.CustomModeWallRunning:
		c.move.SetPlaneConstraint(game.Up)
		c.stepper.SetMode(&c.move, movesim.ModeCustom)
		side = c.state.WallRunSide
	case locomotion.CustomModeSliding:
		c.setHalfHeight(c.cfg.SlideCapsuleHalfHeight)
		c.stepper.SetMode(&c.move, movesim.ModeCustom)
	case locomotion.CustomModeProne:
		c.setHalfHeight(c.cfg.ProneCapsuleHalfHeight)
		c.stepper.SetMode(&c.move, movesim.ModeCustom)
	}
	c.notifyCustomModeChange(old, mode, side)
}

// notifyCustomModeChange fires the handler notifications for a transition between two custom modes.
func (c *Character) notifyCustomModeChange(old, new locomotion.CustomMode, side locomotion.WallRunSide) {
	c.Dbg.Notify(DebugModeMovementSim, old != new, "custom mode %v -> %v", old, new)
	if c.replaying || old == new {
		return
	}
	switch old {
	case locomotion.CustomModeWallRunning:
		c.handler.HandleWallRunEnded()
	case locomotion.CustomModeSliding:
		c.handler.HandleSlideEnded()
	case locomotion.CustomModeProne:
		c.handler.HandleProneEnded()
	}
	switch new {
	case locomotion.CustomModeWallRunning:
		c.handler.HandleWallRunStarted(side)
	case locomotion.CustomModeSliding:
		c.handler.HandleSlideStarted()
	case locomotion.CustomModeProne:
		c.handler.HandleProneStarted()
	}
}

// halfHeightFor returns the capsule half height a character has while in the given custom mode.
func (c *Character) halfHeightFor(mode locomotion.CustomMode) float32 {
	switch mode {
	case locomotion.CustomModeSliding:
		return c.cfg.SlideCapsuleHalfHeight
	case locomotion.CustomModeProne:
		return c.cfg.ProneCapsuleHalfHeight
	default:
		return c.state.DefaultHalfHeight
	}
}

// setHalfHeight resizes the capsule. The bottom of the capsule stays where it is.
func (c *Character) setHalfHeight(halfHeight float32) {
	assert.IsTrue(
		halfHeight == c.state.DefaultHalfHeight || halfHeight == c.cfg.SlideCapsuleHalfHeight || halfHeight == c.cfg.ProneCapsuleHalfHeight,
		game.ErrorInternalInvalidCapsule,
		halfHeight,
	)
	c.move.HalfHeight = halfHeight
}

// Capsule returns the current radius and half height of the collision capsule.
func (c *Character) Capsule() (radius, halfHeight float32) {
	return c.move.Radius, c.move.HalfHeight
}

// DefaultCapsule returns the capsule size the character returns to when leaving a slide or prone.
func (c *Character) DefaultCapsule() (radius, halfHeight float32) {
	return c.state.DefaultRadius, c.state.DefaultHalfHeight
}

// SetCapsuleSize changes the default capsule of the character. The new size is applied right away unless
// the character is in a mode that shrinks its capsule, in which case it is applied when leaving that mode.
func (c *Character) SetCapsuleSize(radius, halfHeight float32) error {
	if radius <= 0 || halfHeight <= 0 {
		return oerror.New(game.ErrorInternalInvalidCapsule, halfHeight)
	}
	if err := c.cfg.Validate(halfHeight); err != nil {
		return err
	}
	c.state.DefaultRadius, c.state.DefaultHalfHeight = radius, halfHeight
	c.move.Radius = radius
	if !c.state.IsSliding() && !c.state.IsProne() {
		c.move.HalfHeight = halfHeight
	}
	return nil
}
