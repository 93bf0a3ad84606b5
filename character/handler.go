package character

import "github.com/oomph-ac/locomotion/locomotion"

// Handler is notified of locomotion transitions, for consumption by camera, animation and audio systems.
// Notifications are only fired for simulated ticks and applied snapshots, never for replayed moves.
type Handler interface {
	// HandleGaitChanged is called when the gait of the character changes.
	HandleGaitChanged(old, new locomotion.Gait)
	// HandleWallRunStarted is called when the character starts running along a wall on the given side.
	HandleWallRunStarted(side locomotion.WallRunSide)
	// HandleWallRunEnded is called when a wall-run ends for any reason.
	HandleWallRunEnded()
	HandleSlideStarted()
	HandleSlideEnded()
	HandleProneStarted()
	HandleProneEnded()
	// HandleCorrection is called after the authority corrected the character and the given amount of
	// moves was replayed on top of the correction.
	HandleCorrection(tick uint64, replayed int)
}

// NopHandler implements Handler without doing anything. It may be embedded to only implement some of the
// notifications.
type NopHandler struct{}

func (NopHandler) HandleGaitChanged(locomotion.Gait, locomotion.Gait) {}
func (NopHandler) HandleWallRunStarted(locomotion.WallRunSide)         {}
func (NopHandler) HandleWallRunEnded()                                 {}
func (NopHandler) HandleSlideStarted()                                 {}
func (NopHandler) HandleSlideEnded()                                   {}
func (NopHandler) HandleProneStarted()                                 {}
func (NopHandler) HandleProneEnded()                                   {}
func (NopHandler) HandleCorrection(uint64, int)                        {}
