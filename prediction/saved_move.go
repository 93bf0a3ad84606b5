package prediction

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
)

// SavedMove is one tick of recorded input and locomotion state, used to send moves to the authority and to
// replay them during reconciliation.
type SavedMove struct {
	// FirstTick is the first tick a combined move covers. It equals Tick for moves that were never combined.
	FirstTick uint64
	Tick      uint64
	DeltaTime float32

	Acceleration mgl32.Vec3
	DesiredYaw   float32

	WalkRequested   bool
	SprintRequested bool
	Strafing        bool
	Aiming          bool
	Crouched        bool

	WallRunKeyDown bool
	SlideKeyDown   bool
	ProneKeyDown   bool

	// GaitSystemEnabled reports whether Gait, MoveInput and MoveWorldInput were captured.
	GaitSystemEnabled bool
	Gait              locomotion.Gait
	MoveInput         mgl32.Vec2
	MoveWorldInput    mgl32.Vec2

	// EndPosition, EndVelocity and EndCustomMode are the locally simulated result of the move.
	EndPosition   mgl32.Vec3
	EndVelocity   mgl32.Vec3
	EndCustomMode locomotion.CustomMode
}

// Intents returns the intents captured by the move.
func (m SavedMove) Intents() Intents {
	return Intents{
		Walk:    m.WalkRequested,
		Sprint:  m.SprintRequested,
		Strafe:  m.Strafing,
		Aim:     m.Aiming,
		WallRun: m.WallRunKeyDown,
		Slide:   m.SlideKeyDown,
		Prone:   m.ProneKeyDown,
		Crouch:  m.Crouched,
	}
}

// CompressedFlags returns the intents of the move packed for transmission.
func (m SavedMove) CompressedFlags() CompressedFlags {
	return Compress(m.Intents())
}

// UpdateFromCompressedFlags overwrites the intents of the move with the ones packed in flags.
func (m *SavedMove) UpdateFromCompressedFlags(flags CompressedFlags) {
	in := flags.Intents()
	m.WalkRequested = in.Walk
	m.SprintRequested = in.Sprint
	m.Strafing = in.Strafe
	m.Aiming = in.Aim
	m.WallRunKeyDown = in.WallRun
	m.SlideKeyDown = in.Slide
	m.ProneKeyDown = in.Prone
	m.Crouched = in.Crouch
}

// CanCombineWith reports whether next may be sent as part of the same network update as m. Every tracked
// boolean and enum must match exactly, the input must be the same and the combined delta time may not exceed
// maxDelta.
func (m SavedMove) CanCombineWith(next SavedMove, maxDelta float32) bool {
	if m.Intents() != next.Intents() {
		return false
	}
	if m.GaitSystemEnabled != next.GaitSystemEnabled || m.Gait != next.Gait {
		return false
	}
	if m.EndCustomMode != next.EndCustomMode {
		return false
	}
	if m.Acceleration != next.Acceleration || !game.Float32ApproxEq(m.DesiredYaw, next.DesiredYaw) {
		return false
	}
	if m.GaitSystemEnabled && (m.MoveInput != next.MoveInput || m.MoveWorldInput != next.MoveWorldInput) {
		return false
	}
	return m.DeltaTime+next.DeltaTime <= maxDelta
}

// CombineWith returns m extended by next. The combined move starts where m started and ends where next ended.
func (m SavedMove) CombineWith(next SavedMove) SavedMove {
	combined := next
	combined.FirstTick = m.FirstTick
	combined.DeltaTime = m.DeltaTime + next.DeltaTime
	return combined
}
