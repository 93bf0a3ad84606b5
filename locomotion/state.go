package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Gait is the discrete ground speed tier of a character.
type Gait uint8

const (
	GaitWalk Gait = iota
	GaitRun
	GaitSprint
)

func (g Gait) String() string {
	switch g {
	case GaitWalk:
		return "walk"
	case GaitRun:
		return "run"
	case GaitSprint:
		return "sprint"
	default:
		return "unknown"
	}
}

// CustomMode is one of the exclusive extended locomotion states layered on top of walking and falling.
type CustomMode uint8

const (
	CustomModeNone CustomMode = iota
	CustomModeWallRunning
	CustomModeSliding
	CustomModeProne
)

func (m CustomMode) String() string {
	switch m {
	case CustomModeNone:
		return "none"
	case CustomModeWallRunning:
		return "wall_running"
	case CustomModeSliding:
		return "sliding"
	case CustomModeProne:
		return "prone"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known custom mode.
func (m CustomMode) Valid() bool {
	return m <= CustomModeProne
}

// WallRunSide is the side of the character the wall being ran on is at.
type WallRunSide uint8

const (
	WallRunSideLeft WallRunSide = iota
	WallRunSideRight
)

func (s WallRunSide) String() string {
	if s == WallRunSideRight {
		return "right"
	}
	return "left"
}

// InputCache holds the move input vectors last computed for a tick. The stepper invalidates it before every
// tick, so a lookup only succeeds for the tick that stored it.
type InputCache struct {
	Tick           uint64
	MoveInput      mgl32.Vec2
	MoveWorldInput mgl32.Vec2
	Valid          bool
}

// Invalidate drops the cached input.
func (c *InputCache) Invalidate() {
	c.Valid = false
}

// Store caches the input vectors computed for the given tick.
func (c *InputCache) Store(tick uint64, moveInput, moveWorldInput mgl32.Vec2) {
	c.Tick = tick
	c.MoveInput = moveInput
	c.MoveWorldInput = moveWorldInput
	c.Valid = true
}

// Lookup returns the cached input if it was computed for the given tick.
func (c InputCache) Lookup(tick uint64) (moveInput, moveWorldInput mgl32.Vec2, ok bool) {
	if !c.Valid || c.Tick != tick {
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	}
	return c.MoveInput, c.MoveWorldInput, true
}

// State is the set of intents and modes describing how a character is currently moving. It is owned by the
// character, mutated by whichever side simulates it and overwritten on proxies by replicated snapshots.
type State struct {
	Gait Gait

	WalkRequested   bool
	SprintRequested bool
	Strafing        bool
	Aiming          bool
	Crouched        bool

	CustomMode CustomMode

	// WallRunDirection and WallRunSide are only meaningful while CustomMode is CustomModeWallRunning.
	WallRunDirection mgl32.Vec3
	WallRunSide      WallRunSide

	DefaultHalfHeight float32
	DefaultRadius     float32

	WallRunKeyDown bool
	SlideKeyDown   bool
	ProneKeyDown   bool

	Input InputCache
}

// NewState returns the spawn state of a character using a capsule of the given size.
func NewState(radius, halfHeight float32) State {
	return State{
		Gait:              GaitRun,
		DefaultRadius:     radius,
		DefaultHalfHeight: halfHeight,
	}
}

// IsWallRunning ...
func (s State) IsWallRunning() bool {
	return s.CustomMode == CustomModeWallRunning
}

// IsSliding ...
func (s State) IsSliding() bool {
	return s.CustomMode == CustomModeSliding
}

// IsProne ...
func (s State) IsProne() bool {
	return s.CustomMode == CustomModeProne
}

// RotationMode returns the rotation mode implied by the current aim and strafe flags.
func (s State) RotationMode() RotationMode {
	return RotationModeFor(s.Aiming, s.Strafing)
}

// ClearWallRun resets the wall-run context.
func (s *State) ClearWallRun() {
	s.WallRunDirection = mgl32.Vec3{}
	s.WallRunSide = WallRunSideLeft
}
