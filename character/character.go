package character

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
	"github.com/oomph-ac/locomotion/surface"
)

// DefaultPositionCorrectionThreshold is the distance between the client reported and the authoritative end
// position of a move above which the authority sends a correction.
const DefaultPositionCorrectionThreshold = 3.0

// Options hold everything needed to spawn a character.
type Options struct {
	Config locomotion.Config
	// Movement holds the integrator constants. The zero value uses movesim.DefaultOptions.
	Movement movesim.Options

	Radius     float32
	HalfHeight float32
	Position   mgl32.Vec3
	Yaw        float32
	// OnGround spawns the character standing on the ground rather than falling.
	OnGround bool

	Collider movesim.Collider
	Tracer   surface.Tracer
	// Actor is the owner ID of the collision of the character itself, ignored by its own traces.
	Actor surface.ActorID
	// HostOwned is true when the authority instance of the character is controlled by the host.
	HostOwned bool

	MaxPendingMoves             int
	MaxCombinedDelta            float32
	PositionCorrectionThreshold float32

	Handler Handler
	Logger  *slog.Logger
}

// DefaultOptions returns the options of a default character at the origin.
func DefaultOptions() Options {
	return Options{
		Config:                      locomotion.DefaultConfig(),
		Movement:                    movesim.DefaultOptions(),
		Radius:                      game.DefaultCapsuleRadius,
		HalfHeight:                  game.DefaultCapsuleHalfHeight,
		MaxPendingMoves:             prediction.DefaultMaxPendingMoves,
		MaxCombinedDelta:            prediction.DefaultMaxCombinedDelta,
		PositionCorrectionThreshold: DefaultPositionCorrectionThreshold,
	}
}

// Character is a single instance of a character: the authority, the predicting owner or a proxy. It owns
// the locomotion state, the physical movement state and the prediction buffer of the character. A
// character is not safe for concurrent use.
type Character struct {
	Dbg *Debugger

	cfg   locomotion.Config
	speed locomotion.SpeedModel

	state locomotion.State
	move  movesim.State

	stepper movesim.Stepper
	tracer  surface.Tracer
	actor   surface.ActorID

	buffer *prediction.Buffer

	handler Handler
	log     *slog.Logger

	hostOwned           bool
	correctionThreshold float32

	// role is the role of the tick currently being simulated.
	role replication.SimulationRole
	tick uint64
	// serverTick is the last move tick processed by the authority.
	serverTick uint64
	replaying  bool

	proxyFilter replication.Deduplicator
}

// New spawns a character with the given options.
func New(opts Options) (*Character, error) {
	if opts.Radius <= 0 || opts.HalfHeight <= 0 {
		return nil, oerror.New(game.ErrorInternalInvalidCapsule, opts.HalfHeight)
	}
	if err := opts.Config.Validate(opts.HalfHeight); err != nil {
		return nil, err
	}
	if opts.Movement.Gravity == 0 && opts.Movement.AirControl == 0 {
		opts.Movement.Gravity, opts.Movement.AirControl = game.DefaultGravity, game.DefaultAirControl
	}
	if opts.Handler == nil {
		opts.Handler = NopHandler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Character{
		cfg:                 opts.Config,
		speed:               opts.Config.SpeedModel(),
		state:               locomotion.NewState(opts.Radius, opts.HalfHeight),
		tracer:              opts.Tracer,
		actor:               opts.Actor,
		buffer:              prediction.NewBuffer(opts.MaxPendingMoves, opts.MaxCombinedDelta),
		handler:             opts.Handler,
		log:                 opts.Logger,
		hostOwned:           opts.HostOwned,
		correctionThreshold: opts.PositionCorrectionThreshold,
	}
	c.Dbg = NewDebugger(c.log)
	c.move = movesim.State{
		Pos:        opts.Position,
		LastPos:    opts.Position,
		Yaw:        opts.Yaw,
		Radius:     opts.Radius,
		HalfHeight: opts.HalfHeight,
		Mode:       movesim.ModeFalling,
	}
	if opts.OnGround {
		c.move.Mode, c.move.OnGround = movesim.ModeWalking, true
	}

	movement := opts.Movement
	movement.Debugf = func(format string, args ...any) {
		c.Dbg.Notify(DebugModeMovementSim, true, format, args...)
	}
	c.stepper = movesim.Stepper{
		Collider: opts.Collider,
		Hooks:    stepperHooks{c: c},
		Options:  movement,
	}
	return c, nil
}

// SetHandler sets the handler notified of transitions of the character.
func (c *Character) SetHandler(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	c.handler = h
}

// Handler ...
func (c *Character) Handler() Handler {
	return c.handler
}

// State returns a copy of the locomotion state of the character.
func (c *Character) State() locomotion.State {
	return c.state
}

// Movement returns a copy of the physical movement state of the character.
func (c *Character) Movement() movesim.State {
	return c.move
}

// Config returns the locomotion tunables of the character.
func (c *Character) Config() locomotion.Config {
	return c.cfg
}

// Gait returns the current gait.
func (c *Character) Gait() locomotion.Gait {
	return c.state.Gait
}

// CustomMode returns the current custom mode.
func (c *Character) CustomMode() locomotion.CustomMode {
	return c.state.CustomMode
}

// RotationMode returns whether the character currently faces an external target or its movement.
func (c *Character) RotationMode() locomotion.RotationMode {
	return c.state.RotationMode()
}

// Position ...
func (c *Character) Position() mgl32.Vec3 {
	return c.move.Pos
}

// Velocity ...
func (c *Character) Velocity() mgl32.Vec3 {
	return c.move.Vel
}

// Yaw ...
func (c *Character) Yaw() float32 {
	return c.move.Yaw
}

// OnGround ...
func (c *Character) OnGround() bool {
	return c.move.OnGround
}

// CurrentTick returns the tick of the last move simulated by the character.
func (c *Character) CurrentTick() uint64 {
	return c.tick
}

// Buffer returns the prediction buffer of the character.
func (c *Character) Buffer() *prediction.Buffer {
	return c.buffer
}

// SetVelocity overwrites the velocity of the character, for example to apply knockback.
func (c *Character) SetVelocity(vel mgl32.Vec3) {
	c.move.SetVel(vel)
}

// Teleport moves the character to the given position without collision.
func (c *Character) Teleport(pos mgl32.Vec3) {
	c.move.SetPos(pos)
	c.move.LastPos = pos
}
