package character

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/replication"
	"github.com/oomph-ac/locomotion/surface"
)

const dt = float32(1.0 / 60)

type recordingHandler struct {
	NopHandler
	events []string
}

func (h *recordingHandler) HandleGaitChanged(old, new locomotion.Gait) {
	h.events = append(h.events, fmt.Sprintf("gait:%v>%v", old, new))
}

func (h *recordingHandler) HandleWallRunStarted(side locomotion.WallRunSide) {
	h.events = append(h.events, "wallrun_start:"+side.String())
}

func (h *recordingHandler) HandleWallRunEnded() { h.events = append(h.events, "wallrun_end") }
func (h *recordingHandler) HandleSlideStarted() { h.events = append(h.events, "slide_start") }
func (h *recordingHandler) HandleSlideEnded()   { h.events = append(h.events, "slide_end") }
func (h *recordingHandler) HandleProneStarted() { h.events = append(h.events, "prone_start") }
func (h *recordingHandler) HandleProneEnded()   { h.events = append(h.events, "prone_end") }

func (h *recordingHandler) HandleCorrection(tick uint64, replayed int) {
	h.events = append(h.events, fmt.Sprintf("correction:%d:%d", tick, replayed))
}

func (h *recordingHandler) has(event string) bool {
	return slices.Contains(h.events, event)
}

func floorWorld() *surface.BoxWorld {
	w := surface.NewBoxWorld()
	w.Add(cube.Box(-10000, -100, -10000, 10000, 0, 10000))
	return w
}

// wallWorld holds a single wall spanning x in [-200, -50] and no floor.
func wallWorld() *surface.BoxWorld {
	w := surface.NewBoxWorld()
	w.Add(cube.Box(-200, -1000, -1000, -50, 1000, 1000))
	return w
}

func newCharacter(t *testing.T, w *surface.BoxWorld, mutate func(o *Options)) (*Character, *recordingHandler) {
	t.Helper()
	h := &recordingHandler{}
	opts := DefaultOptions()
	opts.Collider, opts.Tracer, opts.Handler = w, w, h
	if mutate != nil {
		mutate(&opts)
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("unable to create character: %v", err)
	}
	return c, h
}

func grounded(o *Options) {
	o.OnGround = true
}

var forward = Input{MoveInput: mgl32.Vec2{0, 1}, MoveWorldInput: mgl32.Vec2{0, 1}, DeltaTime: dt}

func TestNewRejectsInvalidCapsule(t *testing.T) {
	opts := DefaultOptions()
	opts.HalfHeight = 0
	if _, err := New(opts); err == nil {
		t.Fatal("expected error for zero half height")
	}
	opts = DefaultOptions()
	opts.HalfHeight = 20
	if _, err := New(opts); err == nil {
		t.Fatal("expected error for half height below the slide capsule")
	}
}

func TestTickMissingContext(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), func(o *Options) {
		o.Collider = nil
		o.Position = mgl32.Vec3{0, 50, 0}
	})
	if _, ok := c.Tick(replication.RoleAutonomous, forward); ok {
		t.Fatal("expected tick without collider to be skipped")
	}
	if c.Position() != (mgl32.Vec3{0, 50, 0}) || c.CurrentTick() != 0 {
		t.Fatalf("expected no state change, got pos=%v tick=%d", c.Position(), c.CurrentTick())
	}

	c, _ = newCharacter(t, floorWorld(), grounded)
	in := forward
	in.DeltaTime = 0
	if _, ok := c.Tick(replication.RoleAutonomous, in); ok {
		t.Fatal("expected tick without time to be skipped")
	}
}

func TestWalkingAndGaitNotifications(t *testing.T) {
	c, h := newCharacter(t, floorWorld(), grounded)
	for range 30 {
		if _, ok := c.Tick(replication.RoleAutonomous, forward); !ok {
			t.Fatal("expected tick to be simulated")
		}
	}
	if c.Gait() != locomotion.GaitRun {
		t.Fatalf("expected run gait, got %v", c.Gait())
	}
	if !c.OnGround() || c.Position().Y() != 0 {
		t.Fatalf("expected to stay on the floor, got %v", c.Position())
	}
	if c.Velocity().Z() <= 0 {
		t.Fatalf("expected forward velocity, got %v", c.Velocity())
	}

	sprint := forward
	sprint.Sprint = true
	c.Tick(replication.RoleAutonomous, sprint)
	if c.Gait() != locomotion.GaitSprint || !h.has("gait:run>sprint") {
		t.Fatalf("expected sprint gait notification, got %v %v", c.Gait(), h.events)
	}

	moveInput, worldInput, ok := c.State().Input.Lookup(c.CurrentTick())
	if !ok || moveInput != sprint.MoveInput || worldInput != sprint.MoveWorldInput {
		t.Fatalf("expected input cache for tick %d, got %v %v %v", c.CurrentTick(), moveInput, worldInput, ok)
	}
	if _, _, ok := c.State().Input.Lookup(c.CurrentTick() - 1); ok {
		t.Fatal("expected input cache to miss for an older tick")
	}
}

func TestRotationModeInvariant(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.Aim, in.DesiredYaw = true, 90
	c.Tick(replication.RoleAutonomous, in)
	if c.RotationMode() != locomotion.RotationModeFaceTarget {
		t.Fatalf("expected face target while aiming, got %v", c.RotationMode())
	}
	if !game.Float32ApproxEq(c.Yaw(), 90) {
		t.Fatalf("expected to snap to desired yaw on the ground, got %v", c.Yaw())
	}

	c.Tick(replication.RoleAutonomous, forward)
	if c.RotationMode() != locomotion.RotationModeOrientToMovement {
		t.Fatalf("expected orient to movement, got %v", c.RotationMode())
	}
	if !game.Float32ApproxEq(game.WrapYawDelta(c.Yaw()), 0) {
		t.Fatalf("expected to face the acceleration, got %v", c.Yaw())
	}

	proxy, _ := newCharacter(t, floorWorld(), nil)
	s := c.Snapshot()
	s.Flags = prediction.Compress(prediction.Intents{Strafe: true})
	proxy.ApplySnapshot(replication.RoleSimulated, s)
	if proxy.RotationMode() != locomotion.RotationModeFaceTarget {
		t.Fatalf("expected proxy to face target when strafing, got %v", proxy.RotationMode())
	}
}

func TestWallRun(t *testing.T) {
	c, h := newCharacter(t, wallWorld(), func(o *Options) {
		o.Yaw = 180
	})
	in := Input{MoveInput: mgl32.Vec2{0, 1}, MoveWorldInput: mgl32.Vec2{0, -1}, Sprint: true, WallRun: true, DeltaTime: dt}

	if _, ok := c.Tick(replication.RoleAutonomous, in); !ok {
		t.Fatal("expected tick to be simulated")
	}
	st := c.State()
	if st.CustomMode != locomotion.CustomModeWallRunning {
		t.Fatalf("expected wall-run to start, got %v", st.CustomMode)
	}
	if st.WallRunSide != locomotion.WallRunSideRight {
		t.Fatalf("expected right side, got %v", st.WallRunSide)
	}
	if !game.Float32ApproxEq(st.WallRunDirection.Dot(mgl32.Vec3{0, 0, -1}), 1) {
		t.Fatalf("unexpected wall-run direction %v", st.WallRunDirection)
	}
	if !game.Float32ApproxEq(c.Velocity().Z(), -625) || c.Velocity().Y() != 0 {
		t.Fatalf("unexpected wall-run velocity %v", c.Velocity())
	}
	if c.Movement().Mode != movesim.ModeCustom || !c.Movement().PlaneConstrained {
		t.Fatalf("expected custom movement with plane constraint, got %+v", c.Movement())
	}
	if !h.has("wallrun_start:right") {
		t.Fatalf("expected wall-run notification, got %v", h.events)
	}

	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsWallRunning() {
		t.Fatal("expected wall-run to continue")
	}

	in.WallRun = false
	c.Tick(replication.RoleAutonomous, in)
	if c.CustomMode() != locomotion.CustomModeNone || c.Movement().Mode != movesim.ModeFalling {
		t.Fatalf("expected to fall after releasing the key, got %v %v", c.CustomMode(), c.Movement().Mode)
	}
	if c.Movement().PlaneConstrained || c.State().WallRunDirection != (mgl32.Vec3{}) {
		t.Fatal("expected wall-run context to be cleared")
	}
	if !h.has("wallrun_end") {
		t.Fatalf("expected wall-run end notification, got %v", h.events)
	}
	c.EndWallRun()
}

func TestWallRunRefused(t *testing.T) {
	c, h := newCharacter(t, wallWorld(), func(o *Options) {
		o.Yaw = 180
	})
	// Sprint is required for locally controlled characters.
	in := Input{MoveWorldInput: mgl32.Vec2{0, -1}, WallRun: true, DeltaTime: dt}
	c.Tick(replication.RoleAutonomous, in)
	if c.CustomMode() != locomotion.CustomModeNone {
		t.Fatal("expected wall-run to be refused without sprint")
	}

	w := wallWorld()
	w.Add(cube.Box(-10000, -100, -10000, 10000, 0, 10000))
	c, h = newCharacter(t, w, func(o *Options) {
		o.Yaw, o.OnGround = 180, true
	})
	before := c.State()
	if c.BeginWallRun(replication.RoleAutonomous) {
		t.Fatal("expected wall-run to be refused on the ground")
	}
	if c.State() != before || len(h.events) != 0 {
		t.Fatal("expected refused wall-run not to change state")
	}
}

func TestWallRunFromImpact(t *testing.T) {
	c, h := newCharacter(t, wallWorld(), func(o *Options) {
		o.Yaw = 90
	})
	c.SetVelocity(mgl32.Vec3{-600, 0, 0})
	in := Input{MoveWorldInput: mgl32.Vec2{-1, 0}, Sprint: true, WallRun: true, DeltaTime: dt}
	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsWallRunning() {
		t.Fatalf("expected wall-run to start on impact, got %v (pos=%v)", c.CustomMode(), c.Position())
	}
	if len(h.events) == 0 {
		t.Fatal("expected wall-run notification")
	}
}

func TestWallRunEndsOnLanding(t *testing.T) {
	c, h := newCharacter(t, wallWorld(), func(o *Options) {
		o.Yaw = 180
	})
	in := Input{MoveWorldInput: mgl32.Vec2{0, -1}, Sprint: true, WallRun: true, DeltaTime: dt}
	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsWallRunning() {
		t.Fatal("expected wall-run to start")
	}
	stepperHooks{c: c}.OnLanded(&c.move)
	if c.State().IsWallRunning() || !h.has("wallrun_end") {
		t.Fatal("expected landing to end the wall-run")
	}
}

func TestSlide(t *testing.T) {
	c, h := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.Sprint, in.Slide = true, true

	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsSliding() {
		t.Fatalf("expected slide to start, got %v (gait=%v)", c.CustomMode(), c.Gait())
	}
	if _, hh := c.Capsule(); hh != c.Config().SlideCapsuleHalfHeight {
		t.Fatalf("expected slide capsule, got %v", hh)
	}
	if speed := game.Vec3HzLen(c.Velocity()); speed >= 800 || speed < 780 {
		t.Fatalf("expected slide speed to decelerate from 800, got %v", speed)
	}

	// No other custom mode may start while sliding.
	in.Crouch, in.Prone = true, true
	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsSliding() {
		t.Fatalf("expected slide to continue, got %v", c.CustomMode())
	}

	in.Slide = false
	c.Tick(replication.RoleAutonomous, in)
	if c.State().IsSliding() {
		t.Fatal("expected slide to end after releasing the key")
	}
	if _, hh := c.Capsule(); hh != game.DefaultCapsuleHalfHeight {
		t.Fatalf("expected default capsule after slide, got %v", hh)
	}
	if !h.has("slide_start") || !h.has("slide_end") {
		t.Fatalf("expected slide notifications, got %v", h.events)
	}
	c.EndSlide()
}

func TestSlideEndsBelowMinimumSpeedInSameTick(t *testing.T) {
	c, h := newCharacter(t, floorWorld(), func(o *Options) {
		o.OnGround = true
		o.Config.SlideSpeed = 250
	})
	in := forward
	in.Sprint, in.Slide, in.DeltaTime = true, true, 0.1

	c.Tick(replication.RoleAutonomous, in)
	if c.CustomMode() != locomotion.CustomModeNone {
		t.Fatalf("expected slide to end within the tick, got %v", c.CustomMode())
	}
	if _, hh := c.Capsule(); hh != game.DefaultCapsuleHalfHeight {
		t.Fatalf("expected capsule to be restored, got %v", hh)
	}
	if c.Movement().Mode != movesim.ModeWalking {
		t.Fatalf("expected walking after slide, got %v", c.Movement().Mode)
	}
	if !h.has("slide_start") || !h.has("slide_end") {
		t.Fatalf("expected slide notifications, got %v", h.events)
	}
}

func TestSlideRefusedWhenCrouched(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.Sprint, in.Slide, in.Crouch = true, true, true
	c.Tick(replication.RoleAutonomous, in)
	if c.State().IsSliding() {
		t.Fatal("expected slide to be refused while crouching")
	}
}

func TestProne(t *testing.T) {
	c, h := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.Crouch, in.Prone = true, true

	c.Tick(replication.RoleAutonomous, in)
	if !c.State().IsProne() {
		t.Fatalf("expected to go prone, got %v", c.CustomMode())
	}
	if _, hh := c.Capsule(); hh != c.Config().ProneCapsuleHalfHeight {
		t.Fatalf("expected prone capsule, got %v", hh)
	}
	for range 60 {
		c.Tick(replication.RoleAutonomous, in)
	}
	if speed := game.Vec3HzLen(c.Velocity()); speed > c.Config().ProneSpeed+1e-3 {
		t.Fatalf("expected prone speed to be capped at %v, got %v", c.Config().ProneSpeed, speed)
	}
	if !c.OnGround() {
		t.Fatal("expected to stay on the ground while prone")
	}

	in.Prone = false
	c.Tick(replication.RoleAutonomous, in)
	if c.State().IsProne() {
		t.Fatal("expected prone to end within the tick the key was released")
	}
	if _, hh := c.Capsule(); hh != game.DefaultCapsuleHalfHeight {
		t.Fatalf("expected default capsule, got %v", hh)
	}
	if !h.has("prone_start") || !h.has("prone_end") {
		t.Fatalf("expected prone notifications, got %v", h.events)
	}
	c.EndProne()
}

func TestCapsuleRoundTrip(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), grounded)
	if err := c.SetCapsuleSize(50, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, hh := c.Capsule(); r != 50 || hh != 100 {
		t.Fatalf("expected capsule (50, 100), got (%v, %v)", r, hh)
	}
	if err := c.SetCapsuleSize(50, 10); err == nil {
		t.Fatal("expected error for a capsule smaller than the slide capsule")
	}
	if err := c.SetCapsuleSize(0, 100); err == nil {
		t.Fatal("expected error for zero radius")
	}

	in := forward
	in.Crouch, in.Prone = true, true
	c.Tick(replication.RoleAutonomous, in)
	if err := c.SetCapsuleSize(45, 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, hh := c.Capsule(); hh != c.Config().ProneCapsuleHalfHeight {
		t.Fatalf("expected prone capsule to stay while prone, got %v", hh)
	}
	in.Prone = false
	c.Tick(replication.RoleAutonomous, in)
	if r, hh := c.Capsule(); r != 45 || hh != 90 {
		t.Fatalf("expected new default capsule after prone, got (%v, %v)", r, hh)
	}
}

func TestProxy(t *testing.T) {
	owner, _ := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.Sprint, in.Slide = true, true
	owner.Tick(replication.RoleAutonomous, in)
	if !owner.State().IsSliding() {
		t.Fatal("expected owner to slide")
	}

	proxy, h := newCharacter(t, floorWorld(), grounded)
	if _, ok := proxy.Tick(replication.RoleSimulated, in); ok {
		t.Fatal("expected proxies not to simulate")
	}
	if proxy.ApplySnapshot(replication.RoleAutonomous, owner.Snapshot()) {
		t.Fatal("expected owners not to apply snapshots")
	}
	if !proxy.ApplySnapshot(replication.RoleSimulated, owner.Snapshot()) {
		t.Fatal("expected snapshot to be applied")
	}
	if !proxy.State().IsSliding() || !h.has("slide_start") {
		t.Fatalf("expected proxy to adopt the slide, got %v %v", proxy.CustomMode(), h.events)
	}
	if _, hh := proxy.Capsule(); hh != owner.Config().SlideCapsuleHalfHeight {
		t.Fatalf("expected proxy to adopt the slide capsule, got %v", hh)
	}
	if proxy.Position() != owner.Position() || !proxy.State().SprintRequested {
		t.Fatal("expected proxy to adopt position and intents")
	}
	if proxy.ApplySnapshot(replication.RoleSimulated, owner.Snapshot()) {
		t.Fatal("expected unchanged snapshot to be dropped")
	}
	if proxy.BeginSlide() || proxy.BeginProne() || proxy.BeginWallRun(replication.RoleSimulated) {
		t.Fatal("expected proxies never to enter custom modes locally")
	}

	stale := owner.Snapshot()
	stale.Tick = 0
	stale.Position = mgl32.Vec3{100, 0, 0}
	if proxy.ApplySnapshot(replication.RoleSimulated, stale) {
		t.Fatal("expected stale snapshot to be dropped")
	}
}

func TestAuthorityTickAcknowledges(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), func(o *Options) {
		o.OnGround, o.HostOwned = true, true
	})
	for range 3 {
		c.Tick(replication.RoleAuthority, forward)
	}
	if c.Buffer().Len() != 0 {
		t.Fatalf("expected authority to acknowledge its own moves, got %d pending", c.Buffer().Len())
	}
	if c.LastServerMove() != 3 {
		t.Fatalf("expected last server move 3, got %d", c.LastServerMove())
	}
}

func TestServerMoveAndReconcile(t *testing.T) {
	owner, h := newCharacter(t, floorWorld(), grounded)
	authority, _ := newCharacter(t, floorWorld(), grounded)

	for range 5 {
		owner.Tick(replication.RoleAutonomous, forward)
	}
	moves := owner.Buffer().Pending()
	if len(moves) != 5 {
		t.Fatalf("expected 5 pending moves, got %d", len(moves))
	}
	predicted := owner.Position()

	authority.Teleport(mgl32.Vec3{10, 0, 0})
	msg := authority.ServerMove(moves[0])
	correction, ok := msg.(*replication.CorrectionMessage)
	if !ok {
		t.Fatalf("expected correction, got %T", msg)
	}
	if authority.ServerMove(moves[0]) != nil {
		t.Fatal("expected stale move to be ignored")
	}

	replayed, err := owner.Reconcile(correction.Tick, correction.Snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replayed != 4 {
		t.Fatalf("expected 4 replayed moves, got %d", replayed)
	}
	if !h.has("correction:1:4") {
		t.Fatalf("expected correction notification, got %v", h.events)
	}
	if !game.Float32ApproxEq(owner.Position().X(), 10) || !game.Float32ApproxEq(owner.Position().Z(), predicted.Z()) {
		t.Fatalf("expected corrected position (10, 0, %v), got %v", predicted.Z(), owner.Position())
	}

	pending := owner.Buffer().Pending()
	last := uint64(1)
	for _, m := range pending {
		if m.Tick <= last {
			t.Fatalf("expected replayed moves in order, got %d after %d", m.Tick, last)
		}
		last = m.Tick
		if !game.Float32ApproxEq(m.EndPosition.X(), 10) {
			t.Fatalf("expected replayed move %d to end at the corrected position, got %v", m.Tick, m.EndPosition)
		}
		if _, ok := authority.ServerMove(m).(*replication.AckMessage); !ok {
			t.Fatalf("expected replayed move %d to be acknowledged", m.Tick)
		}
	}
	if owner.Acknowledge(5) != 4 || owner.Buffer().Len() != 0 {
		t.Fatal("expected every move to be acknowledged")
	}
}

func TestServerMovesPrefersCorrection(t *testing.T) {
	owner, _ := newCharacter(t, floorWorld(), grounded)
	authority, _ := newCharacter(t, floorWorld(), grounded)
	for range 3 {
		owner.Tick(replication.RoleAutonomous, forward)
	}
	moves := owner.FlushMoves()
	if len(moves) == 0 {
		t.Fatal("expected flushed moves")
	}
	if _, ok := authority.ServerMoves(moves).(*replication.AckMessage); !ok {
		t.Fatal("expected identical moves to be acknowledged")
	}

	for range 3 {
		owner.Tick(replication.RoleAutonomous, forward)
	}
	moves = owner.FlushMoves()
	moves[0].EndPosition = moves[0].EndPosition.Add(mgl32.Vec3{50, 0, 0})
	msg, ok := authority.ServerMoves(moves).(*replication.CorrectionMessage)
	if !ok {
		t.Fatal("expected a correction")
	}
	if msg.Tick != authority.LastServerMove() {
		t.Fatalf("expected correction for the last processed move, got %d", msg.Tick)
	}
}

func TestReconcileRejectsInvalidSnapshot(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), grounded)
	s := c.Snapshot()
	s.CustomMode = locomotion.CustomModeSliding
	if _, err := c.Reconcile(0, s); err == nil {
		t.Fatal("expected error for custom mode without custom movement")
	}
	s.MovementMode = movesim.ModeCustom
	if _, err := c.Reconcile(0, s); err == nil {
		t.Fatal("expected error for slide with the default capsule")
	}
}

func TestDebugger(t *testing.T) {
	mode, ok := ParseDebugMode("wall_run")
	if !ok || mode != DebugModeWallRun {
		t.Fatalf("unexpected debug mode %d %v", mode, ok)
	}
	if _, ok := ParseDebugMode("nope"); ok {
		t.Fatal("expected unknown debug mode")
	}

	c, _ := newCharacter(t, floorWorld(), grounded)
	var lines []string
	c.Dbg.Sink = func(mode int, msg string) {
		lines = append(lines, DebugModeName(mode)+": "+msg)
	}
	c.Tick(replication.RoleAutonomous, forward)
	if len(lines) != 0 {
		t.Fatalf("expected no output with every mode disabled, got %v", lines)
	}
	c.Dbg.Toggle(DebugModeMovementSim)
	c.Tick(replication.RoleAutonomous, forward)
	if len(lines) == 0 {
		t.Fatal("expected movement trace output")
	}
	c.Dbg.Toggle(DebugModeMovementSim)
	if c.Dbg.Enabled(DebugModeMovementSim) {
		t.Fatal("expected mode to be disabled again")
	}

	if got := c.Dbg.Watched(DebugModeGait); got != "[]" {
		t.Fatalf("expected nothing watched with the mode disabled, got %q", got)
	}
	c.Dbg.Enable(DebugModeGait)
	c.Tick(replication.RoleAutonomous, forward)
	if got := c.Dbg.Watched(DebugModeGait); !strings.HasPrefix(got, "[gait=run max_speed=") {
		t.Fatalf("unexpected watched gait values %q", got)
	}

	lines = lines[:0]
	c.Dbg.Enable(DebugModePrediction)
	c.Dbg.NotifyValues(DebugModePrediction, true, "values", "tick", 3, "ok", true)
	if len(lines) != 1 || lines[0] != "prediction: values [tick=3 ok=true]" {
		t.Fatalf("unexpected value trace %v", lines)
	}
}

func TestSavedMoveReadsInputCache(t *testing.T) {
	c, _ := newCharacter(t, floorWorld(), grounded)
	in := forward
	in.MoveWorldInput = mgl32.Vec2{0.5, 0.5}
	m, ok := c.Tick(replication.RoleAutonomous, in)
	if !ok {
		t.Fatal("expected tick to be simulated")
	}
	_, world, ok := c.State().Input.Lookup(m.Tick)
	if !ok || world != in.MoveWorldInput || m.MoveWorldInput != world {
		t.Fatalf("expected saved move to carry the cached input, got %v (cache %v %v)", m.MoveWorldInput, world, ok)
	}

	authority, _ := newCharacter(t, floorWorld(), grounded)
	authority.ServerMove(m)
	if _, world, ok := authority.State().Input.Lookup(m.Tick); !ok || world != in.MoveWorldInput {
		t.Fatalf("expected authority to cache the input of the received move, got %v %v", world, ok)
	}
}
