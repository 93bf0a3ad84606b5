package prediction

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/locomotion"
)

func move(tick uint64) SavedMove {
	return SavedMove{
		Tick:              tick,
		DeltaTime:         1.0 / 60,
		Acceleration:      mgl32.Vec3{0, 0, 1},
		SprintRequested:   true,
		GaitSystemEnabled: true,
		Gait:              locomotion.GaitSprint,
		MoveInput:         mgl32.Vec2{0, 1},
		MoveWorldInput:    mgl32.Vec2{0, 1},
	}
}

func TestCompressedFlagsRoundTrip(t *testing.T) {
	for i := range 256 {
		flags := CompressedFlags(i)
		if got := Compress(flags.Intents()); got != flags {
			t.Fatalf("flags %08b round tripped to %08b", flags, got)
		}
	}
}

func TestCompressedFlagsLayout(t *testing.T) {
	flags := Compress(Intents{Walk: true, Aim: true, Slide: true, Crouch: true})
	if flags != 0b10101001 {
		t.Fatalf("unexpected layout %08b", flags)
	}
}

func TestUpdateFromCompressedFlags(t *testing.T) {
	m := move(1)
	m.UpdateFromCompressedFlags(Compress(Intents{Strafe: true, Prone: true}))
	if m.SprintRequested || !m.Strafing || !m.ProneKeyDown || m.WallRunKeyDown {
		t.Fatalf("unexpected intents %+v", m.Intents())
	}
}

func TestCanCombineWith(t *testing.T) {
	a, b := move(1), move(2)
	if !a.CanCombineWith(b, DefaultMaxCombinedDelta) {
		t.Fatal("expected identical moves to combine")
	}

	mutations := map[string]func(m *SavedMove){
		"walk":     func(m *SavedMove) { m.WalkRequested = true },
		"sprint":   func(m *SavedMove) { m.SprintRequested = false },
		"strafe":   func(m *SavedMove) { m.Strafing = true },
		"aim":      func(m *SavedMove) { m.Aiming = true },
		"crouch":   func(m *SavedMove) { m.Crouched = true },
		"wall-run": func(m *SavedMove) { m.WallRunKeyDown = true },
		"slide":    func(m *SavedMove) { m.SlideKeyDown = true },
		"prone":    func(m *SavedMove) { m.ProneKeyDown = true },
		"gait":     func(m *SavedMove) { m.Gait = locomotion.GaitRun },
		"mode":     func(m *SavedMove) { m.EndCustomMode = locomotion.CustomModeSliding },
		"accel":    func(m *SavedMove) { m.Acceleration = mgl32.Vec3{1, 0, 0} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			other := move(2)
			mutate(&other)
			if a.CanCombineWith(other, DefaultMaxCombinedDelta) {
				t.Fatalf("expected a differing %s to prevent combining", name)
			}
		})
	}

	if a.CanCombineWith(b, 1.0/60) {
		t.Fatal("expected the delta time limit to prevent combining")
	}
}

func TestBufferFlushCombines(t *testing.T) {
	buf := NewBuffer(0, 0.06)
	for tick := uint64(1); tick <= 3; tick++ {
		if err := buf.Record(move(tick)); err != nil {
			t.Fatal(err)
		}
	}
	aim := move(4)
	aim.Aiming = true
	if err := buf.Record(aim); err != nil {
		t.Fatal(err)
	}

	out := buf.Flush()
	if len(out) != 2 {
		t.Fatalf("expected two network updates, got %d", len(out))
	}
	if out[0].FirstTick != 1 || out[0].Tick != 3 {
		t.Fatalf("expected ticks 1-3 to combine, got %d-%d", out[0].FirstTick, out[0].Tick)
	}
	if out[1].FirstTick != 4 || !out[1].Aiming {
		t.Fatalf("expected the aim change to be sent separately, got %+v", out[1])
	}
	if again := buf.Flush(); len(again) != 0 {
		t.Fatalf("expected nothing left to flush, got %d", len(again))
	}
	if buf.Len() != 4 {
		t.Fatalf("expected flushed moves to stay pending, got %d", buf.Len())
	}
}

func TestBufferAcknowledge(t *testing.T) {
	buf := NewBuffer(0, DefaultMaxCombinedDelta)
	for tick := uint64(1); tick <= 5; tick++ {
		if err := buf.Record(move(tick)); err != nil {
			t.Fatal(err)
		}
	}
	if n := buf.Acknowledge(3); n != 3 {
		t.Fatalf("expected three acknowledged moves, got %d", n)
	}
	pending := buf.Pending()
	if len(pending) != 2 || pending[0].Tick != 4 || pending[1].Tick != 5 {
		t.Fatalf("unexpected pending moves %+v", pending)
	}
	if n := buf.Acknowledge(2); n != 0 {
		t.Fatalf("expected an older acknowledgement to be ignored, got %d", n)
	}
	if err := buf.Record(move(3)); err == nil {
		t.Fatal("expected an acknowledged tick to be rejected")
	}
	if err := buf.Record(move(5)); err == nil {
		t.Fatal("expected a duplicate tick to be rejected")
	}
	if tick, ok := buf.LastAcknowledged(); !ok || tick != 3 {
		t.Fatalf("unexpected last acknowledged tick %d", tick)
	}
}

func TestBufferMaxPending(t *testing.T) {
	buf := NewBuffer(3, DefaultMaxCombinedDelta)
	for tick := uint64(1); tick <= 5; tick++ {
		if err := buf.Record(move(tick)); err != nil {
			t.Fatal(err)
		}
	}
	pending := buf.Pending()
	if len(pending) != 3 || pending[0].Tick != 3 {
		t.Fatalf("expected the oldest moves to be dropped, got %+v", pending)
	}
}
