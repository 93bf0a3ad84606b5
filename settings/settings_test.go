package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/locomotion"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatal("expected error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Fatalf("expected loaded settings to match the defaults:\n%+v\n%+v", s, DefaultSettings())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing settings file")
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	dat := []byte("locomotion:\n  stick_mode: variable_walk_run\n  slide:\n    speed: 900\nnetwork:\n  latency_ticks: 8\n")
	if err := os.WriteFile(path, dat, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Locomotion.Slide.Speed != 900 || s.Network.LatencyTicks != 8 {
		t.Fatalf("expected overridden values, got %+v", s)
	}
	if s.Locomotion.Slide.MinSpeed != DefaultSettings().Locomotion.Slide.MinSpeed {
		t.Fatal("expected values missing from the file to keep their defaults")
	}

	cfg, err := s.Locomotion.Config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StickMode != locomotion.StickModeVariableWalkRun || cfg.StrafeCurve == nil {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestOptions(t *testing.T) {
	s := DefaultSettings()
	opts, err := s.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Radius != s.Character.Radius || opts.Movement.Gravity != s.Character.Gravity {
		t.Fatalf("unexpected options %+v", opts)
	}

	s.Locomotion.StickMode = "joystick"
	if _, err := s.Options(); err == nil {
		t.Fatal("expected error for unknown stick mode")
	}
	s = DefaultSettings()
	s.Character.HalfHeight = 10
	if _, err := s.Options(); err == nil {
		t.Fatal("expected error for a capsule smaller than the slide capsule")
	}
}

func TestApplyDebug(t *testing.T) {
	dbg := character.NewDebugger(nil)
	if err := (Debug{Modes: []string{"wall_run", "prediction"}}).ApplyDebug(dbg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dbg.Enabled(character.DebugModeWallRun) || !dbg.Enabled(character.DebugModePrediction) || dbg.Enabled(character.DebugModeSlide) {
		t.Fatal("unexpected enabled debug modes")
	}
	if err := (Debug{Modes: []string{"everything"}}).ApplyDebug(dbg); err == nil {
		t.Fatal("expected error for unknown debug mode")
	}
}
