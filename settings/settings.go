package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movesim"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/prediction"
	"gopkg.in/yaml.v3"
)

// Settings contains everything that can be configured about characters and the sessions they run in.
type Settings struct {
	Locomotion Locomotion `yaml:"locomotion"`
	Character  Character  `yaml:"character"`
	Network    Network    `yaml:"network"`
	Debug      Debug      `yaml:"debug"`
}

// Locomotion holds the tunables of the locomotion model.
type Locomotion struct {
	WalkSpeeds   locomotion.SpeedSet `yaml:"walk_speeds"`
	RunSpeeds    locomotion.SpeedSet `yaml:"run_speeds"`
	SprintSpeeds locomotion.SpeedSet `yaml:"sprint_speeds"`
	CrouchSpeeds locomotion.SpeedSet `yaml:"crouch_speeds"`
	// StrafeCurve holds the keys of the direction blend curve. No keys disables direction dependent speeds.
	StrafeCurve []locomotion.CurveKey `yaml:"strafe_curve"`

	UseGaitSystem          bool    `yaml:"use_gait_system"`
	StickMode              string  `yaml:"stick_mode"`
	AnalogWalkRunThreshold float32 `yaml:"analog_walk_run_threshold"`

	FallingRotationRate float32 `yaml:"falling_rotation_rate"`
	GroundRotationRate  float32 `yaml:"ground_rotation_rate"`
	WalkableFloorAngle  float32 `yaml:"walkable_floor_angle"`

	WallRun struct {
		Speed          float32 `yaml:"speed"`
		TraceTolerance float32 `yaml:"trace_tolerance"`
		GravityScale   float32 `yaml:"gravity_scale"`
		ProbeLead      float32 `yaml:"probe_lead"`
		ProbeReach     float32 `yaml:"probe_reach"`
	} `yaml:"wall_run"`
	Slide struct {
		Speed             float32 `yaml:"speed"`
		Deceleration      float32 `yaml:"deceleration"`
		MinSpeed          float32 `yaml:"min_speed"`
		CapsuleHalfHeight float32 `yaml:"capsule_half_height"`
	} `yaml:"slide"`
	Prone struct {
		Speed             float32 `yaml:"speed"`
		CapsuleHalfHeight float32 `yaml:"capsule_half_height"`
	} `yaml:"prone"`
}

// Character holds the physical properties of a character and its prediction buffer.
type Character struct {
	Radius     float32 `yaml:"radius"`
	HalfHeight float32 `yaml:"half_height"`
	Gravity    float32 `yaml:"gravity"`
	AirControl float32 `yaml:"air_control"`

	MaxPendingMoves             int     `yaml:"max_pending_moves"`
	MaxCombinedDelta            float32 `yaml:"max_combined_delta"`
	PositionCorrectionThreshold float32 `yaml:"position_correction_threshold"`
}

// Network holds the properties of the simulated network between the authority and clients.
type Network struct {
	// TickRate is the amount of ticks simulated every second.
	TickRate int `yaml:"tick_rate"`
	// LatencyTicks is the one way latency of every pipe, in ticks.
	LatencyTicks uint64 `yaml:"latency_ticks"`
	Proxies      int    `yaml:"proxies"`
}

// Debug holds the debug modes enabled on spawned characters.
type Debug struct {
	Modes []string `yaml:"modes,omitempty"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	cfg := locomotion.DefaultConfig()
	l := &s.Locomotion
	l.WalkSpeeds, l.RunSpeeds, l.SprintSpeeds, l.CrouchSpeeds = cfg.WalkSpeeds, cfg.RunSpeeds, cfg.SprintSpeeds, cfg.CrouchSpeeds
	l.StrafeCurve = locomotion.DefaultStrafeCurve().Keys()
	l.UseGaitSystem = cfg.UseGaitSystem
	l.StickMode = cfg.StickMode.String()
	l.AnalogWalkRunThreshold = cfg.AnalogWalkRunThreshold
	l.FallingRotationRate = cfg.FallingRotationRate
	l.GroundRotationRate = cfg.GroundRotationRate
	l.WalkableFloorAngle = cfg.WalkableFloorAngle

	l.WallRun.Speed = cfg.WallRunSpeed
	l.WallRun.TraceTolerance = cfg.WallRunTraceTolerance
	l.WallRun.GravityScale = cfg.WallRunGravityScale
	l.WallRun.ProbeLead = cfg.WallRunProbeLead
	l.WallRun.ProbeReach = cfg.WallRunProbeReach

	l.Slide.Speed = cfg.SlideSpeed
	l.Slide.Deceleration = cfg.SlideDeceleration
	l.Slide.MinSpeed = cfg.MinSlideSpeed
	l.Slide.CapsuleHalfHeight = cfg.SlideCapsuleHalfHeight

	l.Prone.Speed = cfg.ProneSpeed
	l.Prone.CapsuleHalfHeight = cfg.ProneCapsuleHalfHeight

	s.Character = Character{
		Radius:                      game.DefaultCapsuleRadius,
		HalfHeight:                  game.DefaultCapsuleHalfHeight,
		Gravity:                     game.DefaultGravity,
		AirControl:                  game.DefaultAirControl,
		MaxPendingMoves:             prediction.DefaultMaxPendingMoves,
		MaxCombinedDelta:            prediction.DefaultMaxCombinedDelta,
		PositionCorrectionThreshold: character.DefaultPositionCorrectionThreshold,
	}
	s.Network = Network{TickRate: 60, LatencyTicks: 3, Proxies: 1}
	return s
}

// Config returns the locomotion config described by the settings.
func (l Locomotion) Config() (locomotion.Config, error) {
	mode, ok := locomotion.ParseStickMode(l.StickMode)
	if !ok {
		return locomotion.Config{}, oerror.New("unknown stick mode %q", l.StickMode)
	}
	cfg := locomotion.Config{
		WalkSpeeds:   l.WalkSpeeds,
		RunSpeeds:    l.RunSpeeds,
		SprintSpeeds: l.SprintSpeeds,
		CrouchSpeeds: l.CrouchSpeeds,

		UseGaitSystem:          l.UseGaitSystem,
		StickMode:              mode,
		AnalogWalkRunThreshold: l.AnalogWalkRunThreshold,

		FallingRotationRate: l.FallingRotationRate,
		GroundRotationRate:  l.GroundRotationRate,
		WalkableFloorAngle:  l.WalkableFloorAngle,

		WallRunSpeed:          l.WallRun.Speed,
		WallRunTraceTolerance: l.WallRun.TraceTolerance,
		WallRunGravityScale:   l.WallRun.GravityScale,
		WallRunProbeLead:      l.WallRun.ProbeLead,
		WallRunProbeReach:     l.WallRun.ProbeReach,

		SlideSpeed:             l.Slide.Speed,
		SlideDeceleration:      l.Slide.Deceleration,
		MinSlideSpeed:          l.Slide.MinSpeed,
		SlideCapsuleHalfHeight: l.Slide.CapsuleHalfHeight,

		ProneSpeed:             l.Prone.Speed,
		ProneCapsuleHalfHeight: l.Prone.CapsuleHalfHeight,
	}
	if len(l.StrafeCurve) > 0 {
		cfg.StrafeCurve = locomotion.NewCurve(l.StrafeCurve...)
	}
	return cfg, nil
}

// Options returns the options of a character spawned with the settings. The collision, tracer, handler
// and logger are left for the caller to fill in.
func (s Settings) Options() (character.Options, error) {
	cfg, err := s.Locomotion.Config()
	if err != nil {
		return character.Options{}, err
	}
	if err := cfg.Validate(s.Character.HalfHeight); err != nil {
		return character.Options{}, err
	}
	opts := character.DefaultOptions()
	opts.Config = cfg
	opts.Movement = movesim.Options{Gravity: s.Character.Gravity, AirControl: s.Character.AirControl}
	opts.Radius, opts.HalfHeight = s.Character.Radius, s.Character.HalfHeight
	opts.MaxPendingMoves = s.Character.MaxPendingMoves
	opts.MaxCombinedDelta = s.Character.MaxCombinedDelta
	opts.PositionCorrectionThreshold = s.Character.PositionCorrectionThreshold
	return opts, nil
}

// ApplyDebug enables the configured debug modes on a debugger.
func (d Debug) ApplyDebug(dbg *character.Debugger) error {
	for _, name := range d.Modes {
		mode, ok := character.ParseDebugMode(name)
		if !ok {
			return oerror.New("unknown debug mode %q", name)
		}
		dbg.Enable(mode)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := yaml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %v", err)
	}

	settings := DefaultSettings()
	if err = yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %v", err)
	}
	return settings, nil
}
