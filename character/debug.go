package character

import (
	"fmt"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/locomotion/utils"
)

const (
	DebugModeMovementSim = iota
	DebugModeGait
	DebugModeRotations
	DebugModeWallRun
	DebugModeSlide
	DebugModeProne
	DebugModePrediction
	DebugModeReplication
	debugModeCount
)

var debugModeNames = [debugModeCount]string{
	DebugModeMovementSim: "movement_sim",
	DebugModeGait:        "gait",
	DebugModeRotations:   "rotations",
	DebugModeWallRun:     "wall_run",
	DebugModeSlide:       "slide",
	DebugModeProne:       "prone",
	DebugModePrediction:  "prediction",
	DebugModeReplication: "replication",
}

// ParseDebugMode returns the debug mode with the given name.
func ParseDebugMode(name string) (int, bool) {
	for mode, n := range debugModeNames {
		if n == name {
			return mode, true
		}
	}
	return 0, false
}

// DebugModeName ...
func DebugModeName(mode int) string {
	if mode < 0 || mode >= debugModeCount {
		return "unknown"
	}
	return debugModeNames[mode]
}

// Debugger writes deep trace output of a character for the debug modes that are enabled.
type Debugger struct {
	log     *slog.Logger
	enabled [debugModeCount]bool
	watched [debugModeCount]*orderedmap.OrderedMap[string, any]
	// Sink, if set, receives every notification instead of the logger.
	Sink func(mode int, msg string)
}

// NewDebugger returns a debugger writing to the given logger with every mode disabled.
func NewDebugger(log *slog.Logger) *Debugger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Debugger{log: log}
}

// Toggle flips the given debug mode.
func (d *Debugger) Toggle(mode int) {
	if mode < 0 || mode >= debugModeCount {
		return
	}
	d.enabled[mode] = !d.enabled[mode]
}

// Enable ...
func (d *Debugger) Enable(mode int) {
	if mode >= 0 && mode < debugModeCount {
		d.enabled[mode] = true
	}
}

// Enabled returns whether the given debug mode is enabled.
func (d *Debugger) Enabled(mode int) bool {
	if mode < 0 || mode >= debugModeCount {
		return false
	}
	return d.enabled[mode]
}

// Notify writes a trace message for the given mode if the mode is enabled and cond holds.
func (d *Debugger) Notify(mode int, cond bool, msg string, args ...any) {
	if d == nil || !cond || !d.Enabled(mode) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if d.Sink != nil {
		d.Sink(mode, msg)
		return
	}
	d.log.Debug(msg, "mode", DebugModeName(mode))
}

// NotifyValues writes a trace message followed by the given key/value pairs.
func (d *Debugger) NotifyValues(mode int, cond bool, msg string, kv ...any) {
	if d == nil || !cond || !d.Enabled(mode) {
		return
	}
	d.Notify(mode, true, msg+" "+utils.KeyValsToString(kv))
}

// Watch records the latest value of a named quantity for the given mode. Only enabled modes are watched.
func (d *Debugger) Watch(mode int, key string, value any) {
	if d == nil || !d.Enabled(mode) {
		return
	}
	if d.watched[mode] == nil {
		d.watched[mode] = orderedmap.NewOrderedMap[string, any]()
	}
	d.watched[mode].Set(key, value)
}

// Watched formats the values watched for the given mode, in the order they were first watched.
func (d *Debugger) Watched(mode int) string {
	if d == nil || mode < 0 || mode >= debugModeCount {
		return "[]"
	}
	return utils.OrderedMapToString(d.watched[mode])
}
