package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/session"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/surface"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// loggingHandler logs the transitions of the owner of the demo character.
type loggingHandler struct {
	log *slog.Logger
}

func (h loggingHandler) HandleGaitChanged(old, new locomotion.Gait) {
	h.log.Info("gait changed", "old", old, "new", new)
}
func (h loggingHandler) HandleWallRunStarted(side locomotion.WallRunSide) {
	h.log.Info("wall-run started", "side", side)
}
func (h loggingHandler) HandleWallRunEnded() { h.log.Info("wall-run ended") }
func (h loggingHandler) HandleSlideStarted() { h.log.Info("slide started") }
func (h loggingHandler) HandleSlideEnded()   { h.log.Info("slide ended") }
func (h loggingHandler) HandleProneStarted() { h.log.Info("prone started") }
func (h loggingHandler) HandleProneEnded()   { h.log.Info("prone ended") }
func (h loggingHandler) HandleCorrection(tick uint64, replayed int) {
	h.log.Warn("corrected by authority", "tick", tick, "replayed", replayed)
}

// The following program runs a scripted character through a session with an authority, the owning client
// and proxies, connected by simulated latency.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ./bin <settings_file> [recording_file]")
		return
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := os.Args[1]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			panic(err)
		}
		log.Info("wrote default settings", "path", path)
	}
	s, err := settings.Load(path)
	if err != nil {
		panic(err)
	}
	opts, err := s.Options()
	if err != nil {
		panic(err)
	}
	opts.OnGround = true
	opts.Handler = loggingHandler{log: log.With("character", "owner")}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			panic(err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	world := surface.NewBoxWorld()
	// The floor ends at z=2000 above a pit, with a wall running along the left of the path of the character.
	world.Add(cube.Box(-10000, -100, -10000, 10000, 0, 2000))
	world.Add(cube.Box(-10000, -3100, 2000, 10000, -3000, 10000))
	world.Add(cube.Box(-200, -3000, 0, -50, 1000, 8000))

	sess, err := session.New(session.Config{
		Name:         "demo",
		Options:      opts,
		World:        world,
		LatencyTicks: s.Network.LatencyTicks,
		Proxies:      s.Network.Proxies,
		Logger:       log,
	})
	if err != nil {
		panic(err)
	}
	if err := s.Debug.ApplyDebug(sess.Owner.Dbg); err != nil {
		panic(err)
	}
	if len(os.Args) > 2 {
		sess.StartRecording()
	}

	rate := max(s.Network.TickRate, 1)
	dt := float32(1) / float32(rate)
	ticks := rate * 10
	if v := os.Getenv("DEMO_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ticks = n
		}
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err := sess.Tick(script(i, rate, dt)); err != nil {
			log.Error("session tick failed", "tick", i, "error", err)
			break
		}
	}
	log.Info(
		"demo finished",
		"ticks", sess.Ticks(),
		"took", time.Since(start),
		"position", sess.Owner.Position(),
		"divergence", sess.Divergence(),
		"in_flight", sess.InFlight(),
	)

	if len(os.Args) > 2 {
		f, err := os.Create(os.Args[2])
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := sess.WriteRecording(f); err != nil {
			panic(err)
		}
		log.Info("wrote recording", "path", os.Args[2])
	}
}

// script returns the input of the owner for the given tick: a run, a sprint into a slide, a sprint off the
// edge of the floor along the wall and a stretch of prone movement at the bottom of the pit.
func script(tick, rate int, dt float32) character.Input {
	in := character.Input{MoveInput: mgl32.Vec2{0, 1}, DeltaTime: dt}
	sec := float32(tick) / float32(rate)
	switch {
	case sec < 2:
	case sec < 3:
		in.Sprint = true
	case sec < 4:
		in.Sprint, in.Slide = true, true
	case sec < 7:
		in.Sprint, in.WallRun = true, true
	case sec < 9:
		in.Crouch, in.Prone = true, true
	default:
		in.MoveInput = mgl32.Vec2{}
	}
	return in
}
