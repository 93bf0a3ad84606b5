package surface

import "github.com/go-gl/mathgl/mgl32"

// ActorID identifies the owner of a piece of collision. NoActor owns world geometry.
type ActorID uint64

const NoActor ActorID = 0

// Hit is the result of a line trace.
type Hit struct {
	// Position is the impact point.
	Position mgl32.Vec3
	// Normal is the outward facing normal of the surface at the impact point.
	Normal mgl32.Vec3
	// Distance is the distance from the start of the trace to the impact point.
	Distance float32
	// Blocking is true if the surface blocks movement.
	Blocking bool
	Actor    ActorID
}

// Tracer performs line traces against world collision. Traces are synchronous and bounded in cost.
type Tracer interface {
	// LineTrace returns the closest hit between start and end, ignoring collision owned by the given actor.
	LineTrace(start, end mgl32.Vec3, ignore ActorID) (Hit, bool)
}
