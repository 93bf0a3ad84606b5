package surface

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is a single piece of static collision.
type Box struct {
	BBox     cube.BBox
	Actor    ActorID
	Blocking bool
}

// BoxWorld is a static world made of axis aligned boxes. It serves both line traces and collision queries.
type BoxWorld struct {
	boxes []Box
}

// NewBoxWorld returns a world made of the given boxes.
func NewBoxWorld(boxes ...Box) *BoxWorld {
	return &BoxWorld{boxes: boxes}
}

// Add adds a blocking box owned by the world.
func (w *BoxWorld) Add(bb cube.BBox) {
	w.boxes = append(w.boxes, Box{BBox: bb, Blocking: true})
}

// AddBox adds a box with its own owner and blocking flag.
func (w *BoxWorld) AddBox(b Box) {
	w.boxes = append(w.boxes, b)
}

// Boxes returns all boxes in the world.
func (w *BoxWorld) Boxes() []Box {
	return w.boxes
}

// NearbyBBoxes returns the blocking boxes intersecting bb.
func (w *BoxWorld) NearbyBBoxes(bb cube.BBox) []cube.BBox {
	var list []cube.BBox
	for _, b := range w.boxes {
		if !b.Blocking {
			continue
		}
		if b.BBox.IntersectsWith(bb) {
			list = append(list, b.BBox)
		}
	}
	return list
}

// LineTrace ...
func (w *BoxWorld) LineTrace(start, end mgl32.Vec3, ignore ActorID) (Hit, bool) {
	var (
		closest Hit
		found   bool
	)
	for _, b := range w.boxes {
		if ignore != NoActor && b.Actor == ignore {
			continue
		}
		result, ok := trace.BBoxIntercept(b.BBox, start, end)
		if !ok {
			continue
		}
		pos := result.Position()
		dist := pos.Sub(start).Len()
		if found && dist >= closest.Distance {
			continue
		}
		closest = Hit{
			Position: pos,
			Normal:   boxNormal(b.BBox, pos, end.Sub(start)),
			Distance: dist,
			Blocking: b.Blocking,
			Actor:    b.Actor,
		}
		found = true
	}
	return closest, found
}

// boxNormal returns the normal of the face of bb closest to pos, preferring faces that oppose the ray.
func boxNormal(bb cube.BBox, pos, ray mgl32.Vec3) mgl32.Vec3 {
	best, bestDist := mgl32.Vec3{}, float32(math32.MaxFloat32)
	for i := range 3 {
		for _, sign := range [2]float32{-1, 1} {
			plane := bb.Min()[i]
			if sign > 0 {
				plane = bb.Max()[i]
			}
			if ray[i]*sign > 0 {
				continue
			}
			if dist := math32.Abs(pos[i] - plane); dist < bestDist {
				best, bestDist = mgl32.Vec3{}, dist
				best[i] = sign
			}
		}
	}
	return best
}
