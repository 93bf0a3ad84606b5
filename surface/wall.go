package surface

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
)

// CanSurfaceBeWallRan returns whether a surface with the given normal may be wall-ran on. Ceilings and
// surfaces shallow enough to be walked on are rejected.
func CanSurfaceBeWallRan(normal mgl32.Vec3, walkableFloorAngle float32) bool {
	if normal.Y() < game.CeilingNormalY {
		return false
	}
	flat := game.SafeNormalize(game.Horizontal(normal))
	if flat.LenSqr() == 0 {
		return false
	}
	return game.AngleBetween(normal, flat) < walkableFloorAngle
}

// sideAxis is the vertical axis a wall-run direction is derived from for the given side.
func sideAxis(side locomotion.WallRunSide) mgl32.Vec3 {
	if side == locomotion.WallRunSideRight {
		return game.Down
	}
	return game.Up
}

// WallRunDirectionAndSide derives the run direction and side from the normal of a wall and the right
// vector of the character. The side is Right when the normal points along the right vector. The direction
// runs along the wall, facing the same way as the character that produced the side.
func WallRunDirectionAndSide(normal, right mgl32.Vec3) (mgl32.Vec3, locomotion.WallRunSide) {
	side := locomotion.WallRunSideLeft
	if normal.Dot(right) > 0 {
		side = locomotion.WallRunSideRight
	}
	return game.SafeNormalize(normal.Cross(sideAxis(side))), side
}

// WallProbe describes the rays cast to check whether a character is next to a wall.
type WallProbe struct {
	// Origin is the centre of the character.
	Origin mgl32.Vec3
	// Direction is the current wall-run direction.
	Direction mgl32.Vec3
	Side      locomotion.WallRunSide
	// Right is the right vector of the character, used to recompute the side from the hit normal.
	Right mgl32.Vec3
	// Tolerance is the vertical spread of the two rays. Zero casts a single ray.
	Tolerance float32
	// Lead moves the ray starts forward along Direction.
	Lead float32
	// Reach is the length of the rays.
	Reach  float32
	Ignore ActorID
}

// IsNextToWall casts the probe rays towards the wall on the probe's side. It succeeds when any ray hits a
// blocking surface and the side recomputed from the hit normal matches the probe's side. The hit and the
// recomputed direction are returned on success.
func IsNextToWall(t Tracer, p WallProbe) (Hit, mgl32.Vec3, bool) {
	if t == nil {
		return Hit{}, mgl32.Vec3{}, false
	}
	toWall := game.SafeNormalize(p.Direction.Cross(sideAxis(p.Side)))
	if toWall.LenSqr() == 0 {
		return Hit{}, mgl32.Vec3{}, false
	}

	start := p.Origin.Add(p.Direction.Mul(p.Lead))
	offsets := []float32{0}
	if p.Tolerance > 0 {
		offsets = []float32{p.Tolerance / 2, -p.Tolerance / 2}
	}
	for _, offset := range offsets {
		rayStart := start.Add(game.Up.Mul(offset))
		hit, ok := t.LineTrace(rayStart, rayStart.Add(toWall.Mul(p.Reach)), p.Ignore)
		if !ok || !hit.Blocking {
			continue
		}
		if dir, side := WallRunDirectionAndSide(hit.Normal, p.Right); side == p.Side {
			return hit, dir, true
		}
	}
	return Hit{}, mgl32.Vec3{}, false
}

// FindWall probes both sides of a character for a wall it could start running on. The returned hit is
// the first blocking eligible surface found, together with the direction and side derived from it.
func FindWall(t Tracer, origin, right mgl32.Vec3, reach, walkableFloorAngle float32, ignore ActorID) (Hit, mgl32.Vec3, locomotion.WallRunSide, bool) {
	if t == nil {
		return Hit{}, mgl32.Vec3{}, 0, false
	}
	for _, probe := range [2]mgl32.Vec3{right, right.Mul(-1)} {
		hit, ok := t.LineTrace(origin, origin.Add(probe.Mul(reach)), ignore)
		if !ok || !hit.Blocking || !CanSurfaceBeWallRan(hit.Normal, walkableFloorAngle) {
			continue
		}
		dir, side := WallRunDirectionAndSide(hit.Normal, right)
		return hit, dir, side, true
	}
	return Hit{}, mgl32.Vec3{}, 0, false
}
