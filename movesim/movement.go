package movesim

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the standard movement mode of a character.
type Mode uint8

const (
	ModeWalking Mode = iota
	ModeFalling
	ModeCustom
)

func (m Mode) String() string {
	switch m {
	case ModeWalking:
		return "walking"
	case ModeFalling:
		return "falling"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// State holds the physical movement state of a single character.
type State struct {
	Pos, LastPos mgl32.Vec3
	Vel, LastVel mgl32.Vec3
	Yaw          float32

	// Radius and HalfHeight describe the collision capsule, which collides as the box around it.
	Radius     float32
	HalfHeight float32

	Mode     Mode
	OnGround bool

	CollideX, CollideY, CollideZ bool

	// PlaneConstrained removes velocity along PlaneNormal before movement is applied.
	PlaneConstrained bool
	PlaneNormal      mgl32.Vec3
}

func (s *State) SetPos(newPos mgl32.Vec3) {
	s.LastPos = s.Pos
	s.Pos = newPos
}

func (s *State) SetVel(newVel mgl32.Vec3) {
	s.LastVel = s.Vel
	s.Vel = newVel
}

// Airborne ...
func (s *State) Airborne() bool {
	return !s.OnGround
}

// Centre returns the centre of the capsule.
func (s *State) Centre() mgl32.Vec3 {
	return s.Pos.Add(mgl32.Vec3{0, s.HalfHeight, 0})
}

// BoundingBox returns the box the capsule collides as.
func (s *State) BoundingBox() cube.BBox {
	return cube.Box(
		s.Pos.X()-s.Radius, s.Pos.Y(), s.Pos.Z()-s.Radius,
		s.Pos.X()+s.Radius, s.Pos.Y()+s.HalfHeight*2, s.Pos.Z()+s.Radius,
	)
}

// SetPlaneConstraint constrains movement to the plane with the given normal.
func (s *State) SetPlaneConstraint(normal mgl32.Vec3) {
	s.PlaneConstrained = true
	s.PlaneNormal = normal
}

// ReleasePlaneConstraint lifts any plane constraint.
func (s *State) ReleasePlaneConstraint() {
	s.PlaneConstrained = false
	s.PlaneNormal = mgl32.Vec3{}
}

// ConstrainToPlane removes the part of v along the constraint normal, if a constraint is set.
func (s *State) ConstrainToPlane(v mgl32.Vec3) mgl32.Vec3 {
	if !s.PlaneConstrained || s.PlaneNormal.LenSqr() == 0 {
		return v
	}
	n := s.PlaneNormal.Normalize()
	return v.Sub(n.Mul(v.Dot(n)))
}
