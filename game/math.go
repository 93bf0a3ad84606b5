package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// Up is the world up vector.
	Up = mgl32.Vec3{0, 1, 0}
	// Down is the world down vector.
	Down = mgl32.Vec3{0, -1, 0}
)

// Lerp linearly interpolates between a and b by alpha.
func Lerp(a, b, alpha float32) float32 {
	return a + (b-a)*alpha
}

// MapRangeClamped maps value from the input range to the output range, clamping to the output bounds.
func MapRangeClamped(value, inMin, inMax, outMin, outMax float32) float32 {
	if inMin == inMax {
		if value < inMin {
			return outMin
		}
		return outMax
	}
	alpha := mgl32.Clamp((value-inMin)/(inMax-inMin), 0, 1)
	return Lerp(outMin, outMax, alpha)
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// DirectionVector returns the horizontal facing vector for the given yaw, in degrees.
func DirectionVector(yaw float32) mgl32.Vec3 {
	yawRad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{-math32.Sin(yawRad), 0, math32.Cos(yawRad)}
}

// RightVector returns the horizontal right vector for the given yaw, in degrees.
func RightVector(yaw float32) mgl32.Vec3 {
	return DirectionVector(yaw).Cross(Up)
}

// YawFromVector returns the yaw, in degrees, that faces along the horizontal part of v.
func YawFromVector(v mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Atan2(-v.X(), v.Z()))
}

// WrapYawDelta wraps a yaw delta into the range (-180, 180].
func WrapYawDelta(delta float32) float32 {
	delta = math32.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}

// Horizontal returns v with its vertical component removed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzLen returns the horizontal length of a vector.
func Vec3HzLen(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(vec3))
}

// SafeNormalize normalizes v, returning the zero vector instead of NaNs for degenerate input.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// AngleBetween returns the angle, in degrees, between two vectors. Degenerate vectors yield zero.
func AngleBetween(a, b mgl32.Vec3) float32 {
	a, b = SafeNormalize(a), SafeNormalize(b)
	if a.LenSqr() == 0 || b.LenSqr() == 0 {
		return 0
	}
	return mgl32.RadToDeg(math32.Acos(mgl32.Clamp(a.Dot(b), -1, 1)))
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}
