// Package vmath provides float64 3D vector and quaternion helpers over mgl64
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tolerances for float64 geometry
const (
	// Epsilon is the general magnitude/angle tolerance
	Epsilon = 1e-6
	// ZeroSqrEpsilon treats vectors with smaller squared length as zero
	ZeroSqrEpsilon = 1e-10
)

// World basis, Y up, Z forward, X right (forward = right x up)
var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
	WorldRight   = mgl64.Vec3{1, 0, 0}
)

// IsZero reports whether v is within ZeroSqrEpsilon of the zero vector
func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < ZeroSqrEpsilon
}

// SafeNormalize returns the unit vector of v, or the zero vector if v is zero
// mgl64 Normalize divides by length and would produce NaN
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Project returns the component of v along onto
func Project(v, onto mgl64.Vec3) mgl64.Vec3 {
	sq := onto.LenSqr()
	if sq < ZeroSqrEpsilon {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / sq)
}

// ProjectOnPlane removes the component of v along planeNormal
func ProjectOnPlane(v, planeNormal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(Project(v, planeNormal))
}

// Lerp linearly interpolates between a and b, t clamped to [0,1]
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp spherically interpolates direction and linearly interpolates magnitude
// Falls back to Lerp when either input is zero
func Slerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	magA, magB := a.Len(), b.Len()
	if magA < Epsilon || magB < Epsilon {
		return Lerp(a, b, t)
	}

	dirA := a.Mul(1 / magA)
	dirB := b.Mul(1 / magB)
	dot := mgl64.Clamp(dirA.Dot(dirB), -1, 1)
	theta := math.Acos(dot)
	mag := magA + (magB-magA)*t

	if theta < Epsilon {
		return SafeNormalize(Lerp(dirA, dirB, t)).Mul(mag)
	}

	axis := dirA.Cross(dirB)
	if IsZero(axis) {
		// Antiparallel, any perpendicular axis is a shortest path
		axis = dirA.Cross(WorldRight)
		if IsZero(axis) {
			axis = dirA.Cross(WorldUp)
		}
	}
	axis = axis.Normalize()

	rot := mgl64.QuatRotate(theta*t, axis)
	return rot.Rotate(dirA).Mul(mag)
}

// Angle returns the unsigned angle in degrees between a and b
func Angle(a, b mgl64.Vec3) float64 {
	if a.LenSqr()*b.LenSqr() < 1e-30 {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(a.Cross(b).Len(), a.Dot(b)))
}

// SignedAngle returns the angle in degrees from a to b, signed by the
// right-hand rotation about axis
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	unsigned := Angle(from, to)
	if axis.Dot(from.Cross(to)) < 0 {
		return -unsigned
	}
	return unsigned
}

// ClampMagnitude limits the length of v to maxLen
func ClampMagnitude(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if v.LenSqr() <= maxLen*maxLen {
		return v
	}
	return SafeNormalize(v).Mul(maxLen)
}

// FlatDistance returns the distance between a and b ignoring height (Y)
func FlatDistance(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

// Clamp01 clamps t to [0,1]
func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// ApproxEqual compares vectors component-wise within an absolute tolerance
// mgl64's ApproxEqualThreshold is relative and rejects tiny noise around 0
func ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}
