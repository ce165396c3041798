package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up returns the local +Y axis of rotation q in world space
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldUp)
}

// Forward returns the local +Z axis of rotation q in world space
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldForward)
}

// Right returns the local +X axis of rotation q in world space
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldRight)
}

// AngleAxis builds a rotation of deg degrees about axis
// Zero axis yields identity
func AngleAxis(deg float64, axis mgl64.Vec3) mgl64.Quat {
	n := SafeNormalize(axis)
	if IsZero(n) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(mgl64.DegToRad(deg), n)
}

// FromToRotation returns the shortest rotation taking from onto to
// Zero inputs yield identity
func FromToRotation(from, to mgl64.Vec3) mgl64.Quat {
	if IsZero(from) || IsZero(to) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(from, to).Normalize()
}

// QuatAngle returns the angle in degrees between two orientations
func QuatAngle(a, b mgl64.Quat) float64 {
	d := a.Normalize().Inverse().Mul(b.Normalize())
	return mgl64.RadToDeg(2 * math.Atan2(d.V.Len(), math.Abs(d.W)))
}

// RotateTowards rotates from toward to by at most maxDegrees along the shortest arc
func RotateTowards(from, to mgl64.Quat, maxDegrees float64) mgl64.Quat {
	from, to = from.Normalize(), to.Normalize()
	if maxDegrees <= 0 {
		return from
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}

	angle := QuatAngle(from, to)
	if angle <= maxDegrees {
		return to
	}

	axis := SafeNormalize(from.Inverse().Mul(to).V)
	if IsZero(axis) {
		return to
	}
	return from.Mul(AngleAxis(maxDegrees, axis)).Normalize()
}

// LookRotation builds the orientation whose +Z is forward and whose +Y is as
// close to up as possible. ok is false when forward is zero or parallel to up
func LookRotation(forward, up mgl64.Vec3) (q mgl64.Quat, ok bool) {
	f := SafeNormalize(forward)
	if IsZero(f) {
		return mgl64.QuatIdent(), false
	}
	r := SafeNormalize(up.Cross(f))
	if IsZero(r) {
		return mgl64.QuatIdent(), false
	}
	u := f.Cross(r)

	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), true
}

// RightUpRotation builds the orientation with the given right and up axes
// ok is false when either is zero or they are parallel/antiparallel
func RightUpRotation(right, up mgl64.Vec3) (q mgl64.Quat, ok bool) {
	if IsZero(right) || IsZero(up) {
		return mgl64.QuatIdent(), false
	}
	angle := Angle(right, up)
	if angle < Epsilon || angle > 180-Epsilon {
		return mgl64.QuatIdent(), false
	}
	return LookRotation(right.Cross(up), up)
}

// DeltaAngle returns the shortest signed difference b-a in degrees, in (-180,180]
func DeltaAngle(a, b float64) float64 {
	delta := math.Mod(b-a, 360)
	if delta < 0 {
		delta += 360
	}
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// LerpAngle interpolates between degrees a and b along the shortest path
func LerpAngle(a, b, t float64) float64 {
	return a + DeltaAngle(a, b)*Clamp01(t)
}
