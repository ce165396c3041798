package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/vmath"
)

// Transform is a mutable world-space placement
// Implemented by engine adapters; Pose is the in-memory implementation
type Transform interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
}

// Pose is a position, rotation and per-axis scale
type Pose struct {
	Pos   mgl64.Vec3
	Rot   mgl64.Quat
	Scale mgl64.Vec3
}

// NewPose creates a unit-scale pose
func NewPose(pos mgl64.Vec3, rot mgl64.Quat) *Pose {
	return &Pose{Pos: pos, Rot: rot, Scale: mgl64.Vec3{1, 1, 1}}
}

func (p *Pose) Position() mgl64.Vec3     { return p.Pos }
func (p *Pose) SetPosition(v mgl64.Vec3) { p.Pos = v }
func (p *Pose) Rotation() mgl64.Quat     { return p.Rot }
func (p *Pose) SetRotation(q mgl64.Quat) { p.Rot = q.Normalize() }

// Up, Forward and Right are the rotated local basis axes
func (p *Pose) Up() mgl64.Vec3      { return vmath.Up(p.Rot) }
func (p *Pose) Forward() mgl64.Vec3 { return vmath.Forward(p.Rot) }
func (p *Pose) Right() mgl64.Vec3   { return vmath.Right(p.Rot) }

// TransformPoint maps a local point (scaled) into world space
func TransformPoint(t Transform, scale, local mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{local.X() * scale.X(), local.Y() * scale.Y(), local.Z() * scale.Z()}
	return t.Position().Add(t.Rotation().Rotate(scaled))
}

// InverseTransformPoint maps a world point into local (unscaled) space
// Zero scale components collapse to zero
func InverseTransformPoint(t Transform, scale, world mgl64.Vec3) mgl64.Vec3 {
	local := t.Rotation().Inverse().Rotate(world.Sub(t.Position()))
	return mgl64.Vec3{safeDiv(local.X(), scale.X()), safeDiv(local.Y(), scale.Y()), safeDiv(local.Z(), scale.Z())}
}

// TransformDirection rotates a local direction into world space, ignoring scale
func TransformDirection(t Transform, local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation().Rotate(local)
}

// InverseTransformDirection rotates a world direction into local space
func InverseTransformDirection(t Transform, world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation().Inverse().Rotate(world)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
