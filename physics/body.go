package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ForceMode selects how AddForce changes a body's velocity
type ForceMode uint8

const (
	// ForceModeForce accumulates a mass-dependent force for the next Integrate
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration accumulates a mass-independent acceleration
	ForceModeAcceleration
	// ForceModeImpulse changes velocity immediately by f/mass
	ForceModeImpulse
	// ForceModeVelocityChange changes velocity immediately by f
	ForceModeVelocityChange
)

// Body is the physics capability a locomotion controller is bound to
type Body interface {
	Transform
	Up() mgl64.Vec3
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
	LossyScale() mgl64.Vec3
	AddForce(f mgl64.Vec3, mode ForceMode)
}

// RigidBody is a point-mass Body integrated with semi-implicit Euler
type RigidBody struct {
	Pose

	Velocity mgl64.Vec3
	Mass     float64
	// Drag is linear damping per second
	Drag float64

	// Kinematic bodies ignore forces and are moved only by SetPosition
	Kinematic bool
	// DetectCollisions gates Scene.ResolvePenetration
	DetectCollisions bool

	force mgl64.Vec3
	accel mgl64.Vec3
}

// NewRigidBody creates a dynamic, collidable body with unit scale
func NewRigidBody(pos mgl64.Vec3, rot mgl64.Quat, mass float64) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{
		Pose:             Pose{Pos: pos, Rot: rot.Normalize(), Scale: mgl64.Vec3{1, 1, 1}},
		Mass:             mass,
		DetectCollisions: true,
	}
}

// LossyScale returns the world scale of the body
func (b *RigidBody) LossyScale() mgl64.Vec3 {
	return b.Scale
}

// AddForce applies f according to mode; no-op on kinematic bodies
func (b *RigidBody) AddForce(f mgl64.Vec3, mode ForceMode) {
	if b.Kinematic {
		return
	}
	switch mode {
	case ForceModeForce:
		b.force = b.force.Add(f)
	case ForceModeAcceleration:
		b.accel = b.accel.Add(f)
	case ForceModeImpulse:
		b.Velocity = b.Velocity.Add(f.Mul(1 / b.Mass))
	case ForceModeVelocityChange:
		b.Velocity = b.Velocity.Add(f)
	}
}

// PendingAcceleration returns the acceleration Integrate would apply
func (b *RigidBody) PendingAcceleration() mgl64.Vec3 {
	return b.force.Mul(1 / b.Mass).Add(b.accel)
}

// Integrate performs v = v + a*dt; v *= damping; p = p + v*dt and clears accumulators
func (b *RigidBody) Integrate(dt time.Duration) {
	if b.Kinematic {
		b.force, b.accel = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}
	s := dt.Seconds()

	b.Velocity = b.Velocity.Add(b.PendingAcceleration().Mul(s))
	if b.Drag > 0 {
		b.Velocity = b.Velocity.Mul(1 / (1 + b.Drag*s))
	}
	b.Pos = b.Pos.Add(b.Velocity.Mul(s))

	b.force, b.accel = mgl64.Vec3{}, mgl64.Vec3{}
}

// CapSpeed limits the velocity magnitude, returns true if clamped
func (b *RigidBody) CapSpeed(maxSpeed float64) bool {
	if b.Velocity.LenSqr() <= maxSpeed*maxSpeed {
		return false
	}
	b.Velocity = b.Velocity.Normalize().Mul(maxSpeed)
	return true
}
