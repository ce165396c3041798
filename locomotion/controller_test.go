package locomotion

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

const step = 20 * time.Millisecond

type casterFunc func(origin, dir mgl64.Vec3, radius, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool)

func (f casterFunc) SphereCast(origin, dir mgl64.Vec3, radius, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
	return f(origin, dir, radius, maxDistance, mask)
}

type rig struct {
	ctrl  *Controller
	body  *physics.RigidBody
	root  *physics.Pose
	scene *physics.Scene
}

func flatScene() *physics.Scene {
	return physics.NewScene(physics.NewQuad(mgl64.Vec3{}, vmath.WorldUp, vmath.WorldRight, 50, 50, physics.LayerWalkable))
}

// newRig places a radius 0.5 body resting on a flat floor with four feet around it
func newRig(t *testing.T, cfg Config, scene *physics.Scene) rig {
	t.Helper()
	body := physics.NewRigidBody(mgl64.Vec3{0, 0.5, 0}, mgl64.QuatIdent(), 1)
	root := physics.NewPose(mgl64.Vec3{0, 0.8, 0}, mgl64.QuatIdent())
	legs := []Leg{
		FixedLeg{0.6, 0, 0.6},
		FixedLeg{-0.6, 0, 0.6},
		FixedLeg{0.6, 0, -0.6},
		FixedLeg{-0.6, 0, -0.6},
	}
	ctrl, err := New(body, physics.SphereCollider{Radius: 0.5}, root, scene, cfg, WithLegs(legs...))
	require.NoError(t, err)
	return rig{ctrl: ctrl, body: body, root: root, scene: scene}
}

func TestNewRejectsMissingCollaborators(t *testing.T) {
	body := physics.NewRigidBody(mgl64.Vec3{}, mgl64.QuatIdent(), 1)
	root := physics.NewPose(mgl64.Vec3{}, mgl64.QuatIdent())
	scene := flatScene()
	collider := physics.SphereCollider{Radius: 0.5}

	_, err := New(nil, collider, root, scene, DefaultConfig())
	assert.Error(t, err)
	_, err = New(body, collider, nil, scene, DefaultConfig())
	assert.Error(t, err)
	_, err = New(body, collider, root, nil, DefaultConfig())
	assert.Error(t, err)
	_, err = New(body, physics.SphereCollider{}, root, scene, DefaultConfig())
	assert.Error(t, err)
}

func TestColliderGeometryFollowsScale(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())
	r.body.Scale = mgl64.Vec3{2, 2, 2}

	assert.InDelta(t, 1.0, r.ctrl.ColliderRadius(), 1e-12)
	assert.InDelta(t, 0.5, r.ctrl.NonScaledColliderRadius(), 1e-12)
	assert.InDelta(t, 1.0, r.ctrl.ColliderLength(), 1e-12)
	assert.InDelta(t, 0.9, r.ctrl.DownProbeRadius(), 1e-12)
	assert.InDelta(t, 0.05, r.ctrl.GravityOffDistance(), 1e-12)
	assertVec(t, mgl64.Vec3{0, -0.5, 0}, r.ctrl.ColliderBottomPoint())
}

func TestProbeGroundDown(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())

	info := r.ctrl.ProbeGround()
	assert.True(t, info.IsGrounded)
	assert.Equal(t, ProbeDown, info.Source)
	assertVec(t, vmath.WorldUp, info.Normal)
	assert.InDelta(t, 0, info.Distance, 1e-9)
}

func TestProbeGroundForwardHasPriority(t *testing.T) {
	scene := flatScene()
	scene.Add(physics.NewQuad(mgl64.Vec3{0, 1, 0.6}, mgl64.Vec3{0, 0, -1}, vmath.WorldRight, 5, 5, physics.LayerWalkable))
	r := newRig(t, DefaultConfig(), scene)

	info := r.ctrl.ProbeGround()
	require.True(t, info.IsGrounded)
	assert.Equal(t, ProbeForward, info.Source)
	assertVec(t, mgl64.Vec3{0, 0, -1}, info.Normal)
	assert.InDelta(t, 0.1, info.Distance, 1e-9)
}

func TestProbeGroundMiss(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())
	r.body.Pos = mgl64.Vec3{0, 5, 0}

	info := r.ctrl.ProbeGround()
	assert.False(t, info.IsGrounded)
	assert.Equal(t, ProbeNone, info.Source)
	assert.True(t, math.IsInf(info.Distance, 1))
	assertVec(t, vmath.WorldUp, info.Normal)
}

func TestProbeGroundRespectsWalkableMask(t *testing.T) {
	scene := physics.NewScene(physics.NewQuad(mgl64.Vec3{}, vmath.WorldUp, vmath.WorldRight, 50, 50, physics.LayerHazard))
	r := newRig(t, DefaultConfig(), scene)

	assert.False(t, r.ctrl.ProbeGround().IsGrounded)
}

func TestGroundCheckDisabledIgnoresGeometry(t *testing.T) {
	casts := 0
	caster := casterFunc(func(origin, dir mgl64.Vec3, radius, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
		casts++
		return physics.Hit{Point: origin, Normal: vmath.WorldRight}, true
	})
	body := physics.NewRigidBody(mgl64.Vec3{}, mgl64.QuatIdent(), 1)
	ctrl, err := New(body, physics.SphereCollider{Radius: 0.5}, physics.NewPose(mgl64.Vec3{}, mgl64.QuatIdent()), caster, DefaultConfig())
	require.NoError(t, err)

	ctrl.SetGroundCheckEnabled(false)
	info := ctrl.ProbeGround()
	assert.False(t, info.IsGrounded)
	assert.True(t, math.IsInf(info.Distance, 1))
	assert.Equal(t, ProbeNone, info.Source)
	assert.Zero(t, casts, "disabled ground check must not cast")
}

func TestGroundCheckToggleRoundTrip(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())

	r.ctrl.OnPhysicsStep(step)
	before := r.ctrl.GroundInfo()

	r.ctrl.SetGroundCheckEnabled(false)
	r.ctrl.SetGroundCheckEnabled(true)
	r.ctrl.OnPhysicsStep(step)

	assert.Equal(t, before, r.ctrl.GroundInfo())
}

func TestOrientationAdaptsTowardSlope(t *testing.T) {
	normal := mgl64.Vec3{0, math.Cos(mgl64.DegToRad(30)), math.Sin(mgl64.DegToRad(30))}
	scene := physics.NewScene(physics.NewQuad(mgl64.Vec3{}, normal, vmath.WorldRight, 50, 50, physics.LayerWalkable))

	r := newRig(t, DefaultConfig(), scene)
	r.body.Pos = normal.Mul(0.5)

	prev := vmath.Angle(r.body.Up(), normal)
	for i := 0; i < 300; i++ {
		r.ctrl.OnPhysicsStep(step)
		angle := vmath.Angle(r.body.Up(), normal)
		if prev > 1e-3 {
			require.LessOrEqual(t, angle, prev+1e-6, "step %d moved away from the surface normal", i)
		}
		prev = angle
	}
	assert.Less(t, prev, 0.01)
	assert.Equal(t, ProbeDown, r.ctrl.GroundInfo().Source)
}

func TestOrientationForwardProbeAdaptsFaster(t *testing.T) {
	scene := flatScene()
	scene.Add(physics.NewQuad(mgl64.Vec3{0, 1, 0.6}, mgl64.Vec3{0, 0, -1}, vmath.WorldRight, 5, 5, physics.LayerWalkable))
	r := newRig(t, DefaultConfig(), scene)

	r.ctrl.OnPhysicsStep(step)

	// 90 degrees to the wall normal, eased by dt * ForwardNormalAdjustSpeed
	want := 90 * step.Seconds() * r.ctrl.Config().ForwardNormalAdjustSpeed
	assert.InDelta(t, want, vmath.QuatAngle(mgl64.QuatIdent(), r.body.Rot), 1e-6)
	assert.Greater(t, r.body.Forward().Y(), 0.0, "body should pitch up the wall")
}

func TestOrientationDegenerateBasisKeepsRotation(t *testing.T) {
	caster := casterFunc(func(origin, dir mgl64.Vec3, radius, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
		if dir.Y() >= 0 {
			return physics.Hit{}, false
		}
		return physics.Hit{Point: origin.Sub(vmath.WorldUp.Mul(0.5)), Normal: vmath.WorldRight}, true
	})
	body := physics.NewRigidBody(mgl64.Vec3{0, 0.5, 0}, mgl64.QuatIdent(), 1)
	ctrl, err := New(body, physics.SphereCollider{Radius: 0.5}, physics.NewPose(mgl64.Vec3{}, mgl64.QuatIdent()), caster, DefaultConfig())
	require.NoError(t, err)

	// A full-second step eases the up axis all the way onto the body's right axis
	ctrl.OnPhysicsStep(time.Second)
	assert.Equal(t, mgl64.QuatIdent(), body.Rot)
}

func TestGravityPullOnlyAwayFromSurface(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())

	r.ctrl.OnPhysicsStep(step)
	assertVec(t, mgl64.Vec3{}, r.body.PendingAcceleration())
	r.body.Integrate(step)

	r.body.Pos = mgl64.Vec3{0, 5, 0}
	r.ctrl.OnPhysicsStep(step)
	want := -r.ctrl.Config().GravityMultiplier * 0.0981
	assertVec(t, mgl64.Vec3{0, want, 0}, r.body.PendingAcceleration())
}

func TestOnMoveRunsAfterSensing(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())

	var seen []time.Duration
	r.ctrl.OnMove(func(dt time.Duration) {
		assert.True(t, r.ctrl.GroundInfo().IsGrounded, "sensing must precede move listeners")
		seen = append(seen, dt)
	})
	r.ctrl.OnPhysicsStep(step)
	r.ctrl.OnPhysicsStep(step)

	assert.Equal(t, []time.Duration{step, step}, seen)
}

func TestLegAccessors(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())

	require.Equal(t, 4, r.ctrl.LegCount())
	assertVec(t, mgl64.Vec3{-0.6, 0, 0.6}, r.ctrl.Leg(1).EndEffector())
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	if !vmath.ApproxEqual(got, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
