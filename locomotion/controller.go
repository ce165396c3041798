// Package locomotion glues a multi-legged body to arbitrary walkable surfaces
// and eases its torso from leg end-effector positions
package locomotion

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
)

// Leg is a read-only handle to an IK chain's foot tip
type Leg interface {
	EndEffector() mgl64.Vec3
}

// LegFunc adapts a function to Leg
type LegFunc func() mgl64.Vec3

func (f LegFunc) EndEffector() mgl64.Vec3 { return f() }

// FixedLeg is a stationary foot
type FixedLeg mgl64.Vec3

func (l FixedLeg) EndEffector() mgl64.Vec3 { return mgl64.Vec3(l) }

// MoveFunc is invoked once per physics step after orientation adaptation
type MoveFunc func(dt time.Duration)

// Option configures a Controller at construction
type Option func(*Controller)

// WithLogger routes diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLegs sets the fixed leg collection
func WithLegs(legs ...Leg) Option {
	return func(c *Controller) {
		c.legs = append([]Leg(nil), legs...)
	}
}

// WithFixedStep sets the nominal physics step used before the first OnPhysicsStep
func WithFixedStep(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fixedStep = d
		}
	}
}

// Controller keeps a body glued to walkable surfaces and drives its torso root
// Not safe for concurrent use; all calls belong to the simulation goroutine
type Controller struct {
	body     physics.Body
	collider physics.SphereCollider
	root     physics.Transform
	caster   physics.Caster
	legs     []Leg
	cfg      Config
	logger   *log.Logger

	groundCheck bool
	ground      GroundInfo
	velocity    mgl64.Vec3
	fixedStep   time.Duration

	// Body up/forward in root-local space, captured at construction
	bodyY mgl64.Vec3
	bodyZ mgl64.Vec3
	// Root rotation relative to the body, persisted across render steps
	rootLocal mgl64.Quat

	bodyCentroid        mgl64.Vec3
	bodyDefaultCentroid mgl64.Vec3

	moving  bool
	lastPos mgl64.Vec3
	lastRot mgl64.Quat
	elapsed time.Duration

	warnedNoLegs bool
	onMove       []MoveFunc
}

// New binds a controller to a body, its ground-probe collider, a torso root and a caster
// The config is clamped into its valid ranges
func New(body physics.Body, collider physics.SphereCollider, root physics.Transform, caster physics.Caster, cfg Config, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, errors.New("locomotion: nil body")
	}
	if root == nil {
		return nil, errors.New("locomotion: nil root transform")
	}
	if caster == nil {
		return nil, errors.New("locomotion: nil caster")
	}
	if collider.Radius <= 0 {
		return nil, errors.Errorf("locomotion: collider radius must be positive, got %f", collider.Radius)
	}

	c := &Controller{
		body:        body,
		collider:    collider,
		root:        root,
		caster:      caster,
		cfg:         cfg.Clamp(),
		logger:      log.New(io.Discard),
		groundCheck: true,
		ground:      noGround(),
		fixedStep:   parameter.FixedStep,
		moving:      true,
	}
	for _, opt := range opts {
		opt(c)
	}

	scale := body.LossyScale()
	if math.Abs(scale.X()-scale.Y()) > 0 || math.Abs(scale.X()-scale.Z()) > 0 {
		c.logger.Warn("non-uniform body scale, Y scale is used for all sizing", "scale", scale)
	}

	rootInv := root.Rotation().Normalize().Inverse()
	c.bodyY = rootInv.Rotate(body.Up())
	c.bodyZ = rootInv.Rotate(body.Forward())
	c.rootLocal = body.Rotation().Normalize().Inverse().Mul(root.Rotation()).Normalize()

	c.bodyCentroid = root.Position().Add(body.Up().Mul(c.Scale() * c.cfg.RootOffsetHeight))
	c.bodyDefaultCentroid = physics.InverseTransformPoint(body, scale, c.bodyCentroid)

	c.lastPos = body.Position()
	c.lastRot = body.Rotation()

	c.logger.Debug("controller bound",
		"legs", len(c.legs),
		"collider_radius", c.ColliderRadius(),
		"down_probe_radius", c.DownProbeRadius())
	return c, nil
}

// Config returns the clamped configuration
func (c *Controller) Config() Config { return c.cfg }

// SetBreathing toggles the idle breathing motion of the root
func (c *Controller) SetBreathing(on bool) { c.cfg.Breathing = on }

// Body returns the bound body
func (c *Controller) Body() physics.Body { return c.body }

// LegCount returns the number of legs
func (c *Controller) LegCount() int { return len(c.legs) }

// Leg returns leg i
func (c *Controller) Leg(i int) Leg { return c.legs[i] }

// OnMove registers a listener run each physics step after orientation adaptation
// Drivers issue Walk, Run and Turn from here
func (c *Controller) OnMove(fn MoveFunc) {
	c.onMove = append(c.onMove, fn)
}

// GroundInfo returns the result of the latest physics step
func (c *Controller) GroundInfo() GroundInfo { return c.ground }

// GroundNormal returns the latest sensed ground normal
func (c *Controller) GroundNormal() mgl64.Vec3 { return c.ground.Normal }

// IsMoving reports whether the body pose changed since the previous render step
func (c *Controller) IsMoving() bool { return c.moving }

// VelocityPerFixedFrame returns the eased displacement applied per movement call
func (c *Controller) VelocityPerFixedFrame() mgl64.Vec3 { return c.velocity }

// VelocityPerSecond returns the eased velocity in units per second
func (c *Controller) VelocityPerSecond() mgl64.Vec3 {
	return c.velocity.Mul(1 / c.fixedStep.Seconds())
}

// Scale returns the body's Y scale, used for all sizing
func (c *Controller) Scale() float64 {
	return c.body.LossyScale().Y()
}

// ColliderRadius returns the scaled collider radius
func (c *Controller) ColliderRadius() float64 {
	return c.Scale() * c.collider.Radius
}

// NonScaledColliderRadius returns the local collider radius
func (c *Controller) NonScaledColliderRadius() float64 {
	return c.collider.Radius
}

// ColliderLength returns the reference length for probes, equal to ColliderRadius
func (c *Controller) ColliderLength() float64 {
	return c.Scale() * c.collider.Radius
}

// ColliderCenter returns the collider centre in world space
func (c *Controller) ColliderCenter() mgl64.Vec3 {
	return c.collider.WorldCenter(c.body, c.body.LossyScale())
}

// ColliderBottomPoint returns the lowest body-local point of the collider in world space
func (c *Controller) ColliderBottomPoint() mgl64.Vec3 {
	return c.collider.WorldBottom(c.body, c.body.LossyScale())
}

// DefaultCentroid returns the resting torso position in world space
func (c *Controller) DefaultCentroid() mgl64.Vec3 {
	return physics.TransformPoint(c.body, c.body.LossyScale(), c.bodyDefaultCentroid)
}

// GravityOffDistance returns the distance below which no surface pull is applied
func (c *Controller) GravityOffDistance() float64 {
	return c.cfg.GravityOffDistance * c.ColliderRadius()
}

// OnPhysicsStep senses ground, adapts orientation, then runs move listeners
func (c *Controller) OnPhysicsStep(dt time.Duration) {
	if dt > 0 {
		c.fixedStep = dt
	}
	c.ground = c.ProbeGround()
	c.adaptOrientation(c.ground, dt)

	for _, fn := range c.onMove {
		fn(dt)
	}
}

// OnRenderStep stabilizes the torso root and refreshes IsMoving
func (c *Controller) OnRenderStep(dt time.Duration) {
	c.elapsed += dt
	c.stabilize(dt)
	c.updateMoving()
}

func (c *Controller) updateMoving() {
	pos, rot := c.body.Position(), c.body.Rotation()
	c.moving = pos != c.lastPos || rot != c.lastRot
	c.lastPos, c.lastRot = pos, rot
}
