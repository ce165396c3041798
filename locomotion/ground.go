package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// ProbeSource identifies which probe produced a GroundInfo
type ProbeSource uint8

const (
	ProbeNone ProbeSource = iota
	ProbeForward
	ProbeDown
)

func (s ProbeSource) String() string {
	switch s {
	case ProbeForward:
		return "forward"
	case ProbeDown:
		return "down"
	default:
		return "none"
	}
}

// GroundInfo is the result of one ground sensing pass
type GroundInfo struct {
	IsGrounded bool
	// Normal is unit length; world up when not grounded
	Normal mgl64.Vec3
	// Distance from the collider surface to the hit point, +Inf when not grounded
	Distance float64
	Source   ProbeSource
}

// noGround is the result of a miss or a disabled ground check
func noGround() GroundInfo {
	return GroundInfo{Normal: vmath.WorldUp, Distance: math.Inf(1), Source: ProbeNone}
}

// ProbeGround casts the forward probe, then the down probe, and returns the first hit
func (c *Controller) ProbeGround() GroundInfo {
	if !c.groundCheck {
		return noGround()
	}

	origin := c.body.Position()

	if hit, ok := c.caster.SphereCast(origin, c.body.Forward(), c.ForwardProbeRadius(), c.forwardProbeLength(), c.cfg.WalkableMask); ok {
		return c.groundFromHit(hit, ProbeForward)
	}
	if hit, ok := c.caster.SphereCast(origin, c.body.Up().Mul(-1), c.DownProbeRadius(), c.downProbeLength(), c.cfg.WalkableMask); ok {
		return c.groundFromHit(hit, ProbeDown)
	}
	return noGround()
}

func (c *Controller) groundFromHit(hit physics.Hit, source ProbeSource) GroundInfo {
	normal := vmath.SafeNormalize(hit.Normal)
	if vmath.IsZero(normal) {
		normal = vmath.WorldUp
	}
	return GroundInfo{
		IsGrounded: true,
		Normal:     normal,
		Distance:   c.ColliderCenter().Sub(hit.Point).Len() - c.ColliderRadius(),
		Source:     source,
	}
}

// SetGroundCheckEnabled toggles probing; disabled sensing always reports no ground
func (c *Controller) SetGroundCheckEnabled(enabled bool) {
	c.groundCheck = enabled
}

// GroundCheckEnabled reports whether probing is on
func (c *Controller) GroundCheckEnabled() bool {
	return c.groundCheck
}

// ForwardProbeRadius returns the forward probe sphere radius
func (c *Controller) ForwardProbeRadius() float64 {
	return c.cfg.ForwardProbeSize * c.ColliderRadius()
}

// DownProbeRadius returns the down probe sphere radius, which also caps step distance
func (c *Controller) DownProbeRadius() float64 {
	return c.cfg.DownProbeSize * c.ColliderRadius()
}

func (c *Controller) forwardProbeLength() float64 {
	return c.cfg.ForwardProbeLength * c.ColliderLength()
}

func (c *Controller) downProbeLength() float64 {
	return c.cfg.DownProbeLength * c.ColliderLength()
}
