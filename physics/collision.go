package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/vmath"
)

// LayerMask is a bitset of collision layers
type LayerMask uint32

const (
	LayerDefault  LayerMask = 1 << 0
	LayerWalkable LayerMask = 1 << 1
	LayerHazard   LayerMask = 1 << 2
	LayerAll      LayerMask = math.MaxUint32
)

// Contains reports whether any bit of layer is set in m
func (m LayerMask) Contains(layer LayerMask) bool {
	return m&layer != 0
}

// Hit describes the first contact of a cast
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider Collider
}

// Caster performs volumetric casts against the world
type Caster interface {
	SphereCast(origin, direction mgl64.Vec3, radius, maxDistance float64, mask LayerMask) (Hit, bool)
}

// Collider is a static shape that can be cast against and pushed out of
type Collider interface {
	Layer() LayerMask
	// sphereCast casts a sphere along unit direction; overlapping at start reports distance 0
	sphereCast(origin, dir mgl64.Vec3, radius, maxDistance float64) (Hit, bool)
	// penetration returns the push-out normal and depth for a sphere
	penetration(center mgl64.Vec3, radius float64) (mgl64.Vec3, float64, bool)
}

// SphereCollider is a body-local sphere, scaled by the owning body
type SphereCollider struct {
	Center mgl64.Vec3
	Radius float64
}

// WorldCenter returns the collider centre in world space
func (c SphereCollider) WorldCenter(t Transform, scale mgl64.Vec3) mgl64.Vec3 {
	return TransformPoint(t, scale, c.Center)
}

// WorldBottom returns the lowest local point of the collider in world space
func (c SphereCollider) WorldBottom(t Transform, scale mgl64.Vec3) mgl64.Vec3 {
	return TransformPoint(t, scale, c.Center.Sub(vmath.WorldUp.Mul(c.Radius)))
}

// Quad is a finite one-sided plane: contacts are only reported on the normal side
type Quad struct {
	Center mgl64.Vec3
	Normal mgl64.Vec3
	// AxisU spans the quad together with Normal x AxisU
	AxisU        mgl64.Vec3
	HalfU, HalfV float64
	Mask         LayerMask
}

// NewQuad creates a quad, orthonormalising the axes
func NewQuad(center, normal, axisU mgl64.Vec3, halfU, halfV float64, mask LayerMask) *Quad {
	n := vmath.SafeNormalize(normal)
	u := vmath.SafeNormalize(vmath.ProjectOnPlane(axisU, n))
	return &Quad{Center: center, Normal: n, AxisU: u, HalfU: halfU, HalfV: halfV, Mask: mask}
}

func (q *Quad) Layer() LayerMask { return q.Mask }

// AxisV is the second in-plane axis
func (q *Quad) AxisV() mgl64.Vec3 {
	return q.Normal.Cross(q.AxisU)
}

// contains tests whether a point on the plane lies within the extents
func (q *Quad) contains(p mgl64.Vec3) bool {
	rel := p.Sub(q.Center)
	return math.Abs(rel.Dot(q.AxisU)) <= q.HalfU && math.Abs(rel.Dot(q.AxisV())) <= q.HalfV
}

func (q *Quad) sphereCast(origin, dir mgl64.Vec3, radius, maxDistance float64) (Hit, bool) {
	s0 := origin.Sub(q.Center).Dot(q.Normal)
	if s0 < 0 {
		return Hit{}, false
	}

	// Already touching
	if s0 <= radius {
		p := origin.Sub(q.Normal.Mul(s0))
		if !q.contains(p) {
			return Hit{}, false
		}
		return Hit{Point: p, Normal: q.Normal, Distance: 0, Collider: q}, true
	}

	denom := dir.Dot(q.Normal)
	if denom >= -vmath.Epsilon {
		return Hit{}, false
	}

	t := (s0 - radius) / -denom
	if t > maxDistance {
		return Hit{}, false
	}

	p := origin.Add(dir.Mul(t)).Sub(q.Normal.Mul(radius))
	if !q.contains(p) {
		return Hit{}, false
	}
	return Hit{Point: p, Normal: q.Normal, Distance: t, Collider: q}, true
}

func (q *Quad) penetration(center mgl64.Vec3, radius float64) (mgl64.Vec3, float64, bool) {
	s := center.Sub(q.Center).Dot(q.Normal)
	if s >= radius || s < -radius {
		return mgl64.Vec3{}, 0, false
	}
	if !q.contains(center.Sub(q.Normal.Mul(s))) {
		return mgl64.Vec3{}, 0, false
	}
	return q.Normal, radius - s, true
}

// Sphere is a solid static sphere
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
	Mask   LayerMask
}

func (s *Sphere) Layer() LayerMask { return s.Mask }

func (s *Sphere) sphereCast(origin, dir mgl64.Vec3, radius, maxDistance float64) (Hit, bool) {
	combined := s.Radius + radius
	rel := origin.Sub(s.Center)

	// Overlapping at start
	c := rel.LenSqr() - combined*combined
	if c <= 0 {
		n := vmath.SafeNormalize(rel)
		if vmath.IsZero(n) {
			n = dir.Mul(-1)
		}
		return Hit{Point: s.Center.Add(n.Mul(s.Radius)), Normal: n, Distance: 0, Collider: s}, true
	}

	b := rel.Dot(dir)
	disc := b*b - c
	if b > 0 || disc < 0 {
		return Hit{}, false
	}

	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return Hit{}, false
	}

	at := origin.Add(dir.Mul(t))
	n := vmath.SafeNormalize(at.Sub(s.Center))
	return Hit{Point: s.Center.Add(n.Mul(s.Radius)), Normal: n, Distance: t, Collider: s}, true
}

func (s *Sphere) penetration(center mgl64.Vec3, radius float64) (mgl64.Vec3, float64, bool) {
	delta := center.Sub(s.Center)
	dist := delta.Len()
	minDist := s.Radius + radius
	if dist >= minDist {
		return mgl64.Vec3{}, 0, false
	}
	n := vmath.SafeNormalize(delta)
	if vmath.IsZero(n) {
		n = vmath.WorldUp
	}
	return n, minDist - dist, true
}
