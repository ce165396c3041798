package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/vmath"
)

// resolveIterations bounds the push-out passes per ResolvePenetration call
const resolveIterations = 4

// Scene is a static collision world
type Scene struct {
	colliders []Collider
}

// NewScene creates a scene with the given colliders
func NewScene(colliders ...Collider) *Scene {
	return &Scene{colliders: colliders}
}

// Add appends a collider
func (s *Scene) Add(c Collider) {
	s.colliders = append(s.colliders, c)
}

// Colliders returns the registered colliders
func (s *Scene) Colliders() []Collider {
	return s.colliders
}

// SphereCast returns the nearest hit along direction among colliders in mask
func (s *Scene) SphereCast(origin, direction mgl64.Vec3, radius, maxDistance float64, mask LayerMask) (Hit, bool) {
	dir := vmath.SafeNormalize(direction)
	if vmath.IsZero(dir) || maxDistance < 0 {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, c := range s.colliders {
		if !mask.Contains(c.Layer()) {
			continue
		}
		if hit, ok := c.sphereCast(origin, dir, radius, maxDistance); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Overlap reports whether a sphere intersects any collider in mask
func (s *Scene) Overlap(center mgl64.Vec3, radius float64, mask LayerMask) bool {
	for _, c := range s.colliders {
		if !mask.Contains(c.Layer()) {
			continue
		}
		if _, _, ok := c.penetration(center, radius); ok {
			return true
		}
	}
	return false
}

// ResolvePenetration pushes the body's sphere collider out of all colliders in
// mask and removes the velocity component into each contact normal
// Returns true if any contact was resolved
func (s *Scene) ResolvePenetration(b *RigidBody, collider SphereCollider, mask LayerMask) bool {
	if !b.DetectCollisions {
		return false
	}

	radius := collider.Radius * b.Scale.Y()
	touched := false

	for i := 0; i < resolveIterations; i++ {
		center := collider.WorldCenter(b, b.Scale)
		moved := false

		for _, c := range s.colliders {
			if !mask.Contains(c.Layer()) {
				continue
			}
			n, depth, ok := c.penetration(center, radius)
			if !ok {
				continue
			}
			b.Pos = b.Pos.Add(n.Mul(depth))
			center = center.Add(n.Mul(depth))

			if vn := b.Velocity.Dot(n); vn < 0 {
				b.Velocity = b.Velocity.Sub(n.Mul(vn))
			}
			moved = true
			touched = true
		}

		if !moved {
			break
		}
	}
	return touched
}
