package locomotion

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/vmath"
)

// stabilize eases the root toward the leg centroid, tilts it toward the legs
// plane and layers breathing on top
func (c *Controller) stabilize(dt time.Duration) {
	s := dt.Seconds()

	// Root follows the body as a child would
	c.root.SetRotation(c.body.Rotation().Mul(c.rootLocal))
	y := c.root.Rotation().Rotate(c.bodyY)

	if c.cfg.LegCentroidAdjustment {
		c.bodyCentroid = vmath.Lerp(c.bodyCentroid, c.LegsCentroid(), s*c.cfg.LegCentroidSpeed)
	} else {
		c.bodyCentroid = c.DefaultCentroid()
	}
	c.root.SetPosition(c.bodyCentroid)

	if c.cfg.LegNormalAdjustment {
		c.tiltRoot(y, c.LegsPlaneNormal(), s)
	}

	if c.cfg.Breathing {
		c.root.SetPosition(c.breathe())
	}

	c.rootLocal = c.body.Rotation().Normalize().Inverse().Mul(c.root.Rotation()).Normalize()
}

// tiltRoot corrects pitch about the body right axis, then roll about the root
// forward axis, so no yaw is introduced
func (c *Controller) tiltRoot(y, normal mgl64.Vec3, s float64) {
	t := s * c.cfg.LegNormalSpeed

	x := c.body.Right()
	angleX := vmath.SignedAngle(vmath.ProjectOnPlane(y, x), vmath.ProjectOnPlane(normal, x), x)
	angleX = vmath.LerpAngle(0, angleX, t)
	c.root.SetRotation(vmath.AngleAxis(angleX, x).Mul(c.root.Rotation()))

	// Roll is measured from the pitched up axis, not the pre-pitch y, so pitch
	// does not leak into roll
	rot := c.root.Rotation()
	z := rot.Rotate(c.bodyZ)
	pitched := rot.Rotate(c.bodyY)
	angleZ := vmath.SignedAngle(vmath.ProjectOnPlane(pitched, z), vmath.ProjectOnPlane(normal, z), z)
	angleZ = vmath.LerpAngle(0, angleZ, t)
	c.root.SetRotation(vmath.AngleAxis(angleZ, z).Mul(c.root.Rotation()))
}

// breathe returns the centroid raised along the root up axis by a sinusoid
func (c *Controller) breathe() mgl64.Vec3 {
	t := math.Mod(c.elapsed.Seconds()*2*math.Pi/c.cfg.BreathePeriod, 2*math.Pi)
	amplitude := c.cfg.BreatheMagnitude * c.ColliderRadius()
	up := c.root.Rotation().Rotate(c.bodyY)
	return c.bodyCentroid.Add(up.Mul(amplitude * (math.Sin(t) + 1)))
}

// LegsCentroid returns the torso target from the mean leg end-effector position,
// blended toward DefaultCentroid per axis by the normal and tangent weights
// Returns the root position when no legs are assigned
func (c *Controller) LegsCentroid() mgl64.Vec3 {
	if len(c.legs) == 0 {
		if !c.warnedNoLegs {
			c.logger.Warn("leg centroid requested with no legs assigned, holding root position")
			c.warnedNoLegs = true
		}
		return c.root.Position()
	}

	def := c.DefaultCentroid()
	up := c.body.Up()

	var sum mgl64.Vec3
	for _, leg := range c.legs {
		sum = sum.Add(leg.EndEffector())
	}
	centroid := sum.Mul(1 / float64(len(c.legs)))
	centroid = centroid.Add(vmath.Project(def.Sub(c.ColliderBottomPoint()), up))

	delta := centroid.Sub(def)
	normalPart := vmath.Project(delta, up)
	tangentPart := vmath.ProjectOnPlane(delta, up)

	return def.
		Add(normalPart.Mul(c.cfg.LegCentroidNormalWeight)).
		Add(tangentPart.Mul(c.cfg.LegCentroidTangentWeight))
}

// LegsPlaneNormal returns the body up axis tilted toward each leg's offset
// Legs directly above or below the body origin are skipped
func (c *Controller) LegsPlaneNormal() mgl64.Vec3 {
	up := c.body.Up()
	if c.cfg.LegNormalWeight <= 0 {
		return up
	}

	origin := c.body.Position()
	normal := up
	for _, leg := range c.legs {
		toEnd := leg.EndEffector().Sub(origin)
		tangent := vmath.ProjectOnPlane(toEnd, up)
		if vmath.IsZero(tangent) {
			continue
		}
		tilt := mgl64.QuatNlerp(mgl64.QuatIdent(), vmath.FromToRotation(tangent, toEnd), c.cfg.LegNormalWeight)
		normal = tilt.Rotate(normal)
	}
	return normal
}
