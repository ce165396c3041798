package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/vmath"
)

// Walk moves the body along direction at WalkSpeed; near-zero directions are ignored
func (c *Controller) Walk(direction mgl64.Vec3) {
	if direction.Len() < vmath.Epsilon {
		return
	}
	c.move(direction, c.cfg.WalkSpeed)
}

// Run moves the body along direction at RunSpeed; near-zero directions are ignored
func (c *Controller) Run(direction mgl64.Vec3) {
	if direction.Len() < vmath.Epsilon {
		return
	}
	c.move(direction, c.cfg.RunSpeed)
}

// move eases the step displacement into the running velocity and advances the body
// Off-forward requests are damped, and a step never exceeds the down probe radius
func (c *Controller) move(direction mgl64.Vec3, speed float64) {
	magnitude := direction.Len()
	if magnitude > 1 {
		magnitude = 1
	}
	dir := direction.Normalize()

	align := mgl64.Clamp(dir.Dot(c.body.Forward()), 0, 1)
	damp := align * align

	distance := parameter.StepDistanceFactor * speed * magnitude * damp * c.Scale()
	distance = mgl64.Clamp(distance, 0, parameter.ProbeRadiusStepCap*c.DownProbeRadius())

	c.velocity = vmath.Slerp(c.velocity, dir.Mul(distance), 1-c.cfg.WalkDrag)
	c.body.SetPosition(c.body.Position().Add(c.velocity))
}

// Turn rotates the body toward goalForward, projected onto the body's horizontal
// plane, by at most TurnSpeed degrees
func (c *Controller) Turn(goalForward mgl64.Vec3) {
	up := c.body.Up()
	goal := vmath.SafeNormalize(vmath.ProjectOnPlane(goalForward, up))
	if vmath.IsZero(goal) || vmath.Angle(goal, c.body.Forward()) < vmath.Epsilon {
		return
	}

	look, ok := vmath.LookRotation(goal, up)
	if !ok {
		return
	}
	c.body.SetRotation(vmath.RotateTowards(c.body.Rotation(), look, c.cfg.TurnSpeed))
}

// TurnAngle returns the remaining angle in degrees between the body forward and
// goalForward projected onto the body's horizontal plane
func (c *Controller) TurnAngle(goalForward mgl64.Vec3) float64 {
	goal := vmath.ProjectOnPlane(goalForward, c.body.Up())
	if vmath.IsZero(goal) {
		return 0
	}
	return math.Abs(vmath.Angle(goal, c.body.Forward()))
}
