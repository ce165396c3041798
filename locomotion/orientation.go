package locomotion

import (
	"time"

	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// adaptOrientation turns the body up axis toward the sensed normal and pulls
// the body onto the surface while it is farther than GravityOffDistance
func (c *Controller) adaptOrientation(info GroundInfo, dt time.Duration) {
	speed := c.cfg.GroundNormalAdjustSpeed
	if info.Source == ProbeForward {
		speed = c.cfg.ForwardNormalAdjustSpeed
	}

	normal := vmath.Slerp(c.body.Up(), info.Normal, dt.Seconds()*speed)
	right := vmath.ProjectOnPlane(c.body.Right(), normal)

	// Degenerate basis keeps the previous orientation
	if goal, ok := vmath.RightUpRotation(right, normal); ok {
		if vmath.QuatAngle(c.body.Rotation(), goal) > vmath.Epsilon {
			c.body.SetRotation(goal)
		}
	}

	// Pull along the sensed normal, not the eased one
	if info.Distance > c.GravityOffDistance() {
		pull := info.Normal.Mul(-c.cfg.GravityMultiplier * parameter.SurfaceGravity * c.Scale())
		c.body.AddForce(pull, physics.ForceModeForce)
	}
}
