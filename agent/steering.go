package agent

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/locomotion"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// Mover accepts a world-space destination
type Mover interface {
	SetMoveTarget(target mgl64.Vec3)
}

// Steering flies a pose straight at its target at constant speed, facing the
// flat direction of travel
type Steering struct {
	Pose  *physics.Pose
	Speed float64

	target mgl64.Vec3
	active bool
}

// NewSteering creates an idle steering for pose
func NewSteering(pose *physics.Pose, speed float64) *Steering {
	return &Steering{Pose: pose, Speed: speed}
}

func (s *Steering) SetMoveTarget(target mgl64.Vec3) {
	s.target = target
	s.active = true
}

// Stop clears the target
func (s *Steering) Stop() { s.active = false }

// Active reports whether a target is set and not yet reached
func (s *Steering) Active() bool { return s.active }

// Update advances toward the target, stopping on it
func (s *Steering) Update(dt time.Duration) {
	if !s.active {
		return
	}
	delta := s.target.Sub(s.Pose.Pos)
	step := s.Speed * dt.Seconds()

	if flat := vmath.ProjectOnPlane(delta, vmath.WorldUp); !vmath.IsZero(flat) {
		if look, ok := vmath.LookRotation(flat, vmath.WorldUp); ok {
			s.Pose.SetRotation(look)
		}
	}

	if delta.Len() <= step {
		s.Pose.Pos = s.target
		s.active = false
		return
	}
	s.Pose.Pos = s.Pose.Pos.Add(vmath.SafeNormalize(delta).Mul(step))
}

// Autopilot drives a locomotion controller toward a target from inside its
// physics step, turning and walking like a player would
type Autopilot struct {
	ctrl *locomotion.Controller

	ArriveDistance float64
	Running        bool

	target mgl64.Vec3
	active bool
}

// NewAutopilot hooks an autopilot into the controller's move listeners
func NewAutopilot(ctrl *locomotion.Controller, arriveDistance float64) *Autopilot {
	a := &Autopilot{ctrl: ctrl, ArriveDistance: arriveDistance}
	ctrl.OnMove(a.step)
	return a
}

func (a *Autopilot) SetMoveTarget(target mgl64.Vec3) {
	a.target = target
	a.active = true
}

// Stop releases control
func (a *Autopilot) Stop() { a.active = false }

// Active reports whether the autopilot is steering
func (a *Autopilot) Active() bool { return a.active }

func (a *Autopilot) step(time.Duration) {
	if !a.active {
		return
	}
	body := a.ctrl.Body()
	to := vmath.ProjectOnPlane(a.target.Sub(body.Position()), body.Up())
	if to.Len() < a.ArriveDistance {
		a.active = false
		return
	}

	dir := vmath.SafeNormalize(to)
	a.ctrl.Turn(dir)
	if a.Running {
		a.ctrl.Run(dir)
	} else {
		a.ctrl.Walk(dir)
	}
}
