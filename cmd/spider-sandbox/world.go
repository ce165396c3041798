package main

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wallwalker/agent"
	"github.com/lixenwraith/wallwalker/audio"
	"github.com/lixenwraith/wallwalker/gait"
	"github.com/lixenwraith/wallwalker/locomotion"
	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/status"
	"github.com/lixenwraith/wallwalker/vmath"
)

const (
	spiderLegs     = 8
	spiderRadius   = 0.5
	bodyDrag       = 4.0
	airGravity     = 9.81
	holdWindow     = 300 * time.Millisecond
	laserPeriod    = 2 * time.Second
	laserKnockback = 3.0
	tourArrive     = 1.0
	pilotArrive    = 0.3
	cleanerArrive  = 0.5
	runStepSpeed   = 5.0 // u/s at which footsteps reach full intensity
)

// HUD telemetry keys
const (
	metricHits   = "hits"
	metricSteps  = "steps"
	metricVents  = "vents"
	metricTopSpd = "top speed"
)

// sandboxVent scales the vent launch down to the arena size
var sandboxVent = agent.VentConfig{
	InForce:  20,
	InTime:   parameter.VentInTime,
	OutSpeed: 8,
	OutTime:  parameter.VentOutTime,
}

// action is a held control; terminals report presses only, so a press holds for holdWindow
type action uint8

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actRun
	actionCount
)

type intent struct {
	until [actionCount]time.Time
}

func (in *intent) press(a action, now time.Time)     { in.until[a] = now.Add(holdWindow) }
func (in *intent) held(a action, now time.Time) bool { return now.Before(in.until[a]) }

// sandbox is the simulated arena
type sandbox struct {
	id     uuid.UUID
	cfg    locomotion.Config
	scene  *physics.Scene
	quads  []*physics.Quad
	logger *log.Logger
	sound  *audio.SoundManager
	now    func() time.Time
	stats  *status.Registry

	body     *physics.RigidBody
	collider physics.SphereCollider
	root     *physics.Pose
	ctrl     *locomotion.Controller
	rig      *gait.Rig
	loop     *locomotion.Loop

	input      intent
	pilot      *agent.Autopilot
	tour       *agent.Patroller
	patrolling bool

	drone      *agent.Drone
	cleaner    *agent.Cleaner
	laser      *agent.Laser
	laserClock time.Duration

	camera *agent.CameraManager
	vents  *agent.VentingManager
	intake *agent.Vent
	outlet *agent.Vent
	vent   *agent.VentSequence
}

// buildScene lays out a floor, a far wall and a ramp, all walkable
func buildScene() []*physics.Quad {
	ramp := mgl64.Vec3{0, math.Cos(mgl64.DegToRad(30)), -math.Sin(mgl64.DegToRad(30))}
	return []*physics.Quad{
		physics.NewQuad(mgl64.Vec3{}, vmath.WorldUp, vmath.WorldRight, 12, 12, physics.LayerWalkable),
		physics.NewQuad(mgl64.Vec3{0, 6, 12}, mgl64.Vec3{0, 0, -1}, vmath.WorldRight, 12, 6, physics.LayerWalkable),
		physics.NewQuad(mgl64.Vec3{-7, 1.5, 4}, ramp, vmath.WorldRight, 2, 3, physics.LayerWalkable),
	}
}

func newSandbox(cfg locomotion.Config, sound *audio.SoundManager, logger *log.Logger) (*sandbox, error) {
	s := &sandbox{
		id:       uuid.New(),
		cfg:      cfg,
		quads:    buildScene(),
		logger:   logger,
		sound:    sound,
		now:      time.Now,
		stats:    status.NewRegistry(),
		collider: physics.SphereCollider{Radius: spiderRadius},
		camera:   agent.NewCameraManager(),
		vents:    &agent.VentingManager{},
	}
	s.scene = physics.NewScene()
	for _, q := range s.quads {
		s.scene.Add(q)
	}
	s.camera.SetLogger(logger)

	s.body = physics.NewRigidBody(mgl64.Vec3{0, spiderRadius, 0}, mgl64.QuatIdent(), 1)
	s.body.Drag = bodyDrag
	s.root = physics.NewPose(mgl64.Vec3{0, spiderRadius + 0.3, 0}, mgl64.QuatIdent())

	s.rig = gait.NewRig(s.body, s.scene, cfg.WalkableMask, gait.Stance(spiderLegs, spiderRadius), gait.DefaultConfig())
	ctrl, err := locomotion.New(s.body, s.collider, s.root, s.scene, cfg,
		locomotion.WithLogger(logger),
		locomotion.WithLegs(s.rig.Legs()...),
		locomotion.WithFixedStep(parameter.FixedStep),
	)
	if err != nil {
		return nil, errors.Wrap(err, "spider controller")
	}
	s.ctrl = ctrl
	s.rig.Attach(ctrl)
	s.rig.OnStep(func(int) {
		s.stats.Inc(metricSteps)
		s.sound.PlayStep(s.ctrl.VelocityPerSecond().Len() / runStepSpeed)
	})

	ctrl.OnMove(s.steer)
	s.pilot = agent.NewAutopilot(ctrl, pilotArrive)
	s.tour = agent.NewPatroller(agent.NewPath("tour",
		mgl64.Vec3{-6, 0, -6}, mgl64.Vec3{6, 0, -6}, mgl64.Vec3{6, 0, 6}, mgl64.Vec3{-6, 0, 6},
	), tourArrive)

	s.drone, err = agent.NewDrone(mgl64.Vec3{8, 3, 8}, agent.NewPath("drone",
		mgl64.Vec3{8, 3, 8}, mgl64.Vec3{-8, 3, 8}, mgl64.Vec3{-8, 3, -8}, mgl64.Vec3{8, 3, -8},
	), func() mgl64.Vec3 { return s.body.Pos })
	if err != nil {
		return nil, err
	}
	s.drone.SetLogger(logger)

	s.cleaner = agent.NewCleaner(mgl64.Vec3{-10, 0.2, -10}, agent.NewPath("cleaner",
		mgl64.Vec3{-10, 0.2, -10}, mgl64.Vec3{10, 0.2, -10}, mgl64.Vec3{10, 0.2, 10}, mgl64.Vec3{-10, 0.2, 10},
	), cleanerArrive)

	gate, _ := vmath.LookRotation(vmath.WorldRight, vmath.WorldUp)
	s.laser = agent.NewLaser(physics.NewPose(mgl64.Vec3{-3, spiderRadius, 6}, gate))
	s.laser.Length = 6

	s.intake = agent.NewVent(mgl64.Vec3{9, spiderRadius, -9}, mgl64.Vec3{0, 0, 1})
	s.outlet = agent.NewVent(mgl64.Vec3{-11, 1, -2}, mgl64.Vec3{-1, 0, 0})
	s.intake.Outlet = s.outlet

	s.loop = locomotion.NewLoop(parameter.FixedStep, parameter.MaxPhysicsSubsteps)
	s.loop.SetLogger(logger)
	s.loop.OnPhysics(s.physicsStep)
	s.loop.OnRender(s.renderStep)
	return s, nil
}

// physicsStep runs one fixed step: locomotion or venting, integration, contacts, agents
func (s *sandbox) physicsStep(dt time.Duration) {
	if s.vent != nil {
		s.vent.Update(dt)
		if s.vent.Done() {
			s.vent = nil
		}
	} else {
		s.ctrl.OnPhysicsStep(dt)
		if !s.ctrl.GroundInfo().IsGrounded {
			s.body.AddForce(vmath.WorldUp.Mul(-airGravity), physics.ForceModeAcceleration)
		}
	}

	s.body.Integrate(dt)
	s.scene.ResolvePenetration(s.body, s.collider, s.cfg.WalkableMask)

	s.drone.Update(dt)
	s.cleaner.Update(dt)

	s.laserClock += dt
	if s.laserClock >= laserPeriod {
		s.laserClock -= laserPeriod
		s.laser.SetDeadly(!s.laser.IsDeadly())
	}
	s.laser.Sweep([]agent.LaserTarget{spiderTarget{s}})
}

// renderStep eases the torso, moves the feet and keeps the breathing hum in sync
func (s *sandbox) renderStep(dt time.Duration) {
	s.ctrl.OnRenderStep(dt)
	s.rig.Update(dt)
	s.stats.Gauges.Get(metricTopSpd).Max(s.ctrl.VelocityPerSecond().Len())
	s.sound.SetBreathing(s.ctrl.Config().Breathing && !s.ctrl.IsMoving())
}

// steer applies player input or the tour autopilot from inside the physics step
func (s *sandbox) steer(time.Duration) {
	if s.patrolling {
		if !s.pilot.Active() {
			if target, ok := s.tour.Target(s.body.Pos); ok {
				s.pilot.SetMoveTarget(target)
			}
		}
		return
	}

	now := s.now()
	forward, right := s.body.Forward(), s.body.Right()
	move := s.ctrl.Walk
	if s.input.held(actRun, now) {
		move = s.ctrl.Run
	}

	if s.input.held(actLeft, now) {
		s.ctrl.Turn(right.Mul(-1))
	}
	if s.input.held(actRight, now) {
		s.ctrl.Turn(right)
	}
	if s.input.held(actForward, now) {
		move(forward)
	}
	if s.input.held(actBack, now) {
		back := forward.Mul(-1)
		s.ctrl.Turn(back)
		move(back)
	}
}

// press records a movement key; uppercase runs
func (s *sandbox) press(a action, run bool) {
	now := s.now()
	s.input.press(a, now)
	if run {
		s.input.press(actRun, now)
	}
	if s.patrolling {
		s.togglePatrol()
	}
}

func (s *sandbox) togglePatrol() {
	s.patrolling = !s.patrolling
	if !s.patrolling {
		s.pilot.Stop()
	}
	s.logger.Info("tour autopilot", "on", s.patrolling)
}

func (s *sandbox) toggleGroundCheck() {
	s.ctrl.SetGroundCheckEnabled(!s.ctrl.GroundCheckEnabled())
	s.logger.Info("ground check", "on", s.ctrl.GroundCheckEnabled())
}

func (s *sandbox) toggleBreathing() {
	s.ctrl.SetBreathing(!s.ctrl.Config().Breathing)
}

// startVent sends the spider through the intake; ignored while a sequence runs
func (s *sandbox) startVent() {
	if s.vent != nil {
		return
	}
	seq, err := agent.NewVentSequence(s.body, s.intake, s.outlet, s.vents, s.camera, sandboxVent)
	if err != nil {
		s.logger.Error("vent sequence", "err", err)
		return
	}
	seq.SetLogger(s.logger)
	seq.OnFinish = func(velocity mgl64.Vec3) {
		s.ctrl.SetGroundCheckEnabled(true)
		s.logger.Info("vent exit", "speed", velocity.Len())
	}

	if s.patrolling {
		s.togglePatrol()
	}
	s.ctrl.SetGroundCheckEnabled(false)
	if err := seq.Start(s.ctrl.VelocityPerSecond()); err != nil {
		s.logger.Error("vent start", "err", err)
		s.ctrl.SetGroundCheckEnabled(true)
		return
	}
	s.sound.Play(audio.SoundVent)
	s.stats.Inc(metricVents)
	s.vent = seq
}

// focus is the point the camera frames
func (s *sandbox) focus() mgl64.Vec3 {
	switch s.camera.State() {
	case agent.CameraVentingIn:
		return s.intake.Pose.Pos
	case agent.CameraVentingOut:
		return s.outlet.Pose.Pos
	default:
		return s.body.Pos
	}
}

// spiderTarget exposes the spider body to lasers
type spiderTarget struct{ s *sandbox }

func (t spiderTarget) TargetID() uuid.UUID  { return t.s.id }
func (t spiderTarget) Position() mgl64.Vec3 { return t.s.body.Pos }
func (t spiderTarget) HitRadius() float64   { return t.s.ctrl.ColliderRadius() }

func (t spiderTarget) ReceiveLaser(l *agent.Laser) {
	hits := t.s.stats.Inc(metricHits)
	t.s.sound.Play(audio.SoundLaser)
	t.s.body.AddForce(t.s.body.Up().Mul(laserKnockback), physics.ForceModeVelocityChange)
	t.s.logger.Warn("laser hit", "laser", l.ID, "hits", hits)
}
