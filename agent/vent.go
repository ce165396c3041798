package agent

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wallwalker/fsm"
	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// Vent is an intake or outlet opening; it blows along its negative forward axis
type Vent struct {
	ID     uuid.UUID
	Pose   *physics.Pose
	Outlet *Vent
}

// NewVent creates a vent at pos facing forward
func NewVent(pos, forward mgl64.Vec3) *Vent {
	rot, ok := vmath.LookRotation(forward, vmath.WorldUp)
	if !ok {
		rot, _ = vmath.LookRotation(forward, vmath.WorldForward)
	}
	return &Vent{ID: uuid.New(), Pose: physics.NewPose(pos, rot)}
}

// Direction is the airflow direction
func (v *Vent) Direction() mgl64.Vec3 {
	return v.Pose.Forward().Mul(-1)
}

// VentingManager tracks the vents of the sequence in progress
type VentingManager struct {
	CurrentIntake *Vent
	CurrentOutlet *Vent
}

// VentConfig tunes a venting sequence
type VentConfig struct {
	InForce  float64
	InTime   time.Duration
	OutSpeed float64
	OutTime  time.Duration
}

// DefaultVentConfig returns the parameter defaults
func DefaultVentConfig() VentConfig {
	return VentConfig{
		InForce:  parameter.VentInForce,
		InTime:   parameter.VentInTime,
		OutSpeed: parameter.VentOutSpeed,
		OutTime:  parameter.VentOutTime,
	}
}

// ventMachine sucks the body into the intake, holds the camera on the duct,
// then launches the body from the outlet and hands control back
const ventMachine = `
initial: Intake
states:
  Intake:
    on_update: [{action: PullIntoIntake}]
    transitions:
      - {trigger: Tick, target: Transit, guard: IntakeElapsed}
  Transit:
    on_enter: [{action: Camera, args: {state: venting-out}}]
    transitions:
      - {trigger: Tick, target: Launch, guard: StateTimeExceeds, guard_args: {duration: 1s}}
  Launch:
    on_enter:
      - {action: Camera, args: {state: avatar}}
      - {action: LaunchFromOutlet}
    transitions:
      - {trigger: Tick, target: Done, guard: OutletElapsed}
  Done:
    on_enter: [{action: Release}]
`

// VentSequence moves a body from an intake vent to its outlet as a timed state machine
type VentSequence struct {
	body    *physics.RigidBody
	intake  *Vent
	outlet  *Vent
	manager *VentingManager
	camera  CameraDirector
	cfg     VentConfig

	wasKinematic bool
	wasColliding bool

	// OnFinish receives the body velocity when control is handed back
	OnFinish func(velocity mgl64.Vec3)

	machine *fsm.Machine[*VentSequence]
	logger  *log.Logger
	done    bool
}

// NewVentSequence prepares a sequence; Start begins it
func NewVentSequence(body *physics.RigidBody, intake, outlet *Vent, manager *VentingManager, camera CameraDirector, cfg VentConfig) (*VentSequence, error) {
	if body == nil || intake == nil || outlet == nil || manager == nil || camera == nil {
		return nil, errors.New("vent sequence: missing collaborator")
	}
	s := &VentSequence{
		body:    body,
		intake:  intake,
		outlet:  outlet,
		manager: manager,
		camera:  camera,
		cfg:     cfg,
		logger:  log.New(io.Discard),
	}

	m := fsm.NewMachine[*VentSequence]()
	m.RegisterAction("PullIntoIntake", (*VentSequence).pullIntoIntake)
	m.RegisterAction("LaunchFromOutlet", (*VentSequence).launchFromOutlet)
	m.RegisterAction("Release", (*VentSequence).release)
	m.RegisterAction("Camera", (*VentSequence).cameraAction)
	m.RegisterGuard("IntakeElapsed", func(s *VentSequence) bool { return s.machine.TimeInState() >= s.cfg.InTime })
	m.RegisterGuard("OutletElapsed", func(s *VentSequence) bool { return s.machine.TimeInState() >= s.cfg.OutTime })
	if err := m.LoadConfig([]byte(ventMachine)); err != nil {
		return nil, errors.Wrap(err, "vent machine")
	}
	s.machine = m
	return s, nil
}

// SetLogger routes sequence diagnostics to l
func (s *VentSequence) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Start claims the body: dynamic, non-colliding, carrying the given velocity
func (s *VentSequence) Start(velocity mgl64.Vec3) error {
	s.manager.CurrentIntake = s.intake
	s.manager.CurrentOutlet = s.outlet
	s.camera.TransitionToState(CameraVentingIn)

	s.wasKinematic = s.body.Kinematic
	s.wasColliding = s.body.DetectCollisions
	s.body.Velocity = velocity
	s.body.Kinematic = false
	s.body.DetectCollisions = false

	s.logger.Info("venting started", "intake", s.intake.ID, "outlet", s.outlet.ID)
	return s.machine.Init(s)
}

// Update advances the sequence by dt
func (s *VentSequence) Update(dt time.Duration) {
	if s.done {
		return
	}
	s.machine.Update(s, dt)
}

// State returns the current phase name
func (s *VentSequence) State() string { return s.machine.State() }

// Done reports whether the body has been handed back
func (s *VentSequence) Done() bool { return s.done }

func (s *VentSequence) pullIntoIntake(_ map[string]any) {
	toward := vmath.SafeNormalize(s.intake.Pose.Pos.Sub(s.body.Pos))
	s.body.AddForce(toward.Mul(s.cfg.InForce), physics.ForceModeAcceleration)
	s.body.AddForce(s.intake.Direction().Mul(s.cfg.InForce), physics.ForceModeAcceleration)
}

func (s *VentSequence) launchFromOutlet(_ map[string]any) {
	s.body.Velocity = mgl64.Vec3{}
	s.body.Pos = s.outlet.Pose.Pos
	s.body.AddForce(s.outlet.Direction().Mul(s.cfg.OutSpeed), physics.ForceModeVelocityChange)
}

func (s *VentSequence) release(_ map[string]any) {
	s.body.Kinematic = s.wasKinematic
	s.body.DetectCollisions = s.wasColliding
	s.done = true
	s.logger.Info("venting finished", "velocity", s.body.Velocity)
	if s.OnFinish != nil {
		s.OnFinish(s.body.Velocity)
	}
}

func (s *VentSequence) cameraAction(args map[string]any) {
	switch args["state"] {
	case "venting-in":
		s.camera.TransitionToState(CameraVentingIn)
	case "venting-out":
		s.camera.TransitionToState(CameraVentingOut)
	default:
		s.camera.TransitionToState(CameraAvatar)
	}
}
