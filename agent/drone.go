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
)

// Drone events
const (
	EventSpotted = "Spotted"
	EventLost    = "Lost"
)

// droneMachine patrols until the avatar enters the spot radius, then pursues
// until it escapes or the pursuit times out
const droneMachine = `
initial: Patrol
states:
  Patrol:
    on_enter: [{action: EnableSpotTrigger}]
    on_update: [{action: PatrolStep}]
    on_exit: [{action: DisableSpotTrigger}]
    transitions:
      - {trigger: Spotted, target: Pursue}
  Pursue:
    on_enter: [{action: LogState}]
    on_update: [{action: PursueStep}]
    transitions:
      - {trigger: Lost, target: Patrol}
      - {trigger: Tick, target: Patrol, guard: StateTimeExceeds, guard_args: {duration: 10s}}
`

// Locator reports a tracked position
type Locator func() mgl64.Vec3

// Drone is a flying patroller that chases the avatar on sight
type Drone struct {
	ID       uuid.UUID
	Pose     *physics.Pose
	Steering *Steering
	Patrol   *Patroller

	// Avatar is nil when there is nothing to chase
	Avatar     Locator
	SpotRadius float64
	LoseRadius float64

	spotEnabled bool
	machine     *fsm.Machine[*Drone]
	logger      *log.Logger
}

// NewDrone creates a drone patrolling path from pos
func NewDrone(pos mgl64.Vec3, path *Path, avatar Locator) (*Drone, error) {
	pose := physics.NewPose(pos, mgl64.QuatIdent())
	d := &Drone{
		ID:         uuid.New(),
		Pose:       pose,
		Steering:   NewSteering(pose, parameter.DroneSpeed),
		Patrol:     NewPatroller(path, parameter.WaypointArriveDistance),
		Avatar:     avatar,
		SpotRadius: parameter.DroneSpotRadius,
		LoseRadius: parameter.DroneLoseRadius,
		logger:     log.New(io.Discard),
	}

	m := fsm.NewMachine[*Drone]()
	m.RegisterEvent(EventSpotted, EventLost)
	m.RegisterAction("EnableSpotTrigger", func(d *Drone, _ map[string]any) { d.spotEnabled = true })
	m.RegisterAction("DisableSpotTrigger", func(d *Drone, _ map[string]any) { d.spotEnabled = false })
	m.RegisterAction("PatrolStep", (*Drone).patrolStep)
	m.RegisterAction("PursueStep", (*Drone).pursueStep)
	m.RegisterAction("LogState", func(d *Drone, _ map[string]any) {
		d.logger.Info("drone state", "id", d.ID, "state", d.machine.State())
	})
	if err := m.LoadConfig([]byte(droneMachine)); err != nil {
		return nil, errors.Wrap(err, "drone machine")
	}
	d.machine = m
	if err := m.Init(d); err != nil {
		return nil, errors.Wrap(err, "drone init")
	}
	return d, nil
}

// SetLogger routes drone diagnostics to l
func (d *Drone) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// State returns the active state name
func (d *Drone) State() string { return d.machine.State() }

// SpotEnabled reports whether the drone is currently looking for the avatar
func (d *Drone) SpotEnabled() bool { return d.spotEnabled }

// Update senses the avatar, advances the machine and flies
func (d *Drone) Update(dt time.Duration) {
	if d.Avatar != nil {
		dist := d.Avatar().Sub(d.Pose.Pos).Len()
		switch {
		case d.spotEnabled && dist <= d.SpotRadius:
			d.machine.HandleEvent(d, EventSpotted)
		case d.machine.In("Pursue") && dist > d.LoseRadius:
			d.machine.HandleEvent(d, EventLost)
		}
	}

	d.machine.Update(d, dt)
	d.Steering.Update(dt)
}

func (d *Drone) patrolStep(_ map[string]any) {
	if d.Patrol.Path.Len() == 0 {
		d.logger.Warn("drone has no patrol path", "id", d.ID)
		return
	}
	if target, ok := d.Patrol.Target(d.Pose.Pos); ok {
		d.Steering.SetMoveTarget(target)
	}
}

func (d *Drone) pursueStep(_ map[string]any) {
	if d.Avatar == nil {
		return
	}
	d.Steering.SetMoveTarget(d.Avatar())
	// Resume patrol from wherever the chase ends
	d.Patrol.Reset()
}

// Cleaner follows its cleaning path forever
type Cleaner struct {
	ID       uuid.UUID
	Pose     *physics.Pose
	Steering *Steering
	Patrol   *Patroller
}

// NewCleaner creates a cleaner on path
func NewCleaner(pos mgl64.Vec3, path *Path, arriveDistance float64) *Cleaner {
	pose := physics.NewPose(pos, mgl64.QuatIdent())
	return &Cleaner{
		ID:       uuid.New(),
		Pose:     pose,
		Steering: NewSteering(pose, parameter.CleanerSpeed),
		Patrol:   NewPatroller(path, arriveDistance),
	}
}

// Update steers toward the current waypoint
func (c *Cleaner) Update(dt time.Duration) {
	if target, ok := c.Patrol.Target(c.Pose.Pos); ok {
		c.Steering.SetMoveTarget(target)
	}
	c.Steering.Update(dt)
}
