package parameter

import "time"

// Step Timing
const (
	// FixedStep is the physics step interval (50 Hz)
	FixedStep = 20 * time.Millisecond

	// RenderStep is the nominal render step interval (~60 FPS)
	RenderStep = 16 * time.Millisecond

	// MaxPhysicsSubsteps caps catch-up physics steps per frame to avoid a spiral of death
	MaxPhysicsSubsteps = 5
)

// Movement
const (
	WalkSpeed = 100.0
	RunSpeed  = 250.0

	// TurnSpeed is the maximum turn in degrees per physics step
	TurnSpeed = 5.0

	// WalkDrag is the velocity retention per step, (0,1]
	WalkDrag = 0.8

	// StepDistanceFactor converts speed units into per-step distance
	StepDistanceFactor = 0.0004

	// ProbeRadiusStepCap is the fraction of the down probe radius a single step may cover
	ProbeRadiusStepCap = 0.99
)

// Grounding
const (
	GravityMultiplier        = 3.0
	GroundNormalAdjustSpeed  = 3.0
	ForwardNormalAdjustSpeed = 8.0

	// GravityOffDistance is the resting threshold as a fraction of collider radius
	GravityOffDistance = 0.05

	// SurfaceGravity is the base pull toward the sensed surface, per unit scale
	SurfaceGravity = 0.0981
)

// Root Movement
const (
	RootOffsetHeight = 0.002

	LegCentroidAdjustment    = true
	LegCentroidSpeed         = 10.0
	LegCentroidNormalWeight  = 0.4
	LegCentroidTangentWeight = 0.1

	LegNormalAdjustment = true
	LegNormalSpeed      = 8.0
	LegNormalWeight     = 0.5
)

// Breathing
const (
	Breathing        = true
	BreathePeriod    = 4.0
	BreatheMagnitude = 0.05
)

// Ground Probes, lengths relative to collider length, sizes relative to collider radius
const (
	ForwardProbeLength = 0.8
	DownProbeLength    = 0.9
	ForwardProbeSize   = 0.66
	DownProbeSize      = 0.9
)

// Gait (reference leg provider)
const (
	// GaitStepThreshold is the foot drift, relative to collider radius, that triggers a step
	GaitStepThreshold = 0.6

	// GaitStepDuration is the time a foot spends in the air
	GaitStepDuration = 120 * time.Millisecond

	// GaitStepHeight is the arc apex relative to collider radius
	GaitStepHeight = 0.3

	// GaitReach is the down-cast length from the hip, relative to collider radius
	GaitReach = 3.0

	// GaitProbeSize is the foot probe radius relative to collider radius
	GaitProbeSize = 0.1
)
