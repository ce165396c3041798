package locomotion

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/wallwalker/parameter"
)

// StepFunc is a fixed or variable step callback
type StepFunc func(dt time.Duration)

// Loop drives physics callbacks at a fixed step and render callbacks once per frame
// Physics callbacks run in registration order, then render callbacks
type Loop struct {
	step        time.Duration
	maxSubsteps int
	accumulator time.Duration

	physics []StepFunc
	render  []StepFunc

	dropped time.Duration
	logger  *log.Logger
}

// NewLoop creates a loop; non-positive arguments fall back to parameter defaults
func NewLoop(step time.Duration, maxSubsteps int) *Loop {
	if step <= 0 {
		step = parameter.FixedStep
	}
	if maxSubsteps <= 0 {
		maxSubsteps = parameter.MaxPhysicsSubsteps
	}
	return &Loop{step: step, maxSubsteps: maxSubsteps, logger: log.New(io.Discard)}
}

// SetLogger routes loop diagnostics to l
func (l *Loop) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Bind registers a controller's physics and render entry points
func (l *Loop) Bind(c *Controller) {
	l.OnPhysics(c.OnPhysicsStep)
	l.OnRender(c.OnRenderStep)
}

// OnPhysics appends a fixed-step callback
func (l *Loop) OnPhysics(fn StepFunc) {
	l.physics = append(l.physics, fn)
}

// OnRender appends a per-frame callback
func (l *Loop) OnRender(fn StepFunc) {
	l.render = append(l.render, fn)
}

// Step returns the fixed physics step
func (l *Loop) Step() time.Duration { return l.step }

// Alpha returns the fraction of a physics step left in the accumulator
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.step)
}

// Dropped returns the total simulation time discarded by the substep cap
func (l *Loop) Dropped() time.Duration { return l.dropped }

// Advance consumes frame time: whole physics steps first, then one render pass
// Returns the number of physics steps run
func (l *Loop) Advance(frame time.Duration) int {
	if frame < 0 {
		frame = 0
	}
	l.accumulator += frame

	steps := 0
	for l.accumulator >= l.step && steps < l.maxSubsteps {
		for _, fn := range l.physics {
			fn(l.step)
		}
		l.accumulator -= l.step
		steps++
	}

	// Spiral of death guard
	if l.accumulator >= l.step {
		excess := l.accumulator - l.accumulator%l.step
		l.dropped += excess
		l.accumulator -= excess
		l.logger.Debug("physics behind, dropping time", "dropped", excess, "steps", steps)
	}

	for _, fn := range l.render {
		fn(frame)
	}
	return steps
}
