// Package gait provides procedural feet for a locomotion controller
// Feet are planted by down casts from their hips and step in alternating groups
package gait

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/locomotion"
	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// Sizing supplies the body size the rig scales its probes and steps by
type Sizing interface {
	ColliderRadius() float64
}

// Config is relative to the attached collider radius except StepDuration
type Config struct {
	StepThreshold float64
	StepDuration  time.Duration
	StepHeight    float64
	Reach         float64
	ProbeSize     float64
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		StepThreshold: parameter.GaitStepThreshold,
		StepDuration:  parameter.GaitStepDuration,
		StepHeight:    parameter.GaitStepHeight,
		Reach:         parameter.GaitReach,
		ProbeSize:     parameter.GaitProbeSize,
	}
}

// Foot is one leg end-effector
type Foot struct {
	// Hip is the body-local rest offset the foot is cast down from
	Hip   mgl64.Vec3
	Group int

	pos      mgl64.Vec3
	from, to mgl64.Vec3
	stepping bool
	elapsed  time.Duration
}

// EndEffector returns the current foot tip position
func (f *Foot) EndEffector() mgl64.Vec3 { return f.pos }

// Stepping reports whether the foot is in the air
func (f *Foot) Stepping() bool { return f.stepping }

// Rig owns the feet of one body
type Rig struct {
	body   physics.Body
	caster physics.Caster
	mask   physics.LayerMask
	cfg    Config
	sizing Sizing

	feet    []*Foot
	planted bool
	onStep  []func(foot int)
}

// NewRig creates feet at the given body-local hip offsets
// Feet alternate between two groups so neighbours never lift together
func NewRig(body physics.Body, caster physics.Caster, mask physics.LayerMask, hips []mgl64.Vec3, cfg Config) *Rig {
	r := &Rig{body: body, caster: caster, mask: mask, cfg: cfg}
	for i, hip := range hips {
		r.feet = append(r.feet, &Foot{Hip: hip, Group: stanceGroup(i)})
	}
	return r
}

// stanceGroup alternates along each side: hips are ordered left/right pairs front to back
func stanceGroup(i int) int {
	return (i/2 + i%2) % 2
}

// Attach binds the sizing source; Update is a no-op until attached
func (r *Rig) Attach(s Sizing) {
	r.sizing = s
}

// OnStep registers a callback fired when a foot lands
func (r *Rig) OnStep(fn func(foot int)) {
	r.onStep = append(r.onStep, fn)
}

// Legs returns the feet as controller leg handles
func (r *Rig) Legs() []locomotion.Leg {
	legs := make([]locomotion.Leg, len(r.feet))
	for i, f := range r.feet {
		legs[i] = f
	}
	return legs
}

// Feet returns the feet
func (r *Rig) Feet() []*Foot { return r.feet }

// Target returns where foot i would plant now
// ok is false before Attach, when the rig has no size to probe with
func (r *Rig) Target(i int) (target mgl64.Vec3, ok bool) {
	if r.sizing == nil {
		return mgl64.Vec3{}, false
	}
	radius := r.sizing.ColliderRadius()
	up := r.body.Up()
	hip := physics.TransformPoint(r.body, r.body.LossyScale(), r.feet[i].Hip)
	origin := hip.Add(up.Mul(radius))

	if hit, ok := r.caster.SphereCast(origin, up.Mul(-1), r.cfg.ProbeSize*radius, r.cfg.Reach*radius, r.mask); ok {
		return hit.Point, true
	}
	// Dangle below the hip
	return hip.Sub(up.Mul(radius)), true
}

// Update advances stepping feet and lifts feet that drifted past the threshold
func (r *Rig) Update(dt time.Duration) {
	if r.sizing == nil {
		return
	}
	if !r.planted {
		r.Plant()
		return
	}

	radius := r.sizing.ColliderRadius()
	up := r.body.Up()

	for i, f := range r.feet {
		if !f.stepping {
			continue
		}
		f.elapsed += dt
		p := vmath.Clamp01(f.elapsed.Seconds() / r.cfg.StepDuration.Seconds())
		f.pos = vmath.Lerp(f.from, f.to, p).Add(up.Mul(r.cfg.StepHeight * radius * math.Sin(math.Pi*p)))
		if p >= 1 {
			f.pos = f.to
			f.stepping = false
			for _, fn := range r.onStep {
				fn(i)
			}
		}
	}

	threshold := r.cfg.StepThreshold * radius
	for i, f := range r.feet {
		if f.stepping || !r.groupFree(f.Group) {
			continue
		}
		target, _ := r.Target(i)
		if f.pos.Sub(target).Len() > threshold {
			f.from, f.to = f.pos, target
			f.stepping = true
			f.elapsed = 0
		}
	}
}

// Plant snaps every foot onto its target
func (r *Rig) Plant() {
	if r.sizing == nil {
		return
	}
	for i, f := range r.feet {
		f.pos, _ = r.Target(i)
		f.stepping = false
	}
	r.planted = true
}

// groupFree reports whether no foot of another group is airborne
func (r *Rig) groupFree(group int) bool {
	for _, f := range r.feet {
		if f.stepping && f.Group != group {
			return false
		}
	}
	return true
}

// Stance returns hip offsets for n legs in left/right pairs from front to back,
// spread around a body of the given local radius
func Stance(n int, radius float64) []mgl64.Vec3 {
	pairs := (n + 1) / 2
	hips := make([]mgl64.Vec3, 0, n)
	for p := 0; p < pairs; p++ {
		z := radius * 1.2
		if pairs > 1 {
			z = radius * (1.2 - 2.4*float64(p)/float64(pairs-1))
		}
		hips = append(hips, mgl64.Vec3{-1.6 * radius, 0, z})
		if len(hips) < n {
			hips = append(hips, mgl64.Vec3{1.6 * radius, 0, z})
		}
	}
	return hips
}
