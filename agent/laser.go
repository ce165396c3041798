package agent

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

// LaserTarget is anything a beam can hit
// TargetID identifies the target across sweeps, so implementations need not be comparable
type LaserTarget interface {
	TargetID() uuid.UUID
	Position() mgl64.Vec3
	HitRadius() float64
	ReceiveLaser(l *Laser)
}

// Laser is a beam from Pose along its forward axis
// Targets are notified once when they enter a deadly beam
type Laser struct {
	ID        uuid.UUID
	Pose      *physics.Pose
	Thickness float64
	Length    float64

	deadly bool
	inside map[uuid.UUID]struct{}
}

// NewLaser creates a harmless laser with default dimensions
func NewLaser(pose *physics.Pose) *Laser {
	return &Laser{
		ID:        uuid.New(),
		Pose:      pose,
		Thickness: parameter.LaserDefaultThickness,
		Length:    parameter.LaserDefaultLength,
		inside:    make(map[uuid.UUID]struct{}),
	}
}

// SetDeadly arms or disarms the beam; disarming forgets who was inside
func (l *Laser) SetDeadly(deadly bool) {
	l.deadly = deadly
	if !deadly {
		clear(l.inside)
	}
}

// IsDeadly reports whether the beam hurts
func (l *Laser) IsDeadly() bool { return l.deadly }

// Segment returns the beam start and end
func (l *Laser) Segment() (mgl64.Vec3, mgl64.Vec3) {
	start := l.Pose.Pos
	return start, start.Add(l.Pose.Forward().Mul(l.Length))
}

// Touches reports whether a sphere overlaps the beam capsule
func (l *Laser) Touches(center mgl64.Vec3, radius float64) bool {
	a, b := l.Segment()
	ab := b.Sub(a)
	t := 0.0
	if sq := ab.LenSqr(); sq > vmath.ZeroSqrEpsilon {
		t = vmath.Clamp01(center.Sub(a).Dot(ab) / sq)
	}
	closest := a.Add(ab.Mul(t))
	reach := l.Thickness/2 + radius
	return closest.Sub(center).LenSqr() <= reach*reach
}

// Sweep notifies targets entering the deadly beam and returns how many entered
func (l *Laser) Sweep(targets []LaserTarget) int {
	if !l.deadly {
		return 0
	}
	entered := 0
	for _, target := range targets {
		id := target.TargetID()
		_, was := l.inside[id]
		if l.Touches(target.Position(), target.HitRadius()) {
			if !was {
				l.inside[id] = struct{}{}
				target.ReceiveLaser(l)
				entered++
			}
		} else if was {
			delete(l.inside, id)
		}
	}
	return entered
}
