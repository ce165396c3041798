// Package agent holds the actors around the walking avatar: patrolling drones
// and cleaners, the venting sequence, camera states and laser hazards
package agent

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/vmath"
)

// Waypoint is a fixed point on a path
type Waypoint struct {
	Position mgl64.Vec3
}

// Path is an ordered loop of waypoints
type Path struct {
	Name      string
	Waypoints []Waypoint
}

// NewPath creates a path through the given points
func NewPath(name string, points ...mgl64.Vec3) *Path {
	p := &Path{Name: name}
	for _, pt := range points {
		p.Waypoints = append(p.Waypoints, Waypoint{Position: pt})
	}
	return p
}

// Len returns the number of waypoints
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Waypoints)
}

// Nearest returns the index of the waypoint closest to pos ignoring height, -1 if empty
func (p *Path) Nearest(pos mgl64.Vec3) int {
	best, bestDist := -1, math.Inf(1)
	for i, w := range p.Waypoints {
		if d := vmath.FlatDistance(w.Position, pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Next returns the index after i, wrapping to the start
func (p *Path) Next(i int) int {
	return (i + 1) % len(p.Waypoints)
}

// Patroller walks a path: it starts at the nearest waypoint and advances when
// within ArriveDistance of the current one
type Patroller struct {
	Path           *Path
	ArriveDistance float64

	current int
}

// NewPatroller creates a patroller with no current waypoint
func NewPatroller(path *Path, arriveDistance float64) *Patroller {
	return &Patroller{Path: path, ArriveDistance: arriveDistance, current: -1}
}

// Reset forgets the current waypoint
func (p *Patroller) Reset() {
	p.current = -1
}

// Current returns the current waypoint index, -1 before the first Target
func (p *Patroller) Current() int {
	return p.current
}

// Target returns the position to steer toward from pos; false for an empty path
func (p *Patroller) Target(pos mgl64.Vec3) (mgl64.Vec3, bool) {
	if p.Path.Len() == 0 {
		return mgl64.Vec3{}, false
	}
	if p.current < 0 || p.current >= p.Path.Len() {
		p.current = p.Path.Nearest(pos)
	}
	if vmath.FlatDistance(pos, p.Path.Waypoints[p.current].Position) < p.ArriveDistance {
		p.current = p.Path.Next(p.current)
	}
	return p.Path.Waypoints[p.current].Position, true
}
