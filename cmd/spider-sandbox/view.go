package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/wallwalker/agent"
	"github.com/lixenwraith/wallwalker/vmath"
)

const (
	hudRows     = 4
	minZoom     = 0.5
	maxZoom     = 6.0
	depthRange  = 12.0 // world units from near to far shade
	entityDepth = -1e6 // entities always draw over geometry
)

var (
	surfaceNear = colorful.Color{R: 0.35, G: 0.85, B: 0.80}
	surfaceFar  = colorful.Color{R: 0.05, G: 0.12, B: 0.20}
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// axes picks the screen right, screen up and toward-viewer directions of a view
type axes struct {
	name           string
	right, up, out mgl64.Vec3
}

var (
	sideView = axes{name: "side", right: vmath.WorldForward, up: vmath.WorldUp, out: vmath.WorldRight.Mul(-1)}
	topView  = axes{name: "top", right: vmath.WorldRight, up: vmath.WorldForward, out: vmath.WorldUp}
)

// pane is an orthographic viewport with a depth buffer
type pane struct {
	screen tcell.Screen
	x0, y0 int
	w, h   int
	view   axes
	focus  mgl64.Vec3
	zoom   float64
	depth  []float64
}

func newPane(screen tcell.Screen, x0, y0, w, h int, view axes, focus mgl64.Vec3, zoom float64) *pane {
	p := &pane{screen: screen, x0: x0, y0: y0, w: w, h: h, view: view, focus: focus, zoom: zoom}
	p.depth = make([]float64, max(w*h, 0))
	for i := range p.depth {
		p.depth[i] = math.Inf(1)
	}
	return p
}

// project maps a world point to a cell and its distance from the viewer
// Terminal cells are about twice as tall as wide, so columns use double zoom
func (p *pane) project(world mgl64.Vec3) (col, row int, depth float64) {
	rel := world.Sub(p.focus)
	col = p.w/2 + int(math.Round(rel.Dot(p.view.right)*p.zoom*2))
	row = p.h/2 - int(math.Round(rel.Dot(p.view.up)*p.zoom))
	return col, row, -rel.Dot(p.view.out)
}

func (p *pane) plot(world mgl64.Vec3, r rune, style tcell.Style, bias float64) {
	col, row, depth := p.project(world)
	if col < 0 || row < 0 || col >= p.w || row >= p.h {
		return
	}
	depth += bias
	if i := row*p.w + col; depth < p.depth[i] {
		p.depth[i] = depth
		p.screen.SetContent(p.x0+col, p.y0+row, r, nil, style)
	}
}

// shade blends near and far surface colours by depth
func shade(depth float64) tcell.Style {
	t := vmath.Clamp01((depth + depthRange/2) / depthRange)
	c := surfaceNear.BlendLab(surfaceFar, t).Clamped()
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func (p *pane) drawScene(s *sandbox) {
	step := 0.5 / p.zoom
	for _, q := range s.quads {
		u, v := q.AxisU, q.AxisV()
		for a := -q.HalfU; a <= q.HalfU; a += step {
			for b := -q.HalfV; b <= q.HalfV; b += step {
				pt := q.Center.Add(u.Mul(a)).Add(v.Mul(b))
				_, _, depth := p.project(pt)
				glyph := '·'
				if math.Abs(q.Normal.Dot(p.view.out)) < 0.2 {
					glyph = '▒' // seen edge-on
				}
				p.plot(pt, glyph, shade(depth), 0)
			}
		}
	}
}

func (p *pane) drawAgents(s *sandbox) {
	a, b := s.laser.Segment()
	beam := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if s.laser.IsDeadly() {
		beam = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	}
	for t := 0.0; t <= 1; t += 0.05 {
		p.plot(vmath.Lerp(a, b, t), '=', beam, entityDepth)
	}

	p.plot(s.intake.Pose.Pos, 'V', tcell.StyleDefault.Foreground(tcell.ColorAqua), entityDepth)
	p.plot(s.outlet.Pose.Pos, 'O', tcell.StyleDefault.Foreground(tcell.ColorAqua), entityDepth)
	p.plot(s.cleaner.Pose.Pos, 'c', tcell.StyleDefault.Foreground(tcell.ColorGreen), entityDepth)

	droneStyle := tcell.StyleDefault.Foreground(tcell.ColorOrange)
	if s.drone.State() == "Pursue" {
		droneStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Blink(true)
	}
	p.plot(s.drone.Pose.Pos, 'D', droneStyle, entityDepth)
}

func (p *pane) drawSpider(s *sandbox) {
	legStyle := tcell.StyleDefault.Foreground(tcell.ColorWheat)
	for _, f := range s.rig.Feet() {
		glyph := '.'
		if f.Stepping() {
			glyph = '\''
		}
		p.plot(f.EndEffector(), glyph, legStyle, entityDepth)
	}

	info := s.ctrl.GroundInfo()
	if info.IsGrounded {
		for t := 0.2; t <= 1; t += 0.2 {
			p.plot(s.body.Pos.Add(info.Normal.Mul(t)), '+', tcell.StyleDefault.Foreground(tcell.ColorDarkCyan), entityDepth)
		}
	}
	p.plot(s.root.Pos, 'o', tcell.StyleDefault.Foreground(tcell.ColorYellow), entityDepth-1)
	p.plot(s.body.Pos.Add(s.body.Forward().Mul(s.ctrl.ColliderRadius())), '>', legStyle, entityDepth-1)
	p.plot(s.body.Pos, '@', titleStyle, entityDepth-2)
}

// putString writes text at (x, y), clipped to width cells
func putString(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, width, "…")
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func hudLines(s *sandbox) []string {
	info := s.ctrl.GroundInfo()
	n := info.Normal
	run := "walk"
	if s.input.held(actRun, s.now()) {
		run = "run"
	}
	vent := "idle"
	if s.vent != nil {
		vent = s.vent.State()
	}
	laser := "safe"
	if s.laser.IsDeadly() {
		laser = "ARMED"
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	return []string{
		fmt.Sprintf("ground %-7s dist %6.3f  normal (%5.2f %5.2f %5.2f)  probe %s",
			info.Source, info.Distance, n.X(), n.Y(), n.Z(), onOff(s.ctrl.GroundCheckEnabled())),
		fmt.Sprintf("speed %5.2f u/s  %s  moving %s  breathe %s  tour %s  dropped %v",
			s.ctrl.VelocityPerSecond().Len(), run, onOff(s.ctrl.IsMoving()), onOff(s.ctrl.Config().Breathing),
			onOff(s.patrolling), s.loop.Dropped()),
		fmt.Sprintf("drone %-7s laser %-5s camera %-10s vent %-8s top %4.1f  %s",
			s.drone.State(), laser, s.camera.State(), vent,
			s.stats.Gauges.Get(metricTopSpd).Get(), s.stats.Summary()),
		"w/s walk  a/d turn  W A S D run  g ground  b breathe  v vent  p tour  +/- zoom  q quit",
	}
}

// draw renders both views and the HUD
func draw(screen tcell.Screen, s *sandbox, zoom float64) {
	screen.Clear()
	w, h := screen.Size()
	viewH := h - hudRows - 1
	if viewH < 3 || w < 20 {
		putString(screen, 0, 0, w, "terminal too small", hudStyle)
		screen.Show()
		return
	}

	half := w / 2
	focus := s.focus()
	for i, view := range []axes{sideView, topView} {
		x0 := i * half
		p := newPane(screen, x0, 1, half-1, viewH, view, focus, zoom)
		p.drawScene(s)
		p.drawAgents(s)
		p.drawSpider(s)

		title := view.name
		if s.camera.State() != agent.CameraAvatar {
			title += " · " + s.camera.State().String()
		}
		putString(screen, x0+1, 0, half-2, title, titleStyle)
	}
	for y := 1; y <= viewH; y++ {
		screen.SetContent(half-1, y, '│', nil, hudStyle)
	}

	for i, line := range hudLines(s) {
		putString(screen, 0, viewH+1+i, w, line, hudStyle)
	}
	screen.Show()
}
