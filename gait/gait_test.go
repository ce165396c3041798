package gait

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wallwalker/physics"
	"github.com/lixenwraith/wallwalker/vmath"
)

type fixedSize float64

func (s fixedSize) ColliderRadius() float64 { return float64(s) }

func newTestRig() (*Rig, *physics.RigidBody) {
	floor := physics.NewQuad(mgl64.Vec3{}, vmath.WorldUp, vmath.WorldRight, 20, 20, physics.LayerWalkable)
	body := physics.NewRigidBody(mgl64.Vec3{0, 0.5, 0}, mgl64.QuatIdent(), 1)
	rig := NewRig(body, physics.NewScene(floor), physics.LayerWalkable, Stance(4, 0.5), DefaultConfig())
	return rig, body
}

func TestStanceLayout(t *testing.T) {
	hips := Stance(8, 1)
	if len(hips) != 8 {
		t.Fatalf("Expected 8 hips, got %d", len(hips))
	}
	if hips[0].X() >= 0 || hips[1].X() <= 0 {
		t.Errorf("Expected left/right pairs, got %v and %v", hips[0], hips[1])
	}
	if hips[0].Z() <= hips[7].Z() {
		t.Errorf("Expected front to back ordering, got %v then %v", hips[0], hips[7])
	}
	if got := len(Stance(5, 1)); got != 5 {
		t.Errorf("Expected odd count to be honoured, got %d", got)
	}
}

func TestStanceGroupsAlternate(t *testing.T) {
	want := []int{0, 1, 1, 0, 0, 1, 1, 0}
	for i, g := range want {
		if got := stanceGroup(i); got != g {
			t.Errorf("Expected leg %d in group %d, got %d", i, g, got)
		}
	}
}

func TestUpdateWithoutSizingIsNoop(t *testing.T) {
	rig, _ := newTestRig()
	rig.Update(time.Second)

	for i, f := range rig.Feet() {
		if f.EndEffector() != (mgl64.Vec3{}) {
			t.Errorf("Expected foot %d untouched, got %v", i, f.EndEffector())
		}
	}
}

func TestTargetBeforeAttach(t *testing.T) {
	rig, _ := newTestRig()
	if _, ok := rig.Target(0); ok {
		t.Error("Expected no target before Attach")
	}

	rig.Attach(fixedSize(0.5))
	target, ok := rig.Target(0)
	if !ok {
		t.Fatal("Expected target after Attach")
	}
	if math.Abs(target.Y()) > 1e-9 {
		t.Errorf("Expected target on the floor, got %v", target)
	}
}

func TestFirstUpdatePlantsFeet(t *testing.T) {
	rig, _ := newTestRig()
	rig.Attach(fixedSize(0.5))
	rig.Update(0)

	for i, f := range rig.Feet() {
		got := f.EndEffector()
		want := mgl64.Vec3{f.Hip.X(), 0, f.Hip.Z()}
		if !vmath.ApproxEqual(got, want, 1e-9) {
			t.Errorf("Expected foot %d planted at %v, got %v", i, want, got)
		}
	}
	if len(rig.Legs()) != 4 {
		t.Errorf("Expected 4 leg handles, got %d", len(rig.Legs()))
	}
}

func TestDanglingFootWithoutGround(t *testing.T) {
	rig, body := newTestRig()
	rig.Attach(fixedSize(0.5))
	body.Pos = mgl64.Vec3{0, 10, 0}
	rig.Plant()

	got := rig.Feet()[0].EndEffector()
	if math.Abs(got.Y()-9.5) > 1e-9 {
		t.Errorf("Expected foot to dangle one radius below the hip, got %v", got)
	}
}

func TestFeetStepInAlternatingGroups(t *testing.T) {
	rig, body := newTestRig()
	rig.Attach(fixedSize(0.5))
	rig.Update(0)

	var landed []int
	rig.OnStep(func(i int) { landed = append(landed, i) })

	body.Pos = body.Pos.Add(mgl64.Vec3{0, 0, 0.4})
	rig.Update(0)

	feet := rig.Feet()
	for i, f := range feet {
		want := f.Group == 0
		if f.Stepping() != want {
			t.Errorf("Expected foot %d (group %d) stepping=%v", i, f.Group, want)
		}
	}

	// Mid-step apex
	rig.Update(60 * time.Millisecond)
	if y := feet[0].EndEffector().Y(); math.Abs(y-0.15) > 1e-9 {
		t.Errorf("Expected arc apex 0.15, got %f", y)
	}

	rig.Update(60 * time.Millisecond)
	if len(landed) != 2 {
		t.Fatalf("Expected group 0 to land, got %v", landed)
	}
	if got := feet[0].EndEffector(); math.Abs(got.Z()-(feet[0].Hip.Z()+0.4)) > 1e-9 {
		t.Errorf("Expected foot to land under the moved hip, got %v", got)
	}
	if !feet[1].Stepping() || !feet[2].Stepping() {
		t.Error("Expected group 1 to lift once group 0 landed")
	}
}
