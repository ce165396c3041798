package locomotion

import (
	"testing"
	"time"
)

func TestLoopRunsWholeStepsAndCarriesRemainder(t *testing.T) {
	loop := NewLoop(20*time.Millisecond, 5)

	var physicsSteps []time.Duration
	var frames []time.Duration
	loop.OnPhysics(func(dt time.Duration) { physicsSteps = append(physicsSteps, dt) })
	loop.OnRender(func(dt time.Duration) { frames = append(frames, dt) })

	if n := loop.Advance(50 * time.Millisecond); n != 2 {
		t.Errorf("Expected 2 physics steps, got %d", n)
	}
	if alpha := loop.Alpha(); alpha != 0.5 {
		t.Errorf("Expected alpha 0.5, got %f", alpha)
	}

	// Carried 10ms completes a step
	if n := loop.Advance(10 * time.Millisecond); n != 1 {
		t.Errorf("Expected carried remainder to complete a step, got %d", n)
	}

	if len(physicsSteps) != 3 {
		t.Fatalf("Expected 3 physics calls, got %d", len(physicsSteps))
	}
	for _, dt := range physicsSteps {
		if dt != 20*time.Millisecond {
			t.Errorf("Expected fixed dt 20ms, got %v", dt)
		}
	}
	if len(frames) != 2 || frames[0] != 50*time.Millisecond || frames[1] != 10*time.Millisecond {
		t.Errorf("Expected render frames [50ms 10ms], got %v", frames)
	}
}

func TestLoopCapsSubstepsAndDropsBacklog(t *testing.T) {
	loop := NewLoop(20*time.Millisecond, 5)
	calls := 0
	loop.OnPhysics(func(time.Duration) { calls++ })

	if n := loop.Advance(time.Second); n != 5 {
		t.Errorf("Expected substep cap of 5, got %d", n)
	}
	if loop.Dropped() != 900*time.Millisecond {
		t.Errorf("Expected 900ms dropped, got %v", loop.Dropped())
	}
	if loop.Alpha() != 0 {
		t.Errorf("Expected empty accumulator, got alpha %f", loop.Alpha())
	}
	if calls != 5 {
		t.Errorf("Expected 5 physics calls, got %d", calls)
	}
}

func TestLoopDefaults(t *testing.T) {
	loop := NewLoop(0, 0)
	if loop.Step() != 20*time.Millisecond {
		t.Errorf("Expected default step 20ms, got %v", loop.Step())
	}
	if n := loop.Advance(-time.Second); n != 0 {
		t.Errorf("Expected negative frame to be ignored, got %d steps", n)
	}
}

func TestLoopBindOrdersPhysicsBeforeRender(t *testing.T) {
	r := newRig(t, DefaultConfig(), flatScene())
	loop := NewLoop(20*time.Millisecond, 5)
	loop.Bind(r.ctrl)

	var order []string
	r.ctrl.OnMove(func(time.Duration) { order = append(order, "move") })
	loop.OnRender(func(time.Duration) { order = append(order, "render") })

	loop.Advance(40 * time.Millisecond)

	want := []string{"move", "move", "render"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
	if !r.ctrl.GroundInfo().IsGrounded {
		t.Error("Expected bound controller to sense ground")
	}
}
