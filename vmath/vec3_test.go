package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestProjectOnPlane(t *testing.T) {
	v := mgl64.Vec3{3, 4, 5}
	got := ProjectOnPlane(v, WorldUp)
	assert.InDelta(t, 3, got.X(), 1e-9)
	assert.InDelta(t, 0, got.Y(), 1e-9)
	assert.InDelta(t, 5, got.Z(), 1e-9)

	// Zero normal leaves v untouched
	assert.Equal(t, v, ProjectOnPlane(v, mgl64.Vec3{}))
}

func TestSafeNormalizeZero(t *testing.T) {
	got := SafeNormalize(mgl64.Vec3{})
	if got != (mgl64.Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestSlerpMagnitudeIsLinear(t *testing.T) {
	a := mgl64.Vec3{2, 0, 0}
	b := mgl64.Vec3{0, 0, 4}

	mid := Slerp(a, b, 0.5)
	assert.InDelta(t, 3, mid.Len(), 1e-9)
	assert.InDelta(t, 45, Angle(mid, a), 1e-6)
}

func TestSlerpFromZeroFallsBackToLerp(t *testing.T) {
	b := mgl64.Vec3{0, 0, 10}
	got := Slerp(mgl64.Vec3{}, b, 0.1)
	assert.InDelta(t, 1, got.Z(), 1e-9)
	assert.InDelta(t, 0, got.X(), 1e-9)
}

func TestSlerpAntiparallel(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	b := mgl64.Vec3{-1, 0, 0}
	got := Slerp(a, b, 0.5)
	assert.InDelta(t, 1, got.Len(), 1e-9)
	assert.InDelta(t, 90, Angle(got, a), 1e-6)
}

func TestSignedAngle(t *testing.T) {
	tests := []struct {
		name     string
		from, to mgl64.Vec3
		axis     mgl64.Vec3
		want     float64
	}{
		{"positive about up", WorldForward, WorldRight, WorldUp, 90},
		{"negative about up", WorldRight, WorldForward, WorldUp, -90},
		{"parallel", WorldUp, WorldUp, WorldRight, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SignedAngle(tt.from, tt.to, tt.axis), 1e-9)
		})
	}
}

func TestClampMagnitude(t *testing.T) {
	got := ClampMagnitude(mgl64.Vec3{10, 0, 0}, 2)
	assert.InDelta(t, 2, got.Len(), 1e-12)

	small := mgl64.Vec3{0.5, 0, 0}
	assert.Equal(t, small, ClampMagnitude(small, 2))
}

func TestFlatDistanceIgnoresHeight(t *testing.T) {
	d := FlatDistance(mgl64.Vec3{0, 100, 0}, mgl64.Vec3{3, -50, 4})
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("Expected 5, got %f", d)
	}
}

func TestApproxEqualIsAbsoluteNearZero(t *testing.T) {
	assert.True(t, ApproxEqual(mgl64.Vec3{-0.8, 4.16e-17, 0.6}, mgl64.Vec3{-0.8, 0, 0.6}, 1e-9))
	assert.True(t, ApproxEqual(mgl64.Vec3{100, 0, -2.22e-14}, mgl64.Vec3{100, 0, 0}, 1e-9))
	assert.False(t, ApproxEqual(mgl64.Vec3{0, 1e-6, 0}, mgl64.Vec3{}, 1e-9))
	assert.False(t, ApproxEqual(mgl64.Vec3{0, 0, math.NaN()}, mgl64.Vec3{}, 1e-9))
}
