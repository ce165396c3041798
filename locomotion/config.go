package locomotion

import (
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wallwalker/parameter"
	"github.com/lixenwraith/wallwalker/physics"
)

// Config is the immutable tuning of a Controller
// Probe lengths are fractions of ColliderLength, probe sizes fractions of ColliderRadius
type Config struct {
	// Movement
	WalkSpeed float64 `yaml:"walk_speed"`
	RunSpeed  float64 `yaml:"run_speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
	WalkDrag  float64 `yaml:"walk_drag"`

	// Grounding
	GravityMultiplier        float64           `yaml:"gravity_multiplier"`
	GroundNormalAdjustSpeed  float64           `yaml:"ground_normal_adjust_speed"`
	ForwardNormalAdjustSpeed float64           `yaml:"forward_normal_adjust_speed"`
	GravityOffDistance       float64           `yaml:"gravity_off_distance"`
	WalkableMask             physics.LayerMask `yaml:"walkable_mask"`

	// Root movement
	RootOffsetHeight         float64 `yaml:"root_offset_height"`
	LegCentroidAdjustment    bool    `yaml:"leg_centroid_adjustment"`
	LegCentroidSpeed         float64 `yaml:"leg_centroid_speed"`
	LegCentroidNormalWeight  float64 `yaml:"leg_centroid_normal_weight"`
	LegCentroidTangentWeight float64 `yaml:"leg_centroid_tangent_weight"`
	LegNormalAdjustment      bool    `yaml:"leg_normal_adjustment"`
	LegNormalSpeed           float64 `yaml:"leg_normal_speed"`
	LegNormalWeight          float64 `yaml:"leg_normal_weight"`

	// Breathing
	Breathing        bool    `yaml:"breathing"`
	BreathePeriod    float64 `yaml:"breathe_period"`
	BreatheMagnitude float64 `yaml:"breathe_magnitude"`

	// Probes
	ForwardProbeLength float64 `yaml:"forward_probe_length"`
	DownProbeLength    float64 `yaml:"down_probe_length"`
	ForwardProbeSize   float64 `yaml:"forward_probe_size"`
	DownProbeSize      float64 `yaml:"down_probe_size"`
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		WalkSpeed: parameter.WalkSpeed,
		RunSpeed:  parameter.RunSpeed,
		TurnSpeed: parameter.TurnSpeed,
		WalkDrag:  parameter.WalkDrag,

		GravityMultiplier:        parameter.GravityMultiplier,
		GroundNormalAdjustSpeed:  parameter.GroundNormalAdjustSpeed,
		ForwardNormalAdjustSpeed: parameter.ForwardNormalAdjustSpeed,
		GravityOffDistance:       parameter.GravityOffDistance,
		WalkableMask:             physics.LayerWalkable,

		RootOffsetHeight:         parameter.RootOffsetHeight,
		LegCentroidAdjustment:    parameter.LegCentroidAdjustment,
		LegCentroidSpeed:         parameter.LegCentroidSpeed,
		LegCentroidNormalWeight:  parameter.LegCentroidNormalWeight,
		LegCentroidTangentWeight: parameter.LegCentroidTangentWeight,
		LegNormalAdjustment:      parameter.LegNormalAdjustment,
		LegNormalSpeed:           parameter.LegNormalSpeed,
		LegNormalWeight:          parameter.LegNormalWeight,

		Breathing:        parameter.Breathing,
		BreathePeriod:    parameter.BreathePeriod,
		BreatheMagnitude: parameter.BreatheMagnitude,

		ForwardProbeLength: parameter.ForwardProbeLength,
		DownProbeLength:    parameter.DownProbeLength,
		ForwardProbeSize:   parameter.ForwardProbeSize,
		DownProbeSize:      parameter.DownProbeSize,
	}
}

// Clamp returns a copy with every field forced into its valid range
// NaN fields fall back to their DefaultConfig value
func (c Config) Clamp() Config {
	d := DefaultConfig()
	c.WalkSpeed = clamp(c.WalkSpeed, 1, 1000, d.WalkSpeed)
	c.RunSpeed = clamp(c.RunSpeed, 1, 1000, d.RunSpeed)
	c.TurnSpeed = clamp(c.TurnSpeed, 1, 500, d.TurnSpeed)
	c.WalkDrag = clamp(c.WalkDrag, 0.001, 1, d.WalkDrag)

	c.GravityMultiplier = clamp(c.GravityMultiplier, 1, 10, d.GravityMultiplier)
	c.GroundNormalAdjustSpeed = clamp(c.GroundNormalAdjustSpeed, 1, 10, d.GroundNormalAdjustSpeed)
	c.ForwardNormalAdjustSpeed = clamp(c.ForwardNormalAdjustSpeed, 1, 10, d.ForwardNormalAdjustSpeed)
	c.GravityOffDistance = clamp(c.GravityOffDistance, 0, 1, d.GravityOffDistance)

	c.RootOffsetHeight = clamp(c.RootOffsetHeight, 0, 0.003, d.RootOffsetHeight)
	c.LegCentroidSpeed = clamp(c.LegCentroidSpeed, 0, 100, d.LegCentroidSpeed)
	c.LegCentroidNormalWeight = clamp(c.LegCentroidNormalWeight, 0, 1, d.LegCentroidNormalWeight)
	c.LegCentroidTangentWeight = clamp(c.LegCentroidTangentWeight, 0, 1, d.LegCentroidTangentWeight)
	c.LegNormalSpeed = clamp(c.LegNormalSpeed, 0, 100, d.LegNormalSpeed)
	c.LegNormalWeight = clamp(c.LegNormalWeight, 0, 1, d.LegNormalWeight)

	c.BreathePeriod = clamp(c.BreathePeriod, 0.01, 20, d.BreathePeriod)
	c.BreatheMagnitude = clamp(c.BreatheMagnitude, 0, 1, d.BreatheMagnitude)

	c.ForwardProbeLength = clamp(c.ForwardProbeLength, 0, 1, d.ForwardProbeLength)
	c.DownProbeLength = clamp(c.DownProbeLength, 0, 1, d.DownProbeLength)
	c.ForwardProbeSize = clamp(c.ForwardProbeSize, 0.1, 1, d.ForwardProbeSize)
	c.DownProbeSize = clamp(c.DownProbeSize, 0.1, 1, d.DownProbeSize)
	return c
}

func clamp(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return mgl64.Clamp(v, lo, hi)
}

// nonFinite returns the yaml key of the first NaN or infinite field
func (c Config) nonFinite() (string, bool) {
	fields := []struct {
		key string
		v   float64
	}{
		{"walk_speed", c.WalkSpeed},
		{"run_speed", c.RunSpeed},
		{"turn_speed", c.TurnSpeed},
		{"walk_drag", c.WalkDrag},
		{"gravity_multiplier", c.GravityMultiplier},
		{"ground_normal_adjust_speed", c.GroundNormalAdjustSpeed},
		{"forward_normal_adjust_speed", c.ForwardNormalAdjustSpeed},
		{"gravity_off_distance", c.GravityOffDistance},
		{"root_offset_height", c.RootOffsetHeight},
		{"leg_centroid_speed", c.LegCentroidSpeed},
		{"leg_centroid_normal_weight", c.LegCentroidNormalWeight},
		{"leg_centroid_tangent_weight", c.LegCentroidTangentWeight},
		{"leg_normal_speed", c.LegNormalSpeed},
		{"leg_normal_weight", c.LegNormalWeight},
		{"breathe_period", c.BreathePeriod},
		{"breathe_magnitude", c.BreatheMagnitude},
		{"forward_probe_length", c.ForwardProbeLength},
		{"down_probe_length", c.DownProbeLength},
		{"forward_probe_size", c.ForwardProbeSize},
		{"down_probe_size", c.DownProbeSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.key, true
		}
	}
	return "", false
}

// ParseConfig decodes YAML over DefaultConfig and clamps the result
// Omitted keys keep their defaults; NaN or infinite values are rejected
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode locomotion config")
	}
	if key, bad := cfg.nonFinite(); bad {
		return Config{}, errors.Errorf("locomotion config %s must be finite", key)
	}
	return cfg.Clamp(), nil
}

// LoadConfig reads and parses a YAML config file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read locomotion config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}
