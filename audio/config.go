package audio

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wallwalker/parameter"
)

// AudioConfig holds volumes and the output rate
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	BreathVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns the parameter defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		BreathVolume: parameter.BreathVolume,
		EffectVolumes: map[SoundType]float64{
			SoundStep:  parameter.StepVolume,
			SoundVent:  parameter.VentVolume,
			SoundLaser: parameter.LaserVolume,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// LoadAudioConfig overlays environment variables on the defaults
// WALLWALKER_SFX_VOLUMES takes a flow map such as {step: 0.4, laser: 1}
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("WALLWALKER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("WALLWALKER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if effectVols := os.Getenv("WALLWALKER_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := yaml.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if name == "breath" {
					cfg.BreathVolume = clampVolume(v)
					continue
				}
				if st, ok := soundTypeByName(name); ok {
					cfg.EffectVolumes[st] = clampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("WALLWALKER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
