package audio

import (
	"os"
	"testing"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}

	for st := SoundType(0); st < soundTypeCount; st++ {
		if _, ok := cfg.EffectVolumes[st]; !ok {
			t.Errorf("Expected volume for sound type %s to be set", st)
		}
	}
}

// TestLoadAudioConfigDefaults verifies loading with no env vars
func TestLoadAudioConfigDefaults(t *testing.T) {
	os.Unsetenv("WALLWALKER_AUDIO_ENABLED")
	os.Unsetenv("WALLWALKER_MASTER_VOLUME")
	os.Unsetenv("WALLWALKER_SFX_VOLUMES")
	os.Unsetenv("WALLWALKER_SAMPLE_RATE")

	cfg := LoadAudioConfig()
	defaultCfg := DefaultAudioConfig()

	if cfg.Enabled != defaultCfg.Enabled {
		t.Errorf("Expected Enabled=%v, got %v", defaultCfg.Enabled, cfg.Enabled)
	}
	if cfg.MasterVolume != defaultCfg.MasterVolume {
		t.Errorf("Expected MasterVolume=%f, got %f", defaultCfg.MasterVolume, cfg.MasterVolume)
	}
	if cfg.SampleRate != defaultCfg.SampleRate {
		t.Errorf("Expected SampleRate=%d, got %d", defaultCfg.SampleRate, cfg.SampleRate)
	}
}

// TestLoadAudioConfigEnabled verifies loading enabled flag
func TestLoadAudioConfigEnabled(t *testing.T) {
	testCases := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"maybe", true},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("WALLWALKER_AUDIO_ENABLED", tc.value)
			if cfg := LoadAudioConfig(); cfg.Enabled != tc.expected {
				t.Errorf("Expected Enabled=%v for value %s, got %v", tc.expected, tc.value, cfg.Enabled)
			}
		})
	}
}

// TestLoadAudioConfigMasterVolume verifies percent conversion and clamping
func TestLoadAudioConfigMasterVolume(t *testing.T) {
	testCases := []struct {
		value    string
		expected float64
	}{
		{"0", 0.0},
		{"50", 0.5},
		{"100", 1.0},
		{"-50", 0.0},
		{"150", 1.0},
		{"loud", 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("WALLWALKER_MASTER_VOLUME", tc.value)
			if cfg := LoadAudioConfig(); cfg.MasterVolume != tc.expected {
				t.Errorf("Expected MasterVolume=%f for value %s, got %f", tc.expected, tc.value, cfg.MasterVolume)
			}
		})
	}
}

// TestLoadAudioConfigSampleRate verifies valid rates load and invalid ones keep the default
func TestLoadAudioConfigSampleRate(t *testing.T) {
	defaultRate := DefaultAudioConfig().SampleRate

	testCases := []struct {
		value    string
		expected int
	}{
		{"22050", 22050},
		{"48000", 48000},
		{"invalid", defaultRate},
		{"-1000", defaultRate},
		{"0", defaultRate},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("WALLWALKER_SAMPLE_RATE", tc.value)
			if cfg := LoadAudioConfig(); cfg.SampleRate != tc.expected {
				t.Errorf("Expected SampleRate=%d for value %s, got %d", tc.expected, tc.value, cfg.SampleRate)
			}
		})
	}
}

// TestLoadAudioConfigEffectVolumes verifies flow-map and JSON volume overrides
func TestLoadAudioConfigEffectVolumes(t *testing.T) {
	for _, value := range []string{
		`{step: 0.9, laser: 0.6, breath: 0.2, unknown: 1}`,
		`{"step": 0.9, "laser": 0.6, "breath": 0.2}`,
	} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("WALLWALKER_SFX_VOLUMES", value)
			cfg := LoadAudioConfig()

			if cfg.EffectVolumes[SoundStep] != 0.9 {
				t.Errorf("Expected step volume 0.9, got %f", cfg.EffectVolumes[SoundStep])
			}
			if cfg.EffectVolumes[SoundLaser] != 0.6 {
				t.Errorf("Expected laser volume 0.6, got %f", cfg.EffectVolumes[SoundLaser])
			}
			if cfg.EffectVolumes[SoundVent] != DefaultAudioConfig().EffectVolumes[SoundVent] {
				t.Errorf("Expected untouched vent volume, got %f", cfg.EffectVolumes[SoundVent])
			}
			if cfg.BreathVolume != 0.2 {
				t.Errorf("Expected breath volume 0.2, got %f", cfg.BreathVolume)
			}
		})
	}
}

// TestLoadAudioConfigEffectVolumesInvalid verifies malformed input keeps the defaults
func TestLoadAudioConfigEffectVolumesInvalid(t *testing.T) {
	t.Setenv("WALLWALKER_SFX_VOLUMES", "invalid json")

	cfg := LoadAudioConfig()
	for soundType, expectedVol := range DefaultAudioConfig().EffectVolumes {
		if vol := cfg.EffectVolumes[soundType]; vol != expectedVol {
			t.Errorf("Expected default volume %f for sound type %s, got %f", expectedVol, soundType, vol)
		}
	}
}
