package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length, trading latency for underruns
	AudioBufferDuration = 100 * time.Millisecond
)

// Default Volumes (0.0-1.0)
const (
	AudioMasterVolume = 0.5
	StepVolume        = 0.6
	BreathVolume      = 0.3
	VentVolume        = 0.8
	LaserVolume       = 0.7
)

// Footstep Click
const (
	StepSoundDuration = 40 * time.Millisecond
	StepSoundAttack   = 2 * time.Millisecond
	StepSoundRelease  = 30 * time.Millisecond
	StepBaseFreq      = 180.0 // Hz at zero intensity
	StepFreqSpread    = 120.0 // Hz added at full intensity
)

// Breathing Hum (continuous)
const (
	BreathHumFreq      = 70.0 // Hz
	BreathOvertoneFreq = 140.0
	BreathOvertoneMix  = 0.25
)

// Vent Rush
const (
	VentSoundDuration = 1 * time.Second
	VentSoundAttack   = 200 * time.Millisecond
	VentSoundRelease  = 400 * time.Millisecond
)

// Laser Zap
const (
	LaserSoundDuration = 150 * time.Millisecond
	LaserSoundAttack   = 5 * time.Millisecond
	LaserSoundRelease  = 60 * time.Millisecond
	LaserSoundFreq     = 1200.0
)
