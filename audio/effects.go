package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/wallwalker/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}
		val := waveAt(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveAt evaluates a unit-amplitude wave at phase in [0,1)
func waveAt(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies a linear attack and release to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration; attack and release overlap-clamp to the total
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rest := e.totalSamples - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// breath is an endless hum swelling and fading once per period
type breath struct {
	rate     beep.SampleRate
	period   int
	position int
}

// NewBreathStreamer creates the looping breathing hum
func NewBreathStreamer(period time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(period)
	if n < 1 {
		n = 1
	}
	return &breath{rate: rate, period: n}
}

func (b *breath) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(b.position) / float64(b.rate)
		swell := 0.5 - 0.5*math.Cos(2*math.Pi*float64(b.position%b.period)/float64(b.period))

		val := math.Sin(2*math.Pi*parameter.BreathHumFreq*t) +
			parameter.BreathOvertoneMix*math.Sin(2*math.Pi*parameter.BreathOvertoneFreq*t)
		val *= swell / (1 + parameter.BreathOvertoneMix)

		samples[i][0] = val
		samples[i][1] = val
		b.position++
	}
	return len(samples), true
}

func (b *breath) Err() error { return nil }

// CreateStepSound generates a footstep click; intensity in [0,1] raises pitch and level
func CreateStepSound(cfg *AudioConfig, intensity float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	intensity = clampVolume(intensity)

	freq := parameter.StepBaseFreq + parameter.StepFreqSpread*intensity
	tone := NewOscillator(freq, parameter.StepSoundDuration, WaveSine, rate)
	grit := NewOscillator(0, parameter.StepSoundDuration, WaveNoise, rate)
	mixed := beep.Mix(newVolume(tone, 0.7), newVolume(grit, 0.3))
	shaped := NewEnvelope(mixed, parameter.StepSoundDuration, parameter.StepSoundAttack, parameter.StepSoundRelease, rate)

	vol := cfg.EffectVolumes[SoundStep] * cfg.MasterVolume * (0.3 + 0.7*intensity)
	return newVolume(shaped, vol)
}

// CreateVentSound generates the rush of air when entering an intake
func CreateVentSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.VentSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, parameter.VentSoundDuration, parameter.VentSoundAttack, parameter.VentSoundRelease, rate)

	vol := cfg.EffectVolumes[SoundVent] * cfg.MasterVolume
	return newVolume(shaped, vol)
}

// CreateLaserSound generates a short saw zap
func CreateLaserSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	zap := NewOscillator(parameter.LaserSoundFreq, parameter.LaserSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(zap, parameter.LaserSoundDuration, parameter.LaserSoundAttack, parameter.LaserSoundRelease, rate)

	vol := cfg.EffectVolumes[SoundLaser] * cfg.MasterVolume
	return newVolume(shaped, vol)
}

// GetSoundEffect returns the streamer for a one-shot cue, nil if unknown
func GetSoundEffect(st SoundType, cfg *AudioConfig) beep.Streamer {
	switch st {
	case SoundStep:
		return CreateStepSound(cfg, 1)
	case SoundVent:
		return CreateVentSound(cfg)
	case SoundLaser:
		return CreateLaserSound(cfg)
	default:
		return nil
	}
}
