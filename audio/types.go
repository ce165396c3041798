package audio

// SoundType represents the one-shot cues
type SoundType int

const (
	SoundStep  SoundType = iota // Foot planted
	SoundVent                   // Sucked into an intake
	SoundLaser                  // Touched a deadly beam
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"step", "vent", "laser"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// soundTypeByName maps config keys to sound types
func soundTypeByName(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}
