package fsm

import (
	"time"

	"github.com/pkg/errors"
)

// stateTimeExceeds passes once the active leaf has been held for the configured
// duration, given as "ms" (number) or "duration" (Go duration string)
func stateTimeExceeds[T any](m *Machine[T], args map[string]any) (GuardFunc[T], error) {
	d, err := DurationArg(args)
	if err != nil {
		return nil, errors.Wrap(err, "StateTimeExceeds")
	}
	return func(T) bool {
		return m.timeInState >= d
	}, nil
}

// DurationArg reads a duration from "ms" or "duration" keys
func DurationArg(args map[string]any) (time.Duration, error) {
	if s, ok := args["duration"].(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, errors.Wrapf(err, "parse duration %q", s)
		}
		return d, nil
	}
	if ms, ok := floatArg(args, "ms"); ok {
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
	return 0, errors.New("requires numeric 'ms' or string 'duration'")
}

// floatArg reads a numeric argument decoded as any YAML number type
func floatArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
