package agent

import (
	"io"

	"github.com/charmbracelet/log"
)

// CameraState selects what the camera frames
type CameraState uint8

const (
	CameraAvatar CameraState = iota
	CameraVentingIn
	CameraVentingOut
)

func (s CameraState) String() string {
	switch s {
	case CameraVentingIn:
		return "venting-in"
	case CameraVentingOut:
		return "venting-out"
	default:
		return "avatar"
	}
}

// CameraDirector switches camera states
type CameraDirector interface {
	TransitionToState(state CameraState)
}

// CameraManager records camera transitions and notifies listeners
type CameraManager struct {
	state     CameraState
	history   []CameraState
	listeners []func(from, to CameraState)
	logger    *log.Logger
}

// NewCameraManager starts on the avatar
func NewCameraManager() *CameraManager {
	return &CameraManager{state: CameraAvatar, logger: log.New(io.Discard)}
}

// SetLogger routes transition logs to l
func (c *CameraManager) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// OnTransition registers a listener
func (c *CameraManager) OnTransition(fn func(from, to CameraState)) {
	c.listeners = append(c.listeners, fn)
}

// TransitionToState switches state; repeated states are ignored
func (c *CameraManager) TransitionToState(state CameraState) {
	if state == c.state {
		return
	}
	from := c.state
	c.state = state
	c.history = append(c.history, state)
	c.logger.Debug("camera transition", "from", from, "to", state)
	for _, fn := range c.listeners {
		fn(from, state)
	}
}

// State returns the current state
func (c *CameraManager) State() CameraState { return c.state }

// History returns every state transitioned to, in order
func (c *CameraManager) History() []CameraState { return c.history }
