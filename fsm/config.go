package fsm

// RootConfig is the top-level machine definition
type RootConfig struct {
	InitialState string                  `yaml:"initial"`
	States       map[string]*StateConfig `yaml:"states"`
}

// StateConfig is a single state definition
type StateConfig struct {
	Parent      string             `yaml:"parent,omitempty"`
	OnEnter     []ActionConfig     `yaml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `yaml:"on_update,omitempty"`
	OnExit      []ActionConfig     `yaml:"on_exit,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
}

// TransitionConfig is a transition definition
type TransitionConfig struct {
	Trigger   string         `yaml:"trigger"` // Event name or "Tick"
	Target    string         `yaml:"target"`
	Guard     string         `yaml:"guard,omitempty"`
	GuardArgs map[string]any `yaml:"guard_args,omitempty"`
}

// ActionConfig is an action invocation
type ActionConfig struct {
	Action string         `yaml:"action"`
	Args   map[string]any `yaml:"args,omitempty"`
}
