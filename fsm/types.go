// Package fsm is a hierarchical state machine advanced by explicit ticks
package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// EventTick marks transitions evaluated on every Update
const EventTick = "Tick"

// Machine is the hierarchical state machine runtime
// T is the context passed to actions and guards (e.g. *agent.Drone)
type Machine[T any] struct {
	// Graph, immutable after load
	nodes map[StateID]*Node[T]
	names map[string]StateID

	InitialStateID StateID

	// Runtime
	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID

	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]
	events          map[string]struct{}
}

// Node is a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Evaluated in declaration order
	Transitions []Transition[T]
}

// Transition links two states
type Transition[T any] struct {
	TargetID StateID
	Event    string       // EventTick for auto-transitions
	Guard    GuardFunc[T] // nil always passes
}

// Action is a side effect with pre-compiled arguments
type Action[T any] struct {
	Func ActionFunc[T]
	Args map[string]any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args map[string]any)

// GuardFactoryFunc creates a parameterized guard from config args
type GuardFactoryFunc[T any] func(m *Machine[T], args map[string]any) (GuardFunc[T], error)
