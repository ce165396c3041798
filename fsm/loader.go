package fsm

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig parses a YAML definition and rebuilds the graph
// Validates every state, guard, action and event reference
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, "unmarshal fsm config")
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}

	m.nodes = make(map[StateID]*Node[T])
	m.names = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	m.AddState(StateRoot, "Root", StateNone)
	if _, ok := config.States["Root"]; !ok {
		config.States["Root"] = &StateConfig{}
	}

	// Sorted names give deterministic IDs
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nameToID := map[string]StateID{"Root": StateRoot}
	for i, name := range stateNames {
		nameToID[name] = StateID(i + 2)
	}

	for _, name := range append([]string{"Root"}, stateNames...) {
		cfg := config.States[name]
		if cfg == nil {
			cfg = &StateConfig{}
		}
		id := nameToID[name]

		node := m.nodes[StateRoot]
		if id != StateRoot {
			pName := cfg.Parent
			if pName == "" {
				pName = "Root"
			}
			parentID, ok := nameToID[pName]
			if !ok {
				return errors.Errorf("state %q references unknown parent %q", name, pName)
			}
			node = m.AddState(id, name, parentID)
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return errors.Wrapf(err, "state %q on_enter", name)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return errors.Wrapf(err, "state %q on_update", name)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return errors.Wrapf(err, "state %q on_exit", name)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return errors.Wrapf(err, "state %q transitions", name)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return errors.Errorf("initial state %q not found", config.InitialState)
	}
	m.InitialStateID = initialID
	return nil
}

// LoadFile reads and parses a YAML definition
func (m *Machine[T]) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read fsm config %s", path)
	}
	return errors.Wrap(m.LoadConfig(data), path)
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, errors.Errorf("unknown action %q", cfg.Action)
		}
		actions = append(actions, Action[T]{Func: fn, Args: cfg.Args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return errors.Errorf("transition references unknown target %q", cfg.Target)
		}

		event := cfg.Trigger
		if event == "" {
			event = EventTick
		}
		if event != EventTick {
			if _, ok := m.events[event]; !ok {
				return errors.Errorf("unknown event %q", event)
			}
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			if factory, ok := m.guardFactoryReg[cfg.Guard]; ok {
				g, err := factory(m, cfg.GuardArgs)
				if err != nil {
					return err
				}
				guard = g
			} else if g, ok := m.guardReg[cfg.Guard]; ok {
				guard = g
			} else {
				return errors.Errorf("unknown guard %q", cfg.Guard)
			}
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    event,
			Guard:    guard,
		})
	}
	return nil
}
