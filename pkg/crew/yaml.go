package crew

import (
	"fmt"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Agents are keyed by name in YAML, and keep their document order
type Agents []*Agent

// Tasks are keyed by name in YAML, and run in document order
type Tasks []*Task

////////////////////////////////////////////////////////////////////////////////
// YAML UNMARSHALLING

func (a *Agents) UnmarshalYAML(node *yaml.Node) error {
	return decodeMapping(node, func(name string, value *yaml.Node) error {
		agent := &Agent{Name: name}
		if err := value.Decode(agent); err != nil {
			return err
		}
		*a = append(*a, agent)
		return nil
	})
}

func (t *Tasks) UnmarshalYAML(node *yaml.Node) error {
	return decodeMapping(node, func(name string, value *yaml.Node) error {
		task := &Task{Name: name}
		if err := value.Decode(task); err != nil {
			return err
		}
		*t = append(*t, task)
		return nil
	})
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// decodeMapping calls fn for each key and value of a mapping node, in order.
// Keys must be unique.
func decodeMapping(node *yaml.Node, fn func(string, *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate name %q", key.Line, key.Value)
		}
		seen[key.Value] = true
		if err := fn(key.Value, value); err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}
	}
	return nil
}
