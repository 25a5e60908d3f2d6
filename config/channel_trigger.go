package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/corrtrigger/trigger"
)

// ChannelTriggerConfig is the three-way union a channel's `trigger:` field
// decodes to: absent (inherit the global trigger config verbatim), a full
// trigger config (a mapping carrying a recognized `kind:`, used verbatim),
// or a partial override map (merged field-by-field over the global
// CorrelationTriggerConfig).
type ChannelTriggerConfig struct {
	absent   bool
	full     *TriggerUnion
	override *yaml.Node
}

// UnmarshalYAML decides the variant: a null node is absent; a mapping node
// whose `kind:` is one of the registered trigger kinds is a full config;
// any other mapping node is an override.
func (c *ChannelTriggerConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || value.Tag == "!!null" {
		c.absent = true
		return nil
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: channel trigger must be a mapping or null, got %v", ErrInvalidTriggerConfig, value.Tag)
	}

	var k triggerKind
	if err := value.Decode(&k); err != nil {
		return fmt.Errorf("config: decoding channel trigger kind: %w", err)
	}

	if k.Kind != "" && registeredTriggerKinds[k.Kind] {
		var u TriggerUnion
		if err := value.Decode(&u); err != nil {
			return err
		}

		c.full = &u

		return nil
	}

	node := *value
	c.override = &node

	return nil
}

// Resolve produces the trigger.Config this channel should build, merging
// with global as directed by which variant was decoded. Any other
// decoded shape (caught earlier, at UnmarshalYAML time) would have already
// failed with ErrInvalidTriggerConfig.
func (c ChannelTriggerConfig) Resolve(global CorrelationTriggerConfig) (trigger.Config, error) {
	switch {
	case c.absent || (c.full == nil && c.override == nil):
		return global.Build()
	case c.full != nil:
		return c.full.Build()
	default:
		merged, err := mergeOverride(global, c.override)
		if err != nil {
			return nil, err
		}

		return merged.Build()
	}
}

// mergeOverride re-marshals global to a YAML mapping node, overlays
// override's scalar/sequence keys on top (override wins field-by-field,
// matching attr.evolve semantics), and decodes the result back into a
// CorrelationTriggerConfig.
func mergeOverride(global CorrelationTriggerConfig, override *yaml.Node) (CorrelationTriggerConfig, error) {
	baseNode, err := encodeNode(global)
	if err != nil {
		return CorrelationTriggerConfig{}, fmt.Errorf("config: re-encoding global trigger config: %w", err)
	}

	for i := 0; i+1 < len(override.Content); i += 2 {
		key := override.Content[i]
		val := override.Content[i+1]

		setMappingKey(baseNode, key, val)
	}

	var merged CorrelationTriggerConfig
	if err := baseNode.Decode(&merged); err != nil {
		return CorrelationTriggerConfig{}, fmt.Errorf("config: decoding merged trigger config: %w", err)
	}

	return merged, nil
}

func encodeNode(v any) (*yaml.Node, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	if len(node.Content) != 1 {
		return nil, fmt.Errorf("config: expected a single document node")
	}

	return node.Content[0], nil
}

func setMappingKey(mapping, key, val *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key.Value {
			mapping.Content[i+1] = val
			return
		}
	}

	mapping.Content = append(mapping.Content, key, val)
}
