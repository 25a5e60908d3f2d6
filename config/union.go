package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/corrtrigger/trigger"
)

// TriggerUnion is the closed tagged union over the four trigger kinds
// recognized by the `kind:` discriminator in YAML documents. Exactly one
// field is populated after a successful decode.
type TriggerUnion struct {
	Correlation  *CorrelationTriggerConfig
	LocalPost    *LocalPostTriggerConfig
	ZeroCrossing *ZeroCrossingTriggerConfig
	Null         *NullTriggerConfig
}

type triggerKind struct {
	Kind string `yaml:"kind"`
}

// UnmarshalYAML decodes the node according to its `kind:` tag.
func (u *TriggerUnion) UnmarshalYAML(value *yaml.Node) error {
	var k triggerKind
	if err := value.Decode(&k); err != nil {
		return fmt.Errorf("config: decoding trigger kind: %w", err)
	}

	switch k.Kind {
	case "correlation", "":
		var c CorrelationTriggerConfig
		if err := value.Decode(&c); err != nil {
			return fmt.Errorf("config: decoding correlation trigger: %w", err)
		}

		u.Correlation = &c
	case "local_post":
		var c LocalPostTriggerConfig
		if err := value.Decode(&c); err != nil {
			return fmt.Errorf("config: decoding local-post trigger: %w", err)
		}

		u.LocalPost = &c
	case "zero_crossing":
		u.ZeroCrossing = &ZeroCrossingTriggerConfig{}
	case "null":
		u.Null = &NullTriggerConfig{}
	default:
		return fmt.Errorf("%w: unknown trigger kind %q", ErrInvalidTriggerConfig, k.Kind)
	}

	return nil
}

// MarshalYAML re-adds the `kind:` discriminator UnmarshalYAML consumes, so
// a TriggerUnion round-trips through mergeOverride's re-encode-then-overlay
// step (config/channel_trigger.go) instead of losing its tag.
func (u TriggerUnion) MarshalYAML() (any, error) {
	switch {
	case u.Correlation != nil:
		return taggedMapping("correlation", *u.Correlation)
	case u.LocalPost != nil:
		return taggedMapping("local_post", *u.LocalPost)
	case u.ZeroCrossing != nil:
		return taggedMapping("zero_crossing", struct{}{})
	case u.Null != nil:
		return taggedMapping("null", struct{}{})
	default:
		return nil, nil
	}
}

// taggedMapping marshals v to a mapping node and prepends a `kind: kind`
// entry, so the result decodes back through TriggerUnion.UnmarshalYAML.
func taggedMapping(kind string, v any) (*yaml.Node, error) {
	inner, err := encodeNode(v)
	if err != nil {
		return nil, err
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "kind"}, &yaml.Node{Kind: yaml.ScalarNode, Value: kind})
	node.Content = append(node.Content, inner.Content...)

	return node, nil
}

// Build dispatches to the populated variant's own Build.
func (u *TriggerUnion) Build() (trigger.Config, error) {
	switch {
	case u.Correlation != nil:
		return u.Correlation.Build()
	case u.LocalPost != nil:
		return u.LocalPost.Build()
	case u.ZeroCrossing != nil:
		return u.ZeroCrossing.Build()
	case u.Null != nil:
		return u.Null.Build()
	default:
		return nil, fmt.Errorf("%w: empty trigger union", ErrInvalidTriggerConfig)
	}
}

// registeredTriggerKinds lists the `kind:` discriminator values that mark a
// per-channel trigger mapping as a full trigger config rather than an
// override map. Kept alongside TriggerUnion's switch so the two stay in
// sync.
var registeredTriggerKinds = map[string]bool{
	"correlation":   true,
	"local_post":    true,
	"zero_crossing": true,
	"null":          true,
}
